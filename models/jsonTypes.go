package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// SlotList stores a day's time slots as a JSON text column.
type SlotList []string

func (s SlotList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *SlotList) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// ResponseMap stores questionnaire answers (question id -> option value).
type ResponseMap map[string]string

func (m ResponseMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *ResponseMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// ScoreMap stores per-category score sums.
type ScoreMap map[string]int

func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *ScoreMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	case nil:
		return nil
	default:
		return errors.New("unsupported type for JSON column scan")
	}
}
