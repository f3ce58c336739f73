package models

import (
	"time"
)

// Patient model. LabJSON holds the aggregate of externally parsed lab
// reports verbatim; the application never interprets it.
type Patient struct {
	ID           string        `gorm:"primaryKey;column:id" json:"id"`
	UserID       int64         `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Name         string        `gorm:"column:name;not null" json:"name"`
	Email        string        `gorm:"column:email;not null;unique" json:"email"`
	Phone        string        `gorm:"column:phone" json:"phone"`
	LabJSON      string        `gorm:"column:lab_json;type:text" json:"lab_json,omitempty"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments []Appointment `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}
