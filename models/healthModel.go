package models

import (
	"time"
)

// HealthAssessment keeps only the latest questionnaire result per patient;
// a retake overwrites the row wholesale. AIScore is nil until an external
// AI analysis reports one, after which CurrentScore becomes the rounded
// mean of the two scores.
type HealthAssessment struct {
	ID                 uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID          string      `gorm:"column:patient_id;not null;uniqueIndex" json:"patient_id"`
	Responses          ResponseMap `gorm:"column:responses;type:text;not null" json:"responses"`
	Categories         ScoreMap    `gorm:"column:categories;type:text;not null" json:"categories"`
	QuestionnaireScore int         `gorm:"column:questionnaire_score;not null" json:"questionnaire_score"`
	AIScore            *int        `gorm:"column:ai_score" json:"ai_score,omitempty"`
	CurrentScore       int         `gorm:"column:current_score;not null" json:"current_score"`
	UpdatedAt          time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (HealthAssessment) TableName() string {
	return "health_assessment"
}
