package repositories

import (
	"careconnect/database"
	"careconnect/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository interface {
	Upsert(ctx context.Context, assessment *models.HealthAssessment) error
	GetByPatientID(ctx context.Context, patientID string) (*models.HealthAssessment, error)
}

type assessmentRepository struct{}

func NewAssessmentRepository() AssessmentRepository {
	return &assessmentRepository{}
}

// Upsert overwrites the patient's assessment wholesale; only the latest
// retake is retained.
func (r *assessmentRepository) Upsert(ctx context.Context, assessment *models.HealthAssessment) error {
	err := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "patient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"responses", "categories", "questionnaire_score", "ai_score", "current_score", "updated_at",
		}),
	}).Create(assessment).Error
	if err != nil {
		return fmt.Errorf("failed to upsert health assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepository) GetByPatientID(ctx context.Context, patientID string) (*models.HealthAssessment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var assessment models.HealthAssessment
	err := database.DB.First(&assessment, "patient_id = ?", patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get health assessment: %w", err)
	}
	return &assessment, nil
}
