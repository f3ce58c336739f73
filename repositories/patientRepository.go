package repositories

import (
	"careconnect/database"
	"careconnect/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Patient, error)
	SaveLabJSON(ctx context.Context, patientID, labJSON string) error
}

type patientRepository struct{}

func NewPatientRepository() PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := database.DB.Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	return r.get(ctx, "user_id = ?", userID)
}

func (r *patientRepository) get(ctx context.Context, cond string, arg interface{}) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	err := database.DB.First(&patient, cond, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// SaveLabJSON stores the aggregate parsed lab data verbatim.
func (r *patientRepository) SaveLabJSON(ctx context.Context, patientID, labJSON string) error {
	err := database.DB.Model(&models.Patient{}).
		Where("id = ?", patientID).
		Update("lab_json", labJSON).Error
	if err != nil {
		return fmt.Errorf("failed to save lab data: %w", err)
	}
	return nil
}
