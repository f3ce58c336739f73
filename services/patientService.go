package services

import (
	"careconnect/models"
	"careconnect/repositories"
	"careconnect/utils"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type PatientService struct {
	patients repositories.PatientRepository
}

func NewPatientService(patients repositories.PatientRepository) *PatientService {
	return &PatientService{patients: patients}
}

// CreateProfile registers a patient profile for a signed-in user, or
// returns the existing one. Booking, chat and assessments all key off the
// patient id this creates.
func (s *PatientService) CreateProfile(ctx context.Context, userID int64, name, email, phone string) (*models.Patient, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	existing, err := s.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	patient := &models.Patient{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	}
	if err := utils.ValidatePatientData(*patient); err != nil {
		return nil, fmt.Errorf("invalid patient data: %w", err)
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	patient, err := s.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}
	return patient, nil
}
