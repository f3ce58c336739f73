package services

import (
	"careconnect/models"
	"careconnect/repositories"
	"careconnect/utils"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorService struct {
	doctors repositories.DoctorRepository
}

func NewDoctorService(doctors repositories.DoctorRepository) *DoctorService {
	return &DoctorService{doctors: doctors}
}

// CreateProfile onboards a doctor. Profiles start pending and stay out of
// the patient-facing directory until an admin approves them.
func (s *DoctorService) CreateProfile(ctx context.Context, userID int64, doctor *models.Doctor) (*models.Doctor, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	existing, err := s.doctors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("doctor profile already exists for this user")
	}

	doctor.ID = uuid.New().String()
	doctor.UserID = userID
	doctor.Status = models.DoctorPending
	for i := range doctor.Availability {
		doctor.Availability[i].DoctorID = doctor.ID
	}

	if err := utils.ValidateDoctorData(*doctor); err != nil {
		return nil, fmt.Errorf("invalid doctor data: %w", err)
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}
	return doctor, nil
}

func (s *DoctorService) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	doctor, err := s.doctors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}
	return doctor, nil
}

// UpdateProfile lets a doctor edit their own profile and availability.
// Approval status is not editable here.
func (s *DoctorService) UpdateProfile(ctx context.Context, userID int64, updated *models.Doctor) (*models.Doctor, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	doctor, err := s.doctors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}
	if updated.ID != "" && updated.ID != doctor.ID {
		return nil, ErrForbidden
	}

	updated.ID = doctor.ID
	updated.UserID = doctor.UserID
	updated.Status = doctor.Status
	for i := range updated.Availability {
		updated.Availability[i].DoctorID = doctor.ID
	}

	if err := utils.ValidateDoctorData(*updated); err != nil {
		return nil, fmt.Errorf("invalid doctor data: %w", err)
	}
	if err := s.doctors.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// SetApproval is the admin action moving a doctor between pending, approved
// and rejected.
func (s *DoctorService) SetApproval(ctx context.Context, id, status string) error {
	switch status {
	case models.DoctorPending, models.DoctorApproved, models.DoctorRejected:
	default:
		return fmt.Errorf("invalid approval status %q", status)
	}
	err := s.doctors.SetApproval(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListApproved returns the patient-facing directory, optionally filtered by
// category.
func (s *DoctorService) ListApproved(ctx context.Context, category string) ([]models.Doctor, error) {
	return s.doctors.ListApproved(ctx, category)
}
