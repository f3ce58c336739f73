package repositories

import (
	"careconnect/database"
	"careconnect/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateSlot is returned when the (doctor, date, slot) unique index
// rejects a second booking of the same slot.
var ErrDuplicateSlot = errors.New("duplicate doctor/date/slot booking")

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	UpdateStatusNotes(ctx context.Context, appointment *models.Appointment) error
}

type appointmentRepository struct{}

func NewAppointmentRepository() AppointmentRepository {
	return &appointmentRepository{}
}

// Create persists a booked appointment. A short redis lock over the
// doctor/date/slot triple keeps two in-flight bookings from racing past the
// availability check; the unique index is the final arbiter either way.
func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	lockKey := fmt.Sprintf("slot_lock:%s_%s_%s", appointment.DoctorID, appointment.SlotDate, appointment.Slot)
	lockValue := uuid.New().String()

	maxRetries := 3
	retryDelay := 200 * time.Millisecond
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire slot lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release slot lock: %v", err)
		}
	}()

	if err := database.DB.Create(appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	err := database.DB.
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, specialization, category, consultation_fee")
		}).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, email")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.list(ctx, "patient_id = ?", patientID)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(ctx, "doctor_id = ?", doctorID)
}

func (r *appointmentRepository) list(ctx context.Context, cond string, arg interface{}) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointments []models.Appointment
	err := database.DB.
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, specialization, category, consultation_fee")
		}).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, email")
		}).
		Where(cond, arg).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatusNotes persists a status/notes change. Cancellation included:
// appointment rows are never deleted.
func (r *appointmentRepository) UpdateStatusNotes(ctx context.Context, appointment *models.Appointment) error {
	err := database.DB.Model(&models.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(map[string]interface{}{
			"status": appointment.Status,
			"notes":  appointment.Notes,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return nil
}
