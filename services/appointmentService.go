package services

import (
	"careconnect/models"
	"careconnect/repositories"
	"context"
	"errors"
	"log"
	"time"
)

// allowedTransitions is the doctor-driven status workflow. completed and
// cancelled are terminal; anything outside the table is rejected. Setting a
// status to itself is permitted and only updates notes.
var allowedTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
	models.AppointmentCompleted: {},
	models.AppointmentCancelled: {},
}

// CanTransition reports whether an appointment may move from one status to
// another. A same-status update is idempotent and always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// BookingNotifier delivers the post-booking confirmation (email with a
// payment receipt). Failures are logged, never fatal to the booking.
type BookingNotifier interface {
	SendConfirmation(appointment *models.Appointment, doctor *models.Doctor, patient *models.Patient) error
}

type AppointmentService struct {
	appointments repositories.AppointmentRepository
	doctors      repositories.DoctorRepository
	patients     repositories.PatientRepository
	payments     repositories.PaymentRepository
	notifier     BookingNotifier
}

func NewAppointmentService(
	appointments repositories.AppointmentRepository,
	doctors repositories.DoctorRepository,
	patients repositories.PatientRepository,
	payments repositories.PaymentRepository,
	notifier BookingNotifier,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		payments:     payments,
		notifier:     notifier,
	}
}

// Book persists a pending appointment for an already-verified payment. The
// write is unreachable without a verified payment id: the verification
// marker is consumed first, so a payment id can back at most one booking.
// If the booking then fails the marker is restored, letting the patient
// retry another slot on the same payment.
func (s *AppointmentService) Book(ctx context.Context, patientID, doctorID string, when time.Time, reason, paymentID string) (*models.Appointment, error) {
	if patientID == "" {
		return nil, ErrNotAuthenticated
	}
	if paymentID == "" {
		return nil, ErrPaymentNotVerified
	}

	verified, err := s.payments.ConsumeVerified(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrPaymentNotVerified
	}

	// From here on a failure must hand the marker back, or the patient
	// would have to pay again to retry with another slot.
	restoreMarker := func() {
		if err := s.payments.MarkVerified(ctx, paymentID); err != nil {
			log.Printf("Failed to restore verified payment %s: %v", paymentID, err)
		}
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		restoreMarker()
		return nil, err
	}
	if doctor == nil {
		restoreMarker()
		return nil, ErrNotFound
	}

	slot := when.Format("15:04")
	if !slotOffered(doctor, when.Weekday().String(), slot) {
		restoreMarker()
		return nil, ErrSlotUnavailable
	}

	appointment := &models.Appointment{
		DoctorID:        doctor.ID,
		PatientID:       patientID,
		AppointmentDate: when,
		SlotDate:        when.Format("2006-01-02"),
		Slot:            slot,
		Reason:          reason,
		Status:          models.AppointmentPending,
		PaymentID:       paymentID,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		restoreMarker()
		if errors.Is(err, repositories.ErrDuplicateSlot) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if err := s.payments.AttachAppointment(ctx, paymentID, appointment.ID); err != nil {
		log.Printf("Failed to link payment %s to appointment %d: %v", paymentID, appointment.ID, err)
	}

	if s.notifier != nil {
		patient, err := s.patients.GetByID(ctx, patientID)
		if err != nil || patient == nil {
			log.Printf("Skipping booking confirmation for appointment %d: patient lookup failed: %v", appointment.ID, err)
		} else if err := s.notifier.SendConfirmation(appointment, doctor, patient); err != nil {
			log.Printf("Failed to send booking confirmation for appointment %d: %v", appointment.ID, err)
		}
	}

	return appointment, nil
}

// slotOffered checks the requested weekday/slot against the doctor's
// schedule, falling back to the default office hours when the profile
// carries no availability of its own.
func slotOffered(doctor *models.Doctor, day, slot string) bool {
	slots := doctor.SlotsForDay(day)
	if len(doctor.Availability) == 0 {
		fallback := models.Doctor{Availability: models.DefaultAvailability()}
		slots = fallback.SlotsForDay(day)
	}
	for _, offered := range slots {
		if offered == slot {
			return true
		}
	}
	return false
}

// GetByID returns the appointment if the caller is one of its participants.
func (s *AppointmentService) GetByID(ctx context.Context, id uint, callerID string) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if appointment.PatientID != callerID && appointment.DoctorID != callerID {
		return nil, ErrForbidden
	}
	return appointment, nil
}

func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	if patientID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	if doctorID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.appointments.ListByDoctor(ctx, doctorID)
}

// UpdateStatus applies a doctor-initiated status change through the
// transition table. Notes are updated on every call, including the
// idempotent same-status case.
func (s *AppointmentService) UpdateStatus(ctx context.Context, appointmentID uint, callerDoctorID, status, notes string) (*models.Appointment, error) {
	if callerDoctorID == "" {
		return nil, ErrNotAuthenticated
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if appointment.DoctorID != callerDoctorID {
		return nil, ErrForbidden
	}

	if _, ok := allowedTransitions[status]; !ok {
		return nil, ErrInvalidTransition
	}
	if !CanTransition(appointment.Status, status) {
		return nil, ErrInvalidTransition
	}

	appointment.Status = status
	appointment.Notes = notes
	if err := s.appointments.UpdateStatusNotes(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}
