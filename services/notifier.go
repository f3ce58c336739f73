package services

import (
	"careconnect/models"
	"careconnect/utils"
	"fmt"
)

// emailNotifier sends the booking confirmation email with a PDF receipt
// attached. It is best-effort by contract: the caller logs failures and the
// booking stands regardless.
type emailNotifier struct{}

// NewEmailNotifier returns the SMTP-backed BookingNotifier.
func NewEmailNotifier() BookingNotifier {
	return &emailNotifier{}
}

func (n *emailNotifier) SendConfirmation(appointment *models.Appointment, doctor *models.Doctor, patient *models.Patient) error {
	receipt, err := utils.GenerateReceiptPDF(appointment, doctor, patient)
	if err != nil {
		return fmt.Errorf("failed to generate receipt: %w", err)
	}
	subject := fmt.Sprintf("Appointment booked with %s", doctor.Name)
	body := fmt.Sprintf(
		"Your appointment with %s (%s) on %s at %s is booked and pending confirmation.\nPayment reference: %s",
		doctor.Name, doctor.Specialization, appointment.SlotDate, appointment.Slot, appointment.PaymentID,
	)
	return utils.SendBookingEmail(patient.Email, subject, body, "receipt.pdf", receipt)
}
