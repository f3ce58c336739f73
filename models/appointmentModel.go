package models

import (
	"time"
)

// Appointment lifecycle states. The appointment service restricts moves
// between them; completed and cancelled are terminal.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment model. SlotDate and Slot are derived from AppointmentDate at
// booking time; the partial unique index on (doctor_id, slot_date, slot) is
// what rejects double bookings at the storage layer. Cancelled rows are
// excluded so a cancelled appointment frees its slot. PaymentID is mandatory:
// an appointment row never exists without a verified payment behind it.
type Appointment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID        string    `gorm:"column:doctor_id;not null;index;index:idx_doctor_slot,unique,where:status <> 'cancelled'" json:"doctor_id"`
	PatientID       string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	AppointmentDate time.Time `gorm:"column:appointment_date;not null" json:"appointment_date"`
	SlotDate        string    `gorm:"column:slot_date;not null;index:idx_doctor_slot,unique,where:status <> 'cancelled'" json:"slot_date"`
	Slot            string    `gorm:"column:slot;not null;index:idx_doctor_slot,unique,where:status <> 'cancelled'" json:"slot"`
	Reason          string    `gorm:"column:reason" json:"reason"`
	Status          string    `gorm:"column:status;check:status IN ('pending', 'confirmed', 'completed', 'cancelled');not null" json:"status"`
	Notes           string    `gorm:"column:notes" json:"notes"`
	PaymentID       string    `gorm:"column:payment_id;not null" json:"payment_id"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor          Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Patient         Patient   `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Payment records one verified Razorpay charge. Amount is in minor units
// (paise), exactly what the order was issued for.
type Payment struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID       string    `gorm:"column:order_id;not null;index" json:"order_id"`
	PaymentID     string    `gorm:"column:payment_id;not null;unique" json:"payment_id"`
	DoctorID      string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	PatientID     string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Amount        int64     `gorm:"column:amount;not null" json:"amount"`
	Currency      string    `gorm:"column:currency;not null" json:"currency"`
	AppointmentID *uint     `gorm:"column:appointment_id;index" json:"appointment_id,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payment"
}
