package models

import (
	"time"
)

// Doctor approval states.
const (
	DoctorPending  = "pending"
	DoctorApproved = "approved"
	DoctorRejected = "rejected"
)

// Doctor model
type Doctor struct {
	ID              string               `gorm:"primaryKey;column:id" json:"id"`
	UserID          int64                `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Name            string               `gorm:"column:name;not null" json:"name"`
	Email           string               `gorm:"column:email;not null;unique" json:"email"`
	Phone           string               `gorm:"column:phone" json:"phone"`
	Specialization  string               `gorm:"column:specialization;not null" json:"specialization"`
	Category        string               `gorm:"column:category;not null;index" json:"category"`
	ConsultationFee float64              `gorm:"column:consultation_fee;not null;check:consultation_fee > 0" json:"consultation_fee"`
	Experience      int                  `gorm:"column:experience" json:"experience"`
	Status          string               `gorm:"column:status;check:status IN ('pending', 'approved', 'rejected');not null" json:"status"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Availability    []DoctorAvailability `gorm:"foreignKey:DoctorID;references:ID" json:"availability"`
	Appointments    []Appointment        `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// DoctorAvailability holds one weekday's bookable slots for a doctor.
// A doctor has at most one row per weekday.
type DoctorAvailability struct {
	ID       uint     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID string   `gorm:"column:doctor_id;not null;index;uniqueIndex:idx_doctor_day" json:"doctor_id"`
	Day      string   `gorm:"column:day;not null;uniqueIndex:idx_doctor_day" json:"day"`
	Slots    SlotList `gorm:"column:slots;type:text;not null" json:"slots"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availability"
}

// SlotsForDay returns the doctor's slots for the given weekday name
// ("Monday".."Sunday"), or nil if the doctor has no entry for that day.
func (d *Doctor) SlotsForDay(day string) []string {
	for _, avail := range d.Availability {
		if avail.Day == day {
			return avail.Slots
		}
	}
	return nil
}

// DefaultAvailability is the fallback weekly schedule applied when a doctor
// profile carries no availability of its own (for example doctors suggested
// by the symptom chatbot before onboarding completes).
func DefaultAvailability() []DoctorAvailability {
	slots := SlotList{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	availability := make([]DoctorAvailability, 0, len(days))
	for _, day := range days {
		availability = append(availability, DoctorAvailability{Day: day, Slots: slots})
	}
	return availability
}
