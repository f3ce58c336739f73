package utils

import (
	"careconnect/models"
	"errors"
	"log"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

var (
	slotPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	weekdays    = map[string]bool{
		"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
		"Friday": true, "Saturday": true, "Sunday": true,
	}
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	err := validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateDoctorData validates a doctor profile, including the weekly
// availability: recognized weekday names, at most one entry per day, and
// HH:MM slot labels unique within a day.
func ValidateDoctorData(doctor models.Doctor) error {
	err := validation.ValidateStruct(&doctor,
		validation.Field(&doctor.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&doctor.Email, validation.Required, is.Email),
		validation.Field(&doctor.Specialization, validation.Required),
		validation.Field(&doctor.Category, validation.Required),
		validation.Field(&doctor.ConsultationFee, validation.Required, validation.Min(0.01)),
		validation.Field(&doctor.Availability, validation.By(validateAvailability)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePatientData validates a patient profile.
func ValidatePatientData(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&patient.Email, validation.Required, is.Email),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

func validateAvailability(value interface{}) error {
	availability, _ := value.([]models.DoctorAvailability)
	seenDays := make(map[string]bool)
	for _, avail := range availability {
		if !weekdays[avail.Day] {
			return errors.New("unrecognized weekday: " + avail.Day)
		}
		if seenDays[avail.Day] {
			return errors.New("duplicate availability entry for " + avail.Day)
		}
		seenDays[avail.Day] = true

		if len(avail.Slots) == 0 {
			return errors.New("no slots listed for " + avail.Day)
		}
		seenSlots := make(map[string]bool)
		for _, slot := range avail.Slots {
			if !slotPattern.MatchString(slot) {
				return errors.New("invalid slot label: " + slot)
			}
			if seenSlots[slot] {
				return errors.New("duplicate slot " + slot + " on " + avail.Day)
			}
			seenSlots[slot] = true
		}
	}
	return nil
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}
	return nil
}
