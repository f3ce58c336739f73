package services

import "errors"

// Domain errors surfaced by the services layer. Handlers map these onto
// HTTP status codes; everything else is treated as an internal error.
var (
	// ErrNotAuthenticated is returned when no verified caller identity is
	// present on the request.
	ErrNotAuthenticated = errors.New("user not authenticated")

	// ErrNotFound covers missing doctors, patients, appointments and chats.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the caller is not a participant of the
	// resource it is touching.
	ErrForbidden = errors.New("caller is not permitted to access this resource")

	// ErrMissingFields is returned by payment verification when any of the
	// order id, payment id or signature is absent.
	ErrMissingFields = errors.New("missing required payment verification fields")

	// ErrSignatureMismatch means the provider signature did not match our
	// recomputed HMAC. Treated as a security event and logged with the ids
	// involved so a disputed charge can be reconciled by hand.
	ErrSignatureMismatch = errors.New("payment signature verification failed")

	// ErrPaymentNotVerified is fatal to a booking attempt: the supplied
	// payment id never passed signature verification in this flow.
	ErrPaymentNotVerified = errors.New("payment has not been verified")

	// ErrSlotUnavailable means the requested weekday/slot is not offered by
	// the doctor's availability.
	ErrSlotUnavailable = errors.New("slot is not offered by this doctor")

	// ErrSlotTaken means another appointment already holds the same
	// doctor/date/slot combination.
	ErrSlotTaken = errors.New("slot is already booked")

	// ErrInvalidTransition is returned for a status change outside the
	// allowed transition table.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrIncompleteAnswers is returned when a questionnaire submission is
	// missing answers for one or more required questions.
	ErrIncompleteAnswers = errors.New("questionnaire answers are incomplete")

	// ErrUnknownOption is returned when an answer names an option value the
	// score table does not contain.
	ErrUnknownOption = errors.New("unknown questionnaire option")
)
