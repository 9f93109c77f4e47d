package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidServiceType is returned when a service type is not one of
	// the declared values.
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidBookingStatus is returned when a booking status is not one
	// of the declared values.
	ErrInvalidBookingStatus = errors.New("invalid booking status")

	// ErrInvalidRating is returned when a review rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// validationErrors enumerates every sentinel that marks client-correctable
// input. Entity files add their field-level sentinels here via init so the
// classifier stays complete.
var validationErrors = []error{
	ErrValidation,
	ErrInvalidID,
	ErrInvalidEmail,
	ErrInvalidServiceType,
	ErrInvalidBookingStatus,
	ErrInvalidRating,
}

func registerValidationErrors(errs ...error) {
	validationErrors = append(validationErrors, errs...)
}

// IsValidationError checks if the error is any kind of domain validation
// error, i.e. one the client can fix by correcting the request.
func IsValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
