package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store, or exists outside the requesting user's visibility scope.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a second review for the same booking).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails a database-level
	// constraint other than uniqueness or delete protection, such as a
	// dangling foreign key or a check violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrIntegrityBlocked is returned when a delete is refused because
	// other rows still reference the target and no cascade policy applies.
	ErrIntegrityBlocked = errors.New("delete blocked by referencing rows")

	// Entity-specific "not found" errors

	// ErrCategoryNotFound indicates that the requested category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// ErrProviderNotFound indicates that the requested provider does not exist
	// or is inactive.
	ErrProviderNotFound = fmt.Errorf("%w: provider", ErrNotFound)

	// ErrServiceNotFound indicates that the requested service does not exist
	// or is inactive.
	ErrServiceNotFound = fmt.Errorf("%w: service", ErrNotFound)

	// ErrBookingNotFound indicates that the requested booking does not exist
	// within the caller's scope.
	ErrBookingNotFound = fmt.Errorf("%w: booking", ErrNotFound)

	// ErrReviewNotFound indicates that the requested review does not exist
	// within the caller's scope.
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)

	// ErrSavedServiceNotFound indicates that the requested saved service does
	// not exist within the caller's scope.
	ErrSavedServiceNotFound = fmt.Errorf("%w: saved service", ErrNotFound)

	// Entity-specific constraint errors

	// ErrReviewExists indicates that the booking already has a review.
	ErrReviewExists = fmt.Errorf("%w: review for booking", ErrDuplicate)

	// ErrServiceHasBookings indicates that a service delete was refused
	// because bookings still reference it.
	ErrServiceHasBookings = fmt.Errorf("%w: service has bookings", ErrIntegrityBlocked)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsIntegrityBlockedError checks if the error reports a guarded delete.
func IsIntegrityBlockedError(err error) bool {
	return errors.Is(err, ErrIntegrityBlocked)
}
