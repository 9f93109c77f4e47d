package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// BookingFilter holds the declared exact filters for booking listing.
// Nil fields are not applied. ProviderID filters through the booked
// service's provider.
type BookingFilter struct {
	Status     *domain.BookingStatus
	ServiceID  *uuid.UUID
	ProviderID *uuid.UUID
}

// BookingStore defines the interface for booking persistence. All read and
// mutation methods except Create are scoped to the owning user: rows owned
// by anyone else behave exactly as if they did not exist.
type BookingStore interface {
	// Create saves a new booking. Returns ErrInvalidEntity if the
	// referenced service or user does not exist.
	Create(ctx context.Context, booking *domain.ServiceBooking) error

	// GetForUser retrieves a booking by ID within the given user's scope,
	// with the booked service embedded.
	// Returns ErrBookingNotFound if the booking does not exist or belongs
	// to another user.
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.BookingDetail, error)

	// ListForUser retrieves the user's bookings with services embedded,
	// refined by params and filter. Ordering accepts start_date and
	// created_at and defaults to start_date descending.
	ListForUser(ctx context.Context, userID uuid.UUID, params ListParams, filter BookingFilter) ([]*domain.BookingDetail, error)

	// UpdateForUser saves changes to a booking the user owns.
	// Returns ErrBookingNotFound if the booking does not exist or belongs
	// to another user.
	UpdateForUser(ctx context.Context, userID uuid.UUID, booking *domain.ServiceBooking) error

	// DeleteForUser removes a booking the user owns, cascading to its
	// review if one exists.
	// Returns ErrBookingNotFound if the booking does not exist or belongs
	// to another user.
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
