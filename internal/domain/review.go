package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors
var (
	// ErrReviewIDEmpty is returned when a review ID is empty or nil.
	ErrReviewIDEmpty = errors.New("review ID cannot be empty")

	// ErrReviewBookingIDEmpty is returned when a review's booking ID is empty or nil.
	ErrReviewBookingIDEmpty = errors.New("review booking ID cannot be empty")
)

func init() {
	registerValidationErrors(ErrReviewIDEmpty, ErrReviewBookingIDEmpty)
}

// ServiceReview is a rating left for a completed booking. A booking has at
// most one review, and only the booking's owner may create or see it.
type ServiceReview struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewServiceReview creates a new ServiceReview for the given booking with a
// generated ID and current timestamps. Returns an error if validation fails.
func NewServiceReview(bookingID uuid.UUID, rating int, comment string) (*ServiceReview, error) {
	now := time.Now().UTC()
	review := &ServiceReview{
		ID:        uuid.New(),
		BookingID: bookingID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the ServiceReview has valid data.
func (r *ServiceReview) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.BookingID == uuid.Nil {
		return ErrReviewBookingIDEmpty
	}

	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}

	return nil
}
