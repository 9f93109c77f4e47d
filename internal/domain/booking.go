package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus tracks the lifecycle of a booking. The declared values
// imply a workflow, but no transition rules are enforced: status is a
// free-form authorized update field after creation.
type BookingStatus string

// Valid booking statuses.
const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsValid reports whether the BookingStatus is one of the declared values.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking-specific validation errors
var (
	// ErrBookingIDEmpty is returned when a booking ID is empty or nil.
	ErrBookingIDEmpty = errors.New("booking ID cannot be empty")

	// ErrBookingServiceIDEmpty is returned when a booking's service ID is empty or nil.
	ErrBookingServiceIDEmpty = errors.New("booking service ID cannot be empty")

	// ErrBookingUserIDEmpty is returned when a booking's user ID is empty or nil.
	ErrBookingUserIDEmpty = errors.New("booking user ID cannot be empty")

	// ErrBookingStartDateZero is returned when a booking has no start date.
	ErrBookingStartDateZero = errors.New("booking start date is required")

	// ErrEndDateRequired is returned when a booking for a subscription
	// service is missing its end date.
	ErrEndDateRequired = errors.New("end_date is required for subscription services")
)

func init() {
	registerValidationErrors(
		ErrBookingIDEmpty,
		ErrBookingServiceIDEmpty,
		ErrBookingUserIDEmpty,
		ErrBookingStartDateZero,
		ErrEndDateRequired,
	)
}

// ServiceBooking is a purchase request placed by a user for a service.
// Bookings are owned by the user who created them and are never visible
// to anyone else. Status always starts as pending; clients cannot set it
// on create.
type ServiceBooking struct {
	ID        uuid.UUID     `json:"id"`
	ServiceID uuid.UUID     `json:"service_id"`
	UserID    uuid.UUID     `json:"user_id"`
	Status    BookingStatus `json:"status"`
	StartDate time.Time     `json:"start_date"`
	EndDate   *time.Time    `json:"end_date"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewServiceBooking creates a pending ServiceBooking for the given user and
// service. The caller is responsible for the cross-entity rule that
// subscription services require an end date; see the booking service.
// Returns an error if validation fails.
func NewServiceBooking(
	serviceID, userID uuid.UUID,
	startDate time.Time,
	endDate *time.Time,
	notes string,
) (*ServiceBooking, error) {
	now := time.Now().UTC()
	booking := &ServiceBooking{
		ID:        uuid.New(),
		ServiceID: serviceID,
		UserID:    userID,
		Status:    BookingStatusPending,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	return booking, nil
}

// Validate checks if the ServiceBooking has valid data.
func (b *ServiceBooking) Validate() error {
	if b.ID == uuid.Nil {
		return ErrBookingIDEmpty
	}

	if b.ServiceID == uuid.Nil {
		return ErrBookingServiceIDEmpty
	}

	if b.UserID == uuid.Nil {
		return ErrBookingUserIDEmpty
	}

	if !b.Status.IsValid() {
		return ErrInvalidBookingStatus
	}

	if b.StartDate.IsZero() {
		return ErrBookingStartDateZero
	}

	return nil
}
