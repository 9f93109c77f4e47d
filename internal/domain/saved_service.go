package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SavedService-specific validation errors
var (
	// ErrSavedServiceIDEmpty is returned when a saved-service ID is empty or nil.
	ErrSavedServiceIDEmpty = errors.New("saved service ID cannot be empty")

	// ErrSavedServiceUserIDEmpty is returned when a saved-service user ID is empty or nil.
	ErrSavedServiceUserIDEmpty = errors.New("saved service user ID cannot be empty")

	// ErrSavedServiceServiceIDEmpty is returned when a saved-service service ID is empty or nil.
	ErrSavedServiceServiceIDEmpty = errors.New("saved service service ID cannot be empty")
)

func init() {
	registerValidationErrors(ErrSavedServiceIDEmpty, ErrSavedServiceUserIDEmpty, ErrSavedServiceServiceIDEmpty)
}

// SavedService is a user's bookmark of a service. The (user, service) pair
// is unique; saving the same service twice is idempotent and yields the
// existing row.
type SavedService struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ServiceID uuid.UUID `json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSavedService creates a new SavedService bookmark with a generated ID
// and current timestamp. Returns an error if validation fails.
func NewSavedService(userID, serviceID uuid.UUID) (*SavedService, error) {
	saved := &SavedService{
		ID:        uuid.New(),
		UserID:    userID,
		ServiceID: serviceID,
		CreatedAt: time.Now().UTC(),
	}

	if err := saved.Validate(); err != nil {
		return nil, err
	}

	return saved, nil
}

// Validate checks if the SavedService has valid data.
func (s *SavedService) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSavedServiceIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSavedServiceUserIDEmpty
	}

	if s.ServiceID == uuid.Nil {
		return ErrSavedServiceServiceIDEmpty
	}

	return nil
}
