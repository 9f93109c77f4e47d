package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category-specific validation errors
var (
	// ErrCategoryIDEmpty is returned when a category ID is empty or nil.
	ErrCategoryIDEmpty = errors.New("category ID cannot be empty")

	// ErrCategoryNameEmpty is returned when a category name is empty.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")

	// ErrCategoryNameTooLong is returned when a category name exceeds the limit.
	ErrCategoryNameTooLong = errors.New("category name cannot exceed 100 characters")
)

func init() {
	registerValidationErrors(ErrCategoryIDEmpty, ErrCategoryNameEmpty, ErrCategoryNameTooLong)
}

// ServiceCategory groups services for discovery (e.g. Music, Bulletin
// Design, Catering). Categories have no owner and are globally readable
// by any authenticated identity.
type ServiceCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewServiceCategory creates a new ServiceCategory with a generated ID and
// current timestamps. Returns an error if validation fails.
func NewServiceCategory(name, description, icon string) (*ServiceCategory, error) {
	now := time.Now().UTC()
	category := &ServiceCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the ServiceCategory has valid data.
func (c *ServiceCategory) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCategoryIDEmpty
	}

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if len(c.Name) > 100 {
		return ErrCategoryNameTooLong
	}

	return nil
}
