package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ServiceType identifies how a service is purchased.
type ServiceType string

// Valid service types.
const (
	// ServiceTypeOneTime is a service purchased once (e.g. a single design job).
	ServiceTypeOneTime ServiceType = "one_time"

	// ServiceTypeSubscription is a recurring service with a defined end date
	// on each booking.
	ServiceTypeSubscription ServiceType = "subscription"
)

// IsValid reports whether the ServiceType is one of the declared values.
func (t ServiceType) IsValid() bool {
	return t == ServiceTypeOneTime || t == ServiceTypeSubscription
}

// Service-specific validation errors
var (
	// ErrServiceIDEmpty is returned when a service ID is empty or nil.
	ErrServiceIDEmpty = errors.New("service ID cannot be empty")

	// ErrServiceProviderIDEmpty is returned when a service's provider ID is empty or nil.
	ErrServiceProviderIDEmpty = errors.New("service provider ID cannot be empty")

	// ErrServiceNameEmpty is returned when a service name is empty.
	ErrServiceNameEmpty = errors.New("service name cannot be empty")

	// ErrServicePriceNegative is returned when a service price is below zero.
	ErrServicePriceNegative = errors.New("service price cannot be negative")
)

func init() {
	registerValidationErrors(ErrServiceIDEmpty, ErrServiceProviderIDEmpty, ErrServiceNameEmpty, ErrServicePriceNegative)
}

// Service is an offering published by a provider. Every service belongs to
// exactly one provider and optionally to one category; a nil CategoryID
// means the service is uncategorized (its category was deleted or never set).
type Service struct {
	ID          uuid.UUID   `json:"id"`
	ProviderID  uuid.UUID   `json:"provider_id"`
	CategoryID  *uuid.UUID  `json:"category_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	PriceUnit   string      `json:"price_unit"`
	Type        ServiceType `json:"service_type"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewService creates a new active Service with a generated ID and current
// timestamps. categoryID may be nil for uncategorized services.
// Returns an error if validation fails.
func NewService(
	providerID uuid.UUID,
	categoryID *uuid.UUID,
	name, description string,
	price float64,
	priceUnit string,
	serviceType ServiceType,
) (*Service, error) {
	now := time.Now().UTC()
	service := &Service{
		ID:          uuid.New(),
		ProviderID:  providerID,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		Price:       price,
		PriceUnit:   priceUnit,
		Type:        serviceType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.Validate(); err != nil {
		return nil, err
	}

	return service, nil
}

// Validate checks if the Service has valid data.
func (s *Service) Validate() error {
	if s.ID == uuid.Nil {
		return ErrServiceIDEmpty
	}

	if s.ProviderID == uuid.Nil {
		return ErrServiceProviderIDEmpty
	}

	if s.Name == "" {
		return ErrServiceNameEmpty
	}

	if s.Price < 0 {
		return ErrServicePriceNegative
	}

	if !s.Type.IsValid() {
		return ErrInvalidServiceType
	}

	return nil
}
