package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Provider-specific validation errors
var (
	// ErrProviderIDEmpty is returned when a provider ID is empty or nil.
	ErrProviderIDEmpty = errors.New("provider ID cannot be empty")

	// ErrProviderNameEmpty is returned when a provider name is empty.
	ErrProviderNameEmpty = errors.New("provider name cannot be empty")

	// ErrProviderEmailEmpty is returned when a provider contact email is empty.
	ErrProviderEmailEmpty = errors.New("provider contact email cannot be empty")
)

func init() {
	registerValidationErrors(ErrProviderIDEmpty, ErrProviderNameEmpty, ErrProviderEmailEmpty)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ServiceProvider is an external vendor offering services through the
// marketplace. Providers have no owner; only active providers are exposed
// on the read surface.
type ServiceProvider struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Website      string    `json:"website"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewServiceProvider creates a new active ServiceProvider with a generated ID
// and current timestamps. Returns an error if validation fails.
func NewServiceProvider(name, description, website, contactEmail, contactPhone string) (*ServiceProvider, error) {
	now := time.Now().UTC()
	provider := &ServiceProvider{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		Website:      website,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := provider.Validate(); err != nil {
		return nil, err
	}

	return provider, nil
}

// Validate checks if the ServiceProvider has valid data.
func (p *ServiceProvider) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProviderIDEmpty
	}

	if p.Name == "" {
		return ErrProviderNameEmpty
	}

	if p.ContactEmail == "" {
		return ErrProviderEmailEmpty
	}

	if !emailRegex.MatchString(p.ContactEmail) {
		return ErrInvalidEmail
	}

	return nil
}
