package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// ServiceFilter holds the declared exact/range filters for service listing.
// Nil fields are not applied. CategoryName is matched case-insensitively
// against the joined category's name.
type ServiceFilter struct {
	CategoryID   *uuid.UUID
	ProviderID   *uuid.UUID
	Type         *domain.ServiceType
	PriceLTE     *float64
	PriceGTE     *float64
	CategoryName string
}

// ServiceStore defines the interface for service persistence.
type ServiceStore interface {
	// Create saves a new service. Returns ErrInvalidEntity if the
	// referenced provider or category does not exist.
	Create(ctx context.Context, service *domain.Service) error

	// GetByID retrieves a service by its unique ID regardless of its
	// active flag. Returns ErrServiceNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// GetActiveDetailByID retrieves an active service with its provider
	// and category embedded. Returns ErrServiceNotFound if the service
	// does not exist or is inactive.
	GetActiveDetailByID(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)

	// ListActive retrieves active services with providers and categories
	// embedded, refined by params and filter. Search matches service name,
	// service description and provider name; ordering accepts name, price
	// and created_at and defaults to name ascending.
	ListActive(ctx context.Context, params ListParams, filter ServiceFilter) ([]*domain.ServiceDetail, error)

	// ListSimilar retrieves up to limit other active services sharing the
	// given service's category (including the uncategorized "category"),
	// excluding the service itself. Order is name then id, so results are
	// stable and deterministic.
	ListSimilar(ctx context.Context, service *domain.Service, limit int) ([]*domain.ServiceDetail, error)

	// Update saves changes to an existing service.
	// Returns ErrServiceNotFound if the service does not exist.
	Update(ctx context.Context, service *domain.Service) error

	// Delete removes a service. The delete is refused with
	// ErrServiceHasBookings while bookings reference the service; saved
	// bookmarks of the service are cascaded away.
	// Returns ErrServiceNotFound if the service does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
