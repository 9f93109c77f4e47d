package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// ProviderStore defines the interface for service-provider persistence.
// The read surface exposes only active providers; GetByID exists for the
// admin collaborator and for integrity checks.
type ProviderStore interface {
	// Create saves a new provider.
	Create(ctx context.Context, provider *domain.ServiceProvider) error

	// GetByID retrieves a provider by its unique ID regardless of its
	// active flag. Returns ErrProviderNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error)

	// GetActiveByID retrieves an active provider by its unique ID.
	// Returns ErrProviderNotFound if it does not exist or is inactive.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error)

	// ListActive retrieves active providers refined by the given params.
	// Search matches name and description; ordering accepts name and
	// created_at and defaults to name ascending.
	ListActive(ctx context.Context, params ListParams) ([]*domain.ServiceProvider, error)

	// Update saves changes to an existing provider.
	// Returns ErrProviderNotFound if the provider does not exist.
	Update(ctx context.Context, provider *domain.ServiceProvider) error

	// Delete removes a provider and cascades to all of its services.
	// The cascade is atomic with the triggering delete. Deleting a
	// provider whose services still have bookings is blocked by the
	// booking guard and returns ErrIntegrityBlocked.
	// Returns ErrProviderNotFound if the provider does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
