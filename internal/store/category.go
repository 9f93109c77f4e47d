package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// CategoryStore defines the interface for service-category persistence.
// Categories are globally readable; mutations come only from the admin
// collaborator, never from the HTTP surface.
type CategoryStore interface {
	// Create saves a new category.
	// Returns validation errors if the category data is invalid.
	Create(ctx context.Context, category *domain.ServiceCategory) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceCategory, error)

	// List retrieves categories refined by the given params.
	// Search matches name and description; ordering accepts name and
	// created_at and defaults to name ascending.
	List(ctx context.Context, params ListParams) ([]*domain.ServiceCategory, error)

	// Update saves changes to an existing category.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.ServiceCategory) error

	// Delete removes a category. Services referencing it keep existing
	// with their category cleared (ON DELETE SET NULL policy).
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
