package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// SavedServiceFilter holds the declared exact filters for saved-service
// listing. Nil fields are not applied. CategoryID filters through the
// bookmarked service's category.
type SavedServiceFilter struct {
	ServiceID  *uuid.UUID
	CategoryID *uuid.UUID
}

// SavedServiceStore defines the interface for saved-service persistence.
// The (user, service) pair is unique at the store level so concurrent
// duplicate saves cannot produce two rows.
type SavedServiceStore interface {
	// Upsert saves the bookmark if the (user, service) pair is new and
	// returns the persisted row either way, resolving duplicate-create
	// races to "return existing row". Returns ErrInvalidEntity if the
	// referenced service or user does not exist.
	Upsert(ctx context.Context, saved *domain.SavedService) (*domain.SavedService, error)

	// GetForUser retrieves a bookmark by ID within the given user's scope,
	// with the bookmarked service embedded.
	// Returns ErrSavedServiceNotFound if the bookmark does not exist or
	// belongs to another user.
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error)

	// ListForUser retrieves the user's bookmarks with services embedded,
	// refined by params and filter. Ordering accepts created_at and
	// defaults to created_at descending.
	ListForUser(ctx context.Context, userID uuid.UUID, params ListParams, filter SavedServiceFilter) ([]*domain.SavedServiceDetail, error)

	// DeleteForUser removes a bookmark the user owns.
	// Returns ErrSavedServiceNotFound if the bookmark does not exist or
	// belongs to another user.
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
