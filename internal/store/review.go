package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// ReviewFilter holds the declared exact filters for review listing.
// Nil fields are not applied. ServiceID filters through the reviewed
// booking's service.
type ReviewFilter struct {
	Rating    *int
	ServiceID *uuid.UUID
}

// ReviewStore defines the interface for review persistence. Reviews are
// owned transitively through their booking: every scoped method joins the
// booking and matches its user against the requester.
type ReviewStore interface {
	// Create saves a new review. Returns ErrReviewExists if the booking
	// already has one, and ErrInvalidEntity if the booking does not exist.
	Create(ctx context.Context, review *domain.ServiceReview) error

	// GetForUser retrieves a review by ID within the given user's scope,
	// with the reviewer email and service name embedded.
	// Returns ErrReviewNotFound if the review does not exist or its
	// booking belongs to another user.
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error)

	// ListForUser retrieves reviews of the user's bookings, refined by
	// params and filter. Ordering accepts rating and created_at and
	// defaults to created_at descending.
	ListForUser(ctx context.Context, userID uuid.UUID, params ListParams, filter ReviewFilter) ([]*domain.ReviewDetail, error)

	// UpdateForUser saves changes to a review whose booking the user owns.
	// Returns ErrReviewNotFound if the review does not exist or its
	// booking belongs to another user.
	UpdateForUser(ctx context.Context, userID uuid.UUID, review *domain.ServiceReview) error

	// DeleteForUser removes a review whose booking the user owns.
	// Returns ErrReviewNotFound if the review does not exist or its
	// booking belongs to another user.
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
