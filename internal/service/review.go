package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// CreateReviewInput carries the client-settable fields of a new review.
type CreateReviewInput struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

// UpdateReviewInput carries the client-settable fields of a review
// update. The booking association is immutable.
type UpdateReviewInput struct {
	Rating  int
	Comment string
}

// ReviewService implements reviews of the user's own bookings. Ownership
// is transitive: a review is visible and mutable exactly when its booking
// belongs to the requester.
type ReviewService struct {
	reviews  store.ReviewStore
	bookings store.BookingStore
	logger   *slog.Logger
}

// NewReviewService creates a ReviewService backed by the given stores.
// If logger is nil, a default logger is used.
func NewReviewService(reviews store.ReviewStore, bookings store.BookingStore, logger *slog.Logger) *ReviewService {
	if reviews == nil || bookings == nil {
		panic("stores cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewService{
		reviews:  reviews,
		bookings: bookings,
		logger:   logger.With(slog.String("component", "review_service")),
	}
}

// Create reviews one of the user's bookings. The booking is resolved
// within the user's scope first, so reviewing someone else's booking
// reports ErrBookingNotFound rather than revealing that it exists.
// A booking can be reviewed once; a second attempt reports
// ErrReviewExists.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, in CreateReviewInput) (*domain.ReviewDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.bookings.GetForUser(ctx, userID, in.BookingID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("review refused: booking not in user scope",
				slog.String("booking_id", in.BookingID.String()),
				slog.String("user_id", userID.String()))
		}
		return nil, err
	}

	review, err := domain.NewServiceReview(in.BookingID, in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	return s.reviews.GetForUser(ctx, userID, review.ID)
}

// Get returns one review of the user's bookings.
func (s *ReviewService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error) {
	return s.reviews.GetForUser(ctx, userID, id)
}

// List returns reviews of the user's bookings refined by params and filter.
func (s *ReviewService) List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.ReviewFilter) ([]*domain.ReviewDetail, error) {
	return s.reviews.ListForUser(ctx, userID, params, filter)
}

// Update replaces the rating and comment of a review whose booking the
// user owns.
func (s *ReviewService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateReviewInput) (*domain.ReviewDetail, error) {
	detail, err := s.reviews.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	review := detail.ServiceReview
	review.Rating = in.Rating
	review.Comment = in.Comment

	if err := s.reviews.UpdateForUser(ctx, userID, &review); err != nil {
		return nil, err
	}

	return s.reviews.GetForUser(ctx, userID, id)
}

// Delete removes a review whose booking the user owns.
func (s *ReviewService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.reviews.DeleteForUser(ctx, userID, id)
}
