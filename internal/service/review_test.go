package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/store"
)

func TestReviewServiceCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookingID := uuid.New()

	ownedBooking := func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.BookingDetail, error) {
		if gotUserID != userID || id != bookingID {
			return nil, store.ErrBookingNotFound
		}
		return &domain.BookingDetail{
			ServiceBooking: domain.ServiceBooking{ID: bookingID, UserID: userID},
		}, nil
	}

	t.Run("reviews an owned booking", func(t *testing.T) {
		var stored *domain.ServiceReview
		reviews := &mockReviewStore{
			createFn: func(ctx context.Context, review *domain.ServiceReview) error {
				stored = review
				return nil
			},
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.ReviewDetail, error) {
				assert.Equal(t, stored.ID, id)
				return &domain.ReviewDetail{
					ServiceReview: *stored,
					ReviewerEmail: "pastor@stmarks.example.com",
					ServiceName:   "Sunday Livestream",
				}, nil
			},
		}
		bookings := &mockBookingStore{getForUserFn: ownedBooking}

		svc := NewReviewService(reviews, bookings, nil)
		got, err := svc.Create(context.Background(), userID, CreateReviewInput{
			BookingID: bookingID,
			Rating:    4,
			Comment:   "Great quality, minor delays",
		})

		require.NoError(t, err)
		assert.Equal(t, bookingID, stored.BookingID)
		assert.Equal(t, 4, stored.Rating)
		assert.Equal(t, "pastor@stmarks.example.com", got.ReviewerEmail)
		assert.Equal(t, "Sunday Livestream", got.ServiceName)
	})

	t.Run("foreign booking reports not found, not forbidden", func(t *testing.T) {
		reviews := &mockReviewStore{
			createFn: func(ctx context.Context, review *domain.ServiceReview) error {
				t.Fatal("Create should not be called")
				return nil
			},
		}
		bookings := &mockBookingStore{getForUserFn: ownedBooking}

		svc := NewReviewService(reviews, bookings, nil)
		_, err := svc.Create(context.Background(), uuid.New(), CreateReviewInput{
			BookingID: bookingID,
			Rating:    4,
		})

		assert.ErrorIs(t, err, store.ErrBookingNotFound)
	})

	t.Run("rating out of bounds is refused", func(t *testing.T) {
		bookings := &mockBookingStore{getForUserFn: ownedBooking}

		svc := NewReviewService(&mockReviewStore{}, bookings, nil)
		_, err := svc.Create(context.Background(), userID, CreateReviewInput{
			BookingID: bookingID,
			Rating:    6,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	})

	t.Run("second review of a booking conflicts", func(t *testing.T) {
		reviews := &mockReviewStore{
			createFn: func(ctx context.Context, review *domain.ServiceReview) error {
				return store.ErrReviewExists
			},
		}
		bookings := &mockBookingStore{getForUserFn: ownedBooking}

		svc := NewReviewService(reviews, bookings, nil)
		_, err := svc.Create(context.Background(), userID, CreateReviewInput{
			BookingID: bookingID,
			Rating:    5,
		})

		assert.ErrorIs(t, err, store.ErrReviewExists)
		assert.True(t, store.IsDuplicateError(err))
	})
}

func TestReviewServiceUpdate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	reviewID := uuid.New()
	bookingID := uuid.New()

	t.Run("replaces rating and comment only", func(t *testing.T) {
		var updated *domain.ServiceReview
		reviews := &mockReviewStore{
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.ReviewDetail, error) {
				if updated != nil {
					return &domain.ReviewDetail{ServiceReview: *updated}, nil
				}
				return &domain.ReviewDetail{
					ServiceReview: domain.ServiceReview{
						ID:        reviewID,
						BookingID: bookingID,
						Rating:    2,
						Comment:   "initial impression",
					},
				}, nil
			},
			updateForUserFn: func(ctx context.Context, gotUserID uuid.UUID, review *domain.ServiceReview) error {
				updated = review
				return nil
			},
		}

		svc := NewReviewService(reviews, &mockBookingStore{}, nil)
		got, err := svc.Update(context.Background(), userID, reviewID, UpdateReviewInput{
			Rating:  5,
			Comment: "they fixed everything",
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, reviewID, updated.ID)
		assert.Equal(t, bookingID, updated.BookingID, "booking association must stay immutable")
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, 5, got.Rating)
	})

	t.Run("review of a foreign booking reports not found", func(t *testing.T) {
		reviews := &mockReviewStore{
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.ReviewDetail, error) {
				return nil, store.ErrReviewNotFound
			},
		}

		svc := NewReviewService(reviews, &mockBookingStore{}, nil)
		_, err := svc.Update(context.Background(), userID, reviewID, UpdateReviewInput{Rating: 5})

		assert.ErrorIs(t, err, store.ErrReviewNotFound)
	})
}
