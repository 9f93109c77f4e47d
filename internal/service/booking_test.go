package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/store"
)

func TestBookingServiceCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	startDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("one-time service books without an end date", func(t *testing.T) {
		detail := activeServiceDetail(domain.ServiceTypeOneTime)

		var stored *domain.ServiceBooking
		bookings := &mockBookingStore{
			createFn: func(ctx context.Context, booking *domain.ServiceBooking) error {
				stored = booking
				return nil
			},
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.BookingDetail, error) {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, stored.ID, id)
				return &domain.BookingDetail{ServiceBooking: *stored, Service: *detail}, nil
			},
		}
		services := &mockServiceStore{
			getActiveDetailByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
				return detail, nil
			},
		}

		svc := NewBookingService(bookings, services, nil)
		got, err := svc.Create(context.Background(), userID, CreateBookingInput{
			ServiceID: detail.ID,
			StartDate: startDate,
			Notes:     "spring retreat",
		})

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, domain.BookingStatusPending, stored.Status)
		assert.Equal(t, userID, stored.UserID)
		assert.Equal(t, detail.ID, stored.ServiceID)
		assert.Nil(t, stored.EndDate)
		assert.Equal(t, stored.ID, got.ID)
	})

	t.Run("subscription without end date is refused", func(t *testing.T) {
		services := &mockServiceStore{
			getActiveDetailByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
				return activeServiceDetail(domain.ServiceTypeSubscription), nil
			},
		}
		bookings := &mockBookingStore{
			createFn: func(ctx context.Context, booking *domain.ServiceBooking) error {
				t.Fatal("Create should not be called")
				return nil
			},
		}

		svc := NewBookingService(bookings, services, nil)
		_, err := svc.Create(context.Background(), userID, CreateBookingInput{
			ServiceID: uuid.New(),
			StartDate: startDate,
		})

		assert.ErrorIs(t, err, domain.ErrEndDateRequired)
	})

	t.Run("subscription with end date books", func(t *testing.T) {
		detail := activeServiceDetail(domain.ServiceTypeSubscription)

		var stored *domain.ServiceBooking
		bookings := &mockBookingStore{
			createFn: func(ctx context.Context, booking *domain.ServiceBooking) error {
				stored = booking
				return nil
			},
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.BookingDetail, error) {
				return &domain.BookingDetail{ServiceBooking: *stored, Service: *detail}, nil
			},
		}
		services := &mockServiceStore{
			getActiveDetailByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
				return detail, nil
			},
		}

		svc := NewBookingService(bookings, services, nil)
		got, err := svc.Create(context.Background(), userID, CreateBookingInput{
			ServiceID: detail.ID,
			StartDate: startDate,
			EndDate:   &endDate,
		})

		require.NoError(t, err)
		require.NotNil(t, got.EndDate)
		assert.True(t, got.EndDate.Equal(endDate))
	})

	t.Run("inactive or missing service is refused", func(t *testing.T) {
		services := &mockServiceStore{
			getActiveDetailByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
				return nil, store.ErrServiceNotFound
			},
		}

		svc := NewBookingService(&mockBookingStore{}, services, nil)
		_, err := svc.Create(context.Background(), userID, CreateBookingInput{
			ServiceID: uuid.New(),
			StartDate: startDate,
		})

		assert.ErrorIs(t, err, ErrServiceNotActive)
		assert.True(t, domain.IsValidationError(err), "should classify as a validation error")
	})
}

func TestBookingServiceUpdate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookingID := uuid.New()
	startDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	existingDetail := func(serviceType domain.ServiceType) *domain.BookingDetail {
		detail := activeServiceDetail(serviceType)
		return &domain.BookingDetail{
			ServiceBooking: domain.ServiceBooking{
				ID:        bookingID,
				ServiceID: detail.ID,
				UserID:    userID,
				Status:    domain.BookingStatusPending,
				StartDate: startDate,
			},
			Service: *detail,
		}
	}

	t.Run("updates mutable fields within user scope", func(t *testing.T) {
		var updated *domain.ServiceBooking
		bookings := &mockBookingStore{
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.BookingDetail, error) {
				assert.Equal(t, userID, gotUserID)
				if updated != nil {
					return &domain.BookingDetail{ServiceBooking: *updated}, nil
				}
				return existingDetail(domain.ServiceTypeOneTime), nil
			},
			updateForUserFn: func(ctx context.Context, gotUserID uuid.UUID, booking *domain.ServiceBooking) error {
				updated = booking
				return nil
			},
		}

		svc := NewBookingService(bookings, &mockServiceStore{}, nil)
		got, err := svc.Update(context.Background(), userID, bookingID, UpdateBookingInput{
			Status:    domain.BookingStatusCancelled,
			StartDate: startDate,
			Notes:     "postponed to fall",
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, bookingID, updated.ID)
		assert.Equal(t, domain.BookingStatusCancelled, updated.Status)
		assert.Equal(t, "postponed to fall", updated.Notes)
		assert.Equal(t, domain.BookingStatusCancelled, got.Status)
	})

	t.Run("subscription end-date rule is re-checked", func(t *testing.T) {
		bookings := &mockBookingStore{
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.BookingDetail, error) {
				return existingDetail(domain.ServiceTypeSubscription), nil
			},
			updateForUserFn: func(ctx context.Context, gotUserID uuid.UUID, booking *domain.ServiceBooking) error {
				t.Fatal("UpdateForUser should not be called")
				return nil
			},
		}

		svc := NewBookingService(bookings, &mockServiceStore{}, nil)
		_, err := svc.Update(context.Background(), userID, bookingID, UpdateBookingInput{
			Status:    domain.BookingStatusConfirmed,
			StartDate: startDate,
		})

		assert.ErrorIs(t, err, domain.ErrEndDateRequired)
	})

	t.Run("foreign booking reports not found", func(t *testing.T) {
		bookings := &mockBookingStore{
			getForUserFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.BookingDetail, error) {
				return nil, store.ErrBookingNotFound
			},
		}

		svc := NewBookingService(bookings, &mockServiceStore{}, nil)
		_, err := svc.Update(context.Background(), userID, bookingID, UpdateBookingInput{
			Status:    domain.BookingStatusConfirmed,
			StartDate: startDate,
		})

		assert.ErrorIs(t, err, store.ErrBookingNotFound)
	})
}
