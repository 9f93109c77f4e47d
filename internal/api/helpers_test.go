package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/api/shared"
	"github.com/vestryhq/marketplace-api/internal/domain"
)

// Shared fixtures and request helpers for handler tests.

// withUserID returns the request with the authenticated user's ID in the
// context, the way the authentication middleware would place it.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// withURLParam returns the request with a chi route parameter set, the way
// the router would for a path like /bookings/{id}.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleServiceDetail() *domain.ServiceDetail {
	now := time.Now().UTC()
	categoryID := uuid.New()
	return &domain.ServiceDetail{
		Service: domain.Service{
			ID:          uuid.New(),
			ProviderID:  uuid.New(),
			CategoryID:  &categoryID,
			Name:        "Sunday Livestream",
			Description: "Multi-camera livestream production",
			Price:       75,
			PriceUnit:   "per service",
			Type:        domain.ServiceTypeOneTime,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Provider: domain.ServiceProvider{
			ID:           uuid.New(),
			Name:         "Harmony Sound Co",
			ContactEmail: "contact@harmonysound.example.com",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		Category: &domain.ServiceCategory{
			ID:        categoryID,
			Name:      "Media",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func sampleBookingDetail(userID uuid.UUID) *domain.BookingDetail {
	service := sampleServiceDetail()
	now := time.Now().UTC()
	return &domain.BookingDetail{
		ServiceBooking: domain.ServiceBooking{
			ID:        uuid.New(),
			ServiceID: service.ID,
			UserID:    userID,
			Status:    domain.BookingStatusPending,
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Notes:     "spring retreat",
			CreatedAt: now,
			UpdatedAt: now,
		},
		Service: *service,
	}
}

func sampleReviewDetail() *domain.ReviewDetail {
	now := time.Now().UTC()
	return &domain.ReviewDetail{
		ServiceReview: domain.ServiceReview{
			ID:        uuid.New(),
			BookingID: uuid.New(),
			Rating:    5,
			Comment:   "Flawless stream",
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReviewerEmail: "pastor@stmarks.example.com",
		ServiceName:   "Sunday Livestream",
	}
}

func sampleSavedServiceDetail(userID uuid.UUID) *domain.SavedServiceDetail {
	service := sampleServiceDetail()
	return &domain.SavedServiceDetail{
		SavedService: domain.SavedService{
			ID:        uuid.New(),
			UserID:    userID,
			ServiceID: service.ID,
			CreatedAt: time.Now().UTC(),
		},
		Service: *service,
	}
}
