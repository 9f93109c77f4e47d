package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// Function-field mocks of the store interfaces. Unset fields return zero
// values, so each test only wires the calls it expects.

type mockServiceStore struct {
	createFn              func(ctx context.Context, service *domain.Service) error
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	getActiveDetailByIDFn func(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)
	listActiveFn          func(ctx context.Context, params store.ListParams, filter store.ServiceFilter) ([]*domain.ServiceDetail, error)
	listSimilarFn         func(ctx context.Context, service *domain.Service, limit int) ([]*domain.ServiceDetail, error)
	updateFn              func(ctx context.Context, service *domain.Service) error
	deleteFn              func(ctx context.Context, id uuid.UUID) error
}

func (m *mockServiceStore) Create(ctx context.Context, service *domain.Service) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, service)
}

func (m *mockServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if m.getByIDFn == nil {
		return nil, store.ErrServiceNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockServiceStore) GetActiveDetailByID(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	if m.getActiveDetailByIDFn == nil {
		return nil, store.ErrServiceNotFound
	}
	return m.getActiveDetailByIDFn(ctx, id)
}

func (m *mockServiceStore) ListActive(ctx context.Context, params store.ListParams, filter store.ServiceFilter) ([]*domain.ServiceDetail, error) {
	if m.listActiveFn == nil {
		return nil, nil
	}
	return m.listActiveFn(ctx, params, filter)
}

func (m *mockServiceStore) ListSimilar(ctx context.Context, service *domain.Service, limit int) ([]*domain.ServiceDetail, error) {
	if m.listSimilarFn == nil {
		return nil, nil
	}
	return m.listSimilarFn(ctx, service, limit)
}

func (m *mockServiceStore) Update(ctx context.Context, service *domain.Service) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, service)
}

func (m *mockServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type mockBookingStore struct {
	createFn        func(ctx context.Context, booking *domain.ServiceBooking) error
	getForUserFn    func(ctx context.Context, userID, id uuid.UUID) (*domain.BookingDetail, error)
	listForUserFn   func(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.BookingFilter) ([]*domain.BookingDetail, error)
	updateForUserFn func(ctx context.Context, userID uuid.UUID, booking *domain.ServiceBooking) error
	deleteForUserFn func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockBookingStore) Create(ctx context.Context, booking *domain.ServiceBooking) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, booking)
}

func (m *mockBookingStore) GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.BookingDetail, error) {
	if m.getForUserFn == nil {
		return nil, store.ErrBookingNotFound
	}
	return m.getForUserFn(ctx, userID, id)
}

func (m *mockBookingStore) ListForUser(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.BookingFilter) ([]*domain.BookingDetail, error) {
	if m.listForUserFn == nil {
		return nil, nil
	}
	return m.listForUserFn(ctx, userID, params, filter)
}

func (m *mockBookingStore) UpdateForUser(ctx context.Context, userID uuid.UUID, booking *domain.ServiceBooking) error {
	if m.updateForUserFn == nil {
		return nil
	}
	return m.updateForUserFn(ctx, userID, booking)
}

func (m *mockBookingStore) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	if m.deleteForUserFn == nil {
		return nil
	}
	return m.deleteForUserFn(ctx, userID, id)
}

type mockReviewStore struct {
	createFn        func(ctx context.Context, review *domain.ServiceReview) error
	getForUserFn    func(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error)
	listForUserFn   func(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.ReviewFilter) ([]*domain.ReviewDetail, error)
	updateForUserFn func(ctx context.Context, userID uuid.UUID, review *domain.ServiceReview) error
	deleteForUserFn func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockReviewStore) Create(ctx context.Context, review *domain.ServiceReview) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, review)
}

func (m *mockReviewStore) GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error) {
	if m.getForUserFn == nil {
		return nil, store.ErrReviewNotFound
	}
	return m.getForUserFn(ctx, userID, id)
}

func (m *mockReviewStore) ListForUser(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.ReviewFilter) ([]*domain.ReviewDetail, error) {
	if m.listForUserFn == nil {
		return nil, nil
	}
	return m.listForUserFn(ctx, userID, params, filter)
}

func (m *mockReviewStore) UpdateForUser(ctx context.Context, userID uuid.UUID, review *domain.ServiceReview) error {
	if m.updateForUserFn == nil {
		return nil
	}
	return m.updateForUserFn(ctx, userID, review)
}

func (m *mockReviewStore) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	if m.deleteForUserFn == nil {
		return nil
	}
	return m.deleteForUserFn(ctx, userID, id)
}

type mockSavedServiceStore struct {
	upsertFn        func(ctx context.Context, saved *domain.SavedService) (*domain.SavedService, error)
	getForUserFn    func(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error)
	listForUserFn   func(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.SavedServiceFilter) ([]*domain.SavedServiceDetail, error)
	deleteForUserFn func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockSavedServiceStore) Upsert(ctx context.Context, saved *domain.SavedService) (*domain.SavedService, error) {
	if m.upsertFn == nil {
		return saved, nil
	}
	return m.upsertFn(ctx, saved)
}

func (m *mockSavedServiceStore) GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error) {
	if m.getForUserFn == nil {
		return nil, store.ErrSavedServiceNotFound
	}
	return m.getForUserFn(ctx, userID, id)
}

func (m *mockSavedServiceStore) ListForUser(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.SavedServiceFilter) ([]*domain.SavedServiceDetail, error) {
	if m.listForUserFn == nil {
		return nil, nil
	}
	return m.listForUserFn(ctx, userID, params, filter)
}

func (m *mockSavedServiceStore) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	if m.deleteForUserFn == nil {
		return nil
	}
	return m.deleteForUserFn(ctx, userID, id)
}

// activeServiceDetail builds a minimal valid service detail for tests.
func activeServiceDetail(serviceType domain.ServiceType) *domain.ServiceDetail {
	return &domain.ServiceDetail{
		Service: domain.Service{
			ID:         uuid.New(),
			ProviderID: uuid.New(),
			Name:       "Sunday Livestream",
			Price:      75,
			Type:       serviceType,
			IsActive:   true,
		},
		Provider: domain.ServiceProvider{
			ID:           uuid.New(),
			Name:         "Harmony Sound Co",
			ContactEmail: "contact@harmonysound.example.com",
			IsActive:     true,
		},
	}
}
