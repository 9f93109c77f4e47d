package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/service"
	"github.com/vestryhq/marketplace-api/internal/store"
)

type mockBookmarkManager struct {
	createFn func(ctx context.Context, userID, serviceID uuid.UUID) (*domain.SavedServiceDetail, error)
	getFn    func(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error)
	listFn   func(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.SavedServiceFilter) ([]*domain.SavedServiceDetail, error)
	deleteFn func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockBookmarkManager) Create(ctx context.Context, userID, serviceID uuid.UUID) (*domain.SavedServiceDetail, error) {
	return m.createFn(ctx, userID, serviceID)
}

func (m *mockBookmarkManager) Get(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockBookmarkManager) List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.SavedServiceFilter) ([]*domain.SavedServiceDetail, error) {
	return m.listFn(ctx, userID, params, filter)
}

func (m *mockBookmarkManager) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.deleteFn(ctx, userID, id)
}

func TestCreateSavedService(t *testing.T) {
	userID := uuid.New()
	serviceID := uuid.New()

	t.Run("saves service and returns 201", func(t *testing.T) {
		detail := sampleSavedServiceDetail(userID)
		manager := &mockBookmarkManager{
			createFn: func(ctx context.Context, gotUserID, gotServiceID uuid.UUID) (*domain.SavedServiceDetail, error) {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, serviceID, gotServiceID)
				return detail, nil
			},
		}
		handler := NewSavedServiceHandler(manager, slog.Default())

		body := `{"service_id":"` + serviceID.String() + `"}`
		req := withUserID(httptest.NewRequest(http.MethodPost, "/saved-services", bytes.NewBufferString(body)), userID)
		rr := httptest.NewRecorder()

		handler.CreateSavedService(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var resp SavedServiceResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, detail.ID, resp.ID)
		assert.Equal(t, detail.Service.ID, resp.Service.ID)
	})

	t.Run("inactive service yields 400", func(t *testing.T) {
		manager := &mockBookmarkManager{
			createFn: func(ctx context.Context, gotUserID, gotServiceID uuid.UUID) (*domain.SavedServiceDetail, error) {
				return nil, service.ErrServiceNotActive
			},
		}
		handler := NewSavedServiceHandler(manager, slog.Default())

		body := `{"service_id":"` + serviceID.String() + `"}`
		req := withUserID(httptest.NewRequest(http.MethodPost, "/saved-services", bytes.NewBufferString(body)), userID)
		rr := httptest.NewRecorder()

		handler.CreateSavedService(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Service does not exist or is not active")
	})

	t.Run("missing service_id yields 400", func(t *testing.T) {
		handler := NewSavedServiceHandler(&mockBookmarkManager{}, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodPost, "/saved-services", bytes.NewBufferString(`{}`)), userID)
		rr := httptest.NewRecorder()

		handler.CreateSavedService(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing user yields 401", func(t *testing.T) {
		handler := NewSavedServiceHandler(&mockBookmarkManager{}, slog.Default())

		body := `{"service_id":"` + serviceID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/saved-services", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		handler.CreateSavedService(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetSavedService(t *testing.T) {
	userID := uuid.New()

	t.Run("returns owned bookmark", func(t *testing.T) {
		detail := sampleSavedServiceDetail(userID)
		manager := &mockBookmarkManager{
			getFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.SavedServiceDetail, error) {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, detail.ID, id)
				return detail, nil
			},
		}
		handler := NewSavedServiceHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/saved-services/"+detail.ID.String(), nil), userID)
		req = withURLParam(req, "id", detail.ID.String())
		rr := httptest.NewRecorder()

		handler.GetSavedService(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("foreign bookmark yields 404", func(t *testing.T) {
		manager := &mockBookmarkManager{
			getFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.SavedServiceDetail, error) {
				return nil, store.ErrSavedServiceNotFound
			},
		}
		handler := NewSavedServiceHandler(manager, slog.Default())

		id := uuid.New()
		req := withUserID(httptest.NewRequest(http.MethodGet, "/saved-services/"+id.String(), nil), userID)
		req = withURLParam(req, "id", id.String())
		rr := httptest.NewRecorder()

		handler.GetSavedService(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Saved service not found")
	})
}

func TestListSavedServices(t *testing.T) {
	userID := uuid.New()

	t.Run("lists with category filter", func(t *testing.T) {
		categoryID := uuid.New()
		detail := sampleSavedServiceDetail(userID)
		manager := &mockBookmarkManager{
			listFn: func(ctx context.Context, gotUserID uuid.UUID, params store.ListParams, filter store.SavedServiceFilter) ([]*domain.SavedServiceDetail, error) {
				assert.Equal(t, userID, gotUserID)
				require.NotNil(t, filter.CategoryID)
				assert.Equal(t, categoryID, *filter.CategoryID)
				return []*domain.SavedServiceDetail{detail}, nil
			},
		}
		handler := NewSavedServiceHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/saved-services?service__category="+categoryID.String(), nil), userID)
		rr := httptest.NewRecorder()

		handler.ListSavedServices(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp []SavedServiceResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 1)
	})

	t.Run("malformed filter yields 400", func(t *testing.T) {
		handler := NewSavedServiceHandler(&mockBookmarkManager{}, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/saved-services?service=oops", nil), userID)
		rr := httptest.NewRecorder()

		handler.ListSavedServices(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteSavedService(t *testing.T) {
	userID := uuid.New()
	savedID := uuid.New()

	t.Run("deletes and returns 204", func(t *testing.T) {
		manager := &mockBookmarkManager{
			deleteFn: func(ctx context.Context, gotUserID, id uuid.UUID) error {
				assert.Equal(t, savedID, id)
				return nil
			},
		}
		handler := NewSavedServiceHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodDelete, "/saved-services/"+savedID.String(), nil), userID)
		req = withURLParam(req, "id", savedID.String())
		rr := httptest.NewRecorder()

		handler.DeleteSavedService(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("foreign bookmark yields 404", func(t *testing.T) {
		manager := &mockBookmarkManager{
			deleteFn: func(ctx context.Context, gotUserID, id uuid.UUID) error {
				return store.ErrSavedServiceNotFound
			},
		}
		handler := NewSavedServiceHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodDelete, "/saved-services/"+savedID.String(), nil), userID)
		req = withURLParam(req, "id", savedID.String())
		rr := httptest.NewRecorder()

		handler.DeleteSavedService(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
