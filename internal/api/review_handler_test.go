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

type mockReviewManager struct {
	createFn func(ctx context.Context, userID uuid.UUID, in service.CreateReviewInput) (*domain.ReviewDetail, error)
	getFn    func(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error)
	listFn   func(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.ReviewFilter) ([]*domain.ReviewDetail, error)
	updateFn func(ctx context.Context, userID, id uuid.UUID, in service.UpdateReviewInput) (*domain.ReviewDetail, error)
	deleteFn func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockReviewManager) Create(ctx context.Context, userID uuid.UUID, in service.CreateReviewInput) (*domain.ReviewDetail, error) {
	return m.createFn(ctx, userID, in)
}

func (m *mockReviewManager) Get(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockReviewManager) List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.ReviewFilter) ([]*domain.ReviewDetail, error) {
	return m.listFn(ctx, userID, params, filter)
}

func (m *mockReviewManager) Update(ctx context.Context, userID, id uuid.UUID, in service.UpdateReviewInput) (*domain.ReviewDetail, error) {
	return m.updateFn(ctx, userID, id, in)
}

func (m *mockReviewManager) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.deleteFn(ctx, userID, id)
}

func TestCreateReview(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()

	t.Run("creates review and returns 201", func(t *testing.T) {
		detail := sampleReviewDetail()
		manager := &mockReviewManager{
			createFn: func(ctx context.Context, gotUserID uuid.UUID, in service.CreateReviewInput) (*domain.ReviewDetail, error) {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, bookingID, in.BookingID)
				assert.Equal(t, 5, in.Rating)
				assert.Equal(t, "Flawless stream", in.Comment)
				return detail, nil
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		body := `{"booking_id":"` + bookingID.String() + `","rating":5,"comment":"Flawless stream"}`
		req := withUserID(httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body)), userID)
		rr := httptest.NewRecorder()

		handler.CreateReview(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var resp ReviewResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, detail.ID, resp.ID)
		assert.Equal(t, "pastor@stmarks.example.com", resp.User)
		assert.Equal(t, "Sunday Livestream", resp.ServiceName)
	})

	t.Run("duplicate review yields 409", func(t *testing.T) {
		manager := &mockReviewManager{
			createFn: func(ctx context.Context, gotUserID uuid.UUID, in service.CreateReviewInput) (*domain.ReviewDetail, error) {
				return nil, store.ErrReviewExists
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		body := `{"booking_id":"` + bookingID.String() + `","rating":4}`
		req := withUserID(httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body)), userID)
		rr := httptest.NewRecorder()

		handler.CreateReview(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Booking already has a review")
	})

	t.Run("foreign booking yields 404", func(t *testing.T) {
		manager := &mockReviewManager{
			createFn: func(ctx context.Context, gotUserID uuid.UUID, in service.CreateReviewInput) (*domain.ReviewDetail, error) {
				return nil, store.ErrBookingNotFound
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		body := `{"booking_id":"` + bookingID.String() + `","rating":4}`
		req := withUserID(httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body)), userID)
		rr := httptest.NewRecorder()

		handler.CreateReview(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("rating out of range yields 400", func(t *testing.T) {
		handler := NewReviewHandler(&mockReviewManager{}, slog.Default())

		body := `{"booking_id":"` + bookingID.String() + `","rating":6}`
		req := withUserID(httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body)), userID)
		rr := httptest.NewRecorder()

		handler.CreateReview(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing user yields 401", func(t *testing.T) {
		handler := NewReviewHandler(&mockReviewManager{}, slog.Default())

		body := `{"booking_id":"` + bookingID.String() + `","rating":4}`
		req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		handler.CreateReview(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetReview(t *testing.T) {
	userID := uuid.New()

	t.Run("returns review of owned booking", func(t *testing.T) {
		detail := sampleReviewDetail()
		manager := &mockReviewManager{
			getFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.ReviewDetail, error) {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, detail.ID, id)
				return detail, nil
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/reviews/"+detail.ID.String(), nil), userID)
		req = withURLParam(req, "id", detail.ID.String())
		rr := httptest.NewRecorder()

		handler.GetReview(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp ReviewResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, detail.BookingID, resp.BookingID)
		assert.Equal(t, 5, resp.Rating)
	})

	t.Run("foreign review yields 404", func(t *testing.T) {
		manager := &mockReviewManager{
			getFn: func(ctx context.Context, gotUserID, id uuid.UUID) (*domain.ReviewDetail, error) {
				return nil, store.ErrReviewNotFound
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		id := uuid.New()
		req := withUserID(httptest.NewRequest(http.MethodGet, "/reviews/"+id.String(), nil), userID)
		req = withURLParam(req, "id", id.String())
		rr := httptest.NewRecorder()

		handler.GetReview(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Review not found")
	})
}

func TestListReviews(t *testing.T) {
	userID := uuid.New()

	t.Run("lists with rating filter", func(t *testing.T) {
		detail := sampleReviewDetail()
		manager := &mockReviewManager{
			listFn: func(ctx context.Context, gotUserID uuid.UUID, params store.ListParams, filter store.ReviewFilter) ([]*domain.ReviewDetail, error) {
				require.NotNil(t, filter.Rating)
				assert.Equal(t, 5, *filter.Rating)
				return []*domain.ReviewDetail{detail}, nil
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/reviews?rating=5", nil), userID)
		rr := httptest.NewRecorder()

		handler.ListReviews(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp []ReviewResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 1)
	})

	t.Run("malformed filter yields 400", func(t *testing.T) {
		handler := NewReviewHandler(&mockReviewManager{}, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/reviews?rating=five", nil), userID)
		rr := httptest.NewRecorder()

		handler.ListReviews(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateReview(t *testing.T) {
	userID := uuid.New()
	reviewID := uuid.New()

	t.Run("updates rating and comment", func(t *testing.T) {
		detail := sampleReviewDetail()
		detail.Rating = 3

		manager := &mockReviewManager{
			updateFn: func(ctx context.Context, gotUserID, id uuid.UUID, in service.UpdateReviewInput) (*domain.ReviewDetail, error) {
				assert.Equal(t, reviewID, id)
				assert.Equal(t, 3, in.Rating)
				return detail, nil
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		body := `{"rating":3,"comment":"Audio dropped twice"}`
		req := withUserID(httptest.NewRequest(http.MethodPut, "/reviews/"+reviewID.String(), bytes.NewBufferString(body)), userID)
		req = withURLParam(req, "id", reviewID.String())
		rr := httptest.NewRecorder()

		handler.UpdateReview(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp ReviewResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 3, resp.Rating)
	})

	t.Run("foreign review yields 404", func(t *testing.T) {
		manager := &mockReviewManager{
			updateFn: func(ctx context.Context, gotUserID, id uuid.UUID, in service.UpdateReviewInput) (*domain.ReviewDetail, error) {
				return nil, store.ErrReviewNotFound
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		body := `{"rating":3}`
		req := withUserID(httptest.NewRequest(http.MethodPut, "/reviews/"+reviewID.String(), bytes.NewBufferString(body)), userID)
		req = withURLParam(req, "id", reviewID.String())
		rr := httptest.NewRecorder()

		handler.UpdateReview(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteReview(t *testing.T) {
	userID := uuid.New()
	reviewID := uuid.New()

	t.Run("deletes and returns 204", func(t *testing.T) {
		manager := &mockReviewManager{
			deleteFn: func(ctx context.Context, gotUserID, id uuid.UUID) error {
				assert.Equal(t, reviewID, id)
				return nil
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodDelete, "/reviews/"+reviewID.String(), nil), userID)
		req = withURLParam(req, "id", reviewID.String())
		rr := httptest.NewRecorder()

		handler.DeleteReview(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("foreign review yields 404", func(t *testing.T) {
		manager := &mockReviewManager{
			deleteFn: func(ctx context.Context, gotUserID, id uuid.UUID) error {
				return store.ErrReviewNotFound
			},
		}
		handler := NewReviewHandler(manager, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodDelete, "/reviews/"+reviewID.String(), nil), userID)
		req = withURLParam(req, "id", reviewID.String())
		rr := httptest.NewRecorder()

		handler.DeleteReview(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
