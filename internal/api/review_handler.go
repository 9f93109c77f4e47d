package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/api/shared"
	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/redact"
	"github.com/vestryhq/marketplace-api/internal/service"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// ReviewManager is the slice of the review service the review endpoints
// need.
type ReviewManager interface {
	Create(ctx context.Context, userID uuid.UUID, in service.CreateReviewInput) (*domain.ReviewDetail, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error)
	List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.ReviewFilter) ([]*domain.ReviewDetail, error)
	Update(ctx context.Context, userID, id uuid.UUID, in service.UpdateReviewInput) (*domain.ReviewDetail, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviews ReviewManager
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews ReviewManager, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// ListReviews handles GET /reviews requests, returning only reviews of
// the authenticated user's bookings.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	filter, err := parseReviewFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid filter parameters")
		return
	}

	reviews, err := h.reviews.List(r.Context(), userID, parseListParams(r), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}

	responses := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = reviewDetailToResponse(review)
	}

	log.Debug("listed reviews",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetReview handles GET /reviews/{id} requests. Reviews of other users'
// bookings are reported as not found.
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	review, err := h.reviews.Get(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reviewDetailToResponse(review))
}

// CreateReview handles POST /reviews requests. The booking must belong
// to the authenticated user and can be reviewed once.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("review request validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid review data")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		HandleAPIError(w, r, domain.ErrInvalidID, "")
		return
	}

	review, err := h.reviews.Create(r.Context(), userID, service.CreateReviewInput{
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create review")
		return
	}

	log.Info("review created",
		slog.String("review_id", review.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, reviewDetailToResponse(review))
}

// UpdateReview handles PUT /reviews/{id} requests.
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("review_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("review request validation failed",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid review data")
		return
	}

	review, err := h.reviews.Update(r.Context(), userID, id, service.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update review")
		return
	}

	log.Info("review updated",
		slog.String("review_id", id.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, reviewDetailToResponse(review))
}

// DeleteReview handles DELETE /reviews/{id} requests.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete review")
		return
	}

	log.Info("review deleted",
		slog.String("review_id", id.String()),
		slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}
