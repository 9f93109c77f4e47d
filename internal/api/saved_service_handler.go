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
	"github.com/vestryhq/marketplace-api/internal/store"
)

// BookmarkManager is the slice of the bookmark service the saved-service
// endpoints need.
type BookmarkManager interface {
	Create(ctx context.Context, userID, serviceID uuid.UUID) (*domain.SavedServiceDetail, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error)
	List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.SavedServiceFilter) ([]*domain.SavedServiceDetail, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SavedServiceHandler handles saved-service HTTP requests.
type SavedServiceHandler struct {
	bookmarks BookmarkManager
	logger    *slog.Logger
}

// NewSavedServiceHandler creates a new SavedServiceHandler.
func NewSavedServiceHandler(bookmarks BookmarkManager, logger *slog.Logger) *SavedServiceHandler {
	if logger == nil {
		panic("logger cannot be nil for SavedServiceHandler")
	}

	return &SavedServiceHandler{
		bookmarks: bookmarks,
		logger:    logger.With(slog.String("component", "saved_service_handler")),
	}
}

// ListSavedServices handles GET /saved-services requests, returning only
// the authenticated user's bookmarks.
func (h *SavedServiceHandler) ListSavedServices(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	filter, err := parseSavedServiceFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid filter parameters")
		return
	}

	saved, err := h.bookmarks.List(r.Context(), userID, parseListParams(r), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list saved services")
		return
	}

	responses := make([]SavedServiceResponse, len(saved))
	for i, s := range saved {
		responses[i] = savedServiceDetailToResponse(s)
	}

	log.Debug("listed saved services",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetSavedService handles GET /saved-services/{id} requests. Bookmarks
// owned by other users are reported as not found.
func (h *SavedServiceHandler) GetSavedService(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	saved, err := h.bookmarks.Get(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get saved service")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, savedServiceDetailToResponse(saved))
}

// CreateSavedService handles POST /saved-services requests. Saving the
// same service twice returns the existing bookmark.
func (h *SavedServiceHandler) CreateSavedService(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateSavedServiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("saved service request validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid saved service data")
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		HandleAPIError(w, r, domain.ErrInvalidID, "")
		return
	}

	saved, err := h.bookmarks.Create(r.Context(), userID, serviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save service")
		return
	}

	log.Info("service saved",
		slog.String("saved_service_id", saved.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, savedServiceDetailToResponse(saved))
}

// DeleteSavedService handles DELETE /saved-services/{id} requests.
func (h *SavedServiceHandler) DeleteSavedService(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete saved service")
		return
	}

	log.Info("saved service deleted",
		slog.String("saved_service_id", id.String()),
		slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}
