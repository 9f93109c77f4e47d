package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/api/shared"
	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// CategoryReader is the slice of the catalog service the category
// endpoints need.
type CategoryReader interface {
	ListCategories(ctx context.Context, params store.ListParams) ([]*domain.ServiceCategory, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.ServiceCategory, error)
}

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	catalog CategoryReader
	logger  *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(catalog CategoryReader, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		panic("logger cannot be nil for CategoryHandler")
	}

	return &CategoryHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "category_handler")),
	}
}

// ListCategories handles GET /categories requests.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	categories, err := h.catalog.ListCategories(r.Context(), parseListParams(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = categoryToResponse(category)
	}

	log.Debug("listed categories", slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetCategory handles GET /categories/{id} requests.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(category))
}
