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

// ServiceReader is the slice of the catalog service the service endpoints
// need. Only active services are visible.
type ServiceReader interface {
	ListServices(ctx context.Context, params store.ListParams, filter store.ServiceFilter) ([]*domain.ServiceDetail, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)
	ListSimilarServices(ctx context.Context, id uuid.UUID) ([]*domain.ServiceDetail, error)
}

// ServiceHandler handles service-related HTTP requests.
type ServiceHandler struct {
	catalog ServiceReader
	logger  *slog.Logger
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(catalog ServiceReader, logger *slog.Logger) *ServiceHandler {
	if logger == nil {
		panic("logger cannot be nil for ServiceHandler")
	}

	return &ServiceHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "service_handler")),
	}
}

// ListServices handles GET /services requests.
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter, err := parseServiceFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid filter parameters")
		return
	}

	services, err := h.catalog.ListServices(r.Context(), parseListParams(r), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list services")
		return
	}

	log.Debug("listed services", slog.Int("count", len(services)))
	shared.RespondWithJSON(w, r, http.StatusOK, serviceDetailsToResponse(services))
}

// GetService handles GET /services/{id} requests. Inactive services are
// reported as not found.
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	detail, err := h.catalog.GetService(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get service")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, serviceDetailToResponse(detail))
}

// ListSimilarServices handles GET /services/{id}/similar requests,
// returning up to four other active services in the same category.
func (h *ServiceHandler) ListSimilarServices(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	similar, err := h.catalog.ListSimilarServices(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list similar services")
		return
	}

	log.Debug("listed similar services",
		slog.String("service_id", id.String()),
		slog.Int("count", len(similar)))
	shared.RespondWithJSON(w, r, http.StatusOK, serviceDetailsToResponse(similar))
}
