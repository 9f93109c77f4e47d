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

// ProviderReader is the slice of the catalog service the provider
// endpoints need. Only active providers are visible.
type ProviderReader interface {
	ListProviders(ctx context.Context, params store.ListParams) ([]*domain.ServiceProvider, error)
	GetProvider(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error)
}

// ProviderHandler handles provider-related HTTP requests.
type ProviderHandler struct {
	catalog ProviderReader
	logger  *slog.Logger
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(catalog ProviderReader, logger *slog.Logger) *ProviderHandler {
	if logger == nil {
		panic("logger cannot be nil for ProviderHandler")
	}

	return &ProviderHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "provider_handler")),
	}
}

// ListProviders handles GET /providers requests.
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	providers, err := h.catalog.ListProviders(r.Context(), parseListParams(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list providers")
		return
	}

	responses := make([]ProviderResponse, len(providers))
	for i, provider := range providers {
		responses[i] = providerToResponse(provider)
	}

	log.Debug("listed providers", slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetProvider handles GET /providers/{id} requests. Inactive providers
// are reported as not found.
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	provider, err := h.catalog.GetProvider(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get provider")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, providerToResponse(provider))
}
