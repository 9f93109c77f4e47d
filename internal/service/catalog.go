package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// similarServicesLimit caps the similar-services lookup.
const similarServicesLimit = 4

// CatalogService exposes the read-only discovery surface: categories,
// providers, and services. Inactive providers and services are filtered
// out before any caller-supplied refinement.
type CatalogService struct {
	categories store.CategoryStore
	providers  store.ProviderStore
	services   store.ServiceStore
	logger     *slog.Logger
}

// NewCatalogService creates a CatalogService backed by the given stores.
// If logger is nil, a default logger is used.
func NewCatalogService(
	categories store.CategoryStore,
	providers store.ProviderStore,
	services store.ServiceStore,
	logger *slog.Logger,
) *CatalogService {
	if categories == nil || providers == nil || services == nil {
		panic("stores cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{
		categories: categories,
		providers:  providers,
		services:   services,
		logger:     logger.With(slog.String("component", "catalog_service")),
	}
}

// ListCategories returns all categories refined by params.
func (s *CatalogService) ListCategories(ctx context.Context, params store.ListParams) ([]*domain.ServiceCategory, error) {
	return s.categories.List(ctx, params)
}

// GetCategory returns one category by ID.
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*domain.ServiceCategory, error) {
	return s.categories.GetByID(ctx, id)
}

// ListProviders returns active providers refined by params.
func (s *CatalogService) ListProviders(ctx context.Context, params store.ListParams) ([]*domain.ServiceProvider, error) {
	return s.providers.ListActive(ctx, params)
}

// GetProvider returns one active provider by ID. Inactive providers are
// reported as not found.
func (s *CatalogService) GetProvider(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error) {
	return s.providers.GetActiveByID(ctx, id)
}

// ListServices returns active services with provider and category
// embedded, refined by params and filter.
func (s *CatalogService) ListServices(ctx context.Context, params store.ListParams, filter store.ServiceFilter) ([]*domain.ServiceDetail, error) {
	return s.services.ListActive(ctx, params, filter)
}

// GetService returns one active service with provider and category
// embedded. Inactive services are reported as not found.
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	return s.services.GetActiveDetailByID(ctx, id)
}

// ListSimilarServices returns up to four other active services sharing the
// given service's category. Uncategorized services are similar to other
// uncategorized services. Returns ErrServiceNotFound if the source service
// does not exist or is inactive.
func (s *CatalogService) ListSimilarServices(ctx context.Context, id uuid.UUID) ([]*domain.ServiceDetail, error) {
	detail, err := s.services.GetActiveDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.services.ListSimilar(ctx, &detail.Service, similarServicesLimit)
}
