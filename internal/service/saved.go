package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// BookmarkService implements saved services, the user's private bookmark
// list. Saving is idempotent: bookmarking the same service twice yields
// the existing bookmark.
type BookmarkService struct {
	saved    store.SavedServiceStore
	services store.ServiceStore
	logger   *slog.Logger
}

// NewBookmarkService creates a BookmarkService backed by the given stores.
// If logger is nil, a default logger is used.
func NewBookmarkService(saved store.SavedServiceStore, services store.ServiceStore, logger *slog.Logger) *BookmarkService {
	if saved == nil || services == nil {
		panic("stores cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &BookmarkService{
		saved:    saved,
		services: services,
		logger:   logger.With(slog.String("component", "bookmark_service")),
	}
}

// Create bookmarks a service for the user and returns the bookmark with
// the service embedded. Only active services can be bookmarked. If the
// user already saved the service, the existing bookmark is returned
// instead of an error.
func (s *BookmarkService) Create(ctx context.Context, userID, serviceID uuid.UUID) (*domain.SavedServiceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.services.GetActiveDetailByID(ctx, serviceID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("bookmark refused: service not active",
				slog.String("service_id", serviceID.String()))
			return nil, ErrServiceNotActive
		}
		return nil, err
	}

	saved, err := domain.NewSavedService(userID, serviceID)
	if err != nil {
		return nil, err
	}

	row, err := s.saved.Upsert(ctx, saved)
	if err != nil {
		return nil, err
	}

	if row.ID != saved.ID {
		log.Debug("service already saved, returning existing bookmark",
			slog.String("saved_service_id", row.ID.String()))
	}

	return s.saved.GetForUser(ctx, userID, row.ID)
}

// Get returns one of the user's bookmarks with the service embedded.
func (s *BookmarkService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error) {
	return s.saved.GetForUser(ctx, userID, id)
}

// List returns the user's bookmarks refined by params and filter.
func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.SavedServiceFilter) ([]*domain.SavedServiceDetail, error) {
	return s.saved.ListForUser(ctx, userID, params, filter)
}

// Delete removes a bookmark the user owns.
func (s *BookmarkService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.saved.DeleteForUser(ctx, userID, id)
}
