package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vestryhq/marketplace-api/internal/config"
	"github.com/vestryhq/marketplace-api/internal/platform/postgres"
	"github.com/vestryhq/marketplace-api/internal/service"
	"github.com/vestryhq/marketplace-api/internal/service/auth"
)

// application holds the long-lived dependencies of the server: the
// configuration, the database handle, and the services the HTTP layer
// is built on.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	catalogService  *service.CatalogService
	bookingService  *service.BookingService
	reviewService   *service.ReviewService
	bookmarkService *service.BookmarkService
}

// newApplication wires stores and services on top of the given database
// connection. The stores all share the plain *sql.DB handle; per-request
// transactions are not needed because every operation is a single
// statement or relies on database constraints for atomicity.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	categoryStore := postgres.NewPostgresCategoryStore(db, logger)
	providerStore := postgres.NewPostgresProviderStore(db, logger)
	serviceStore := postgres.NewPostgresServiceStore(db, logger)
	bookingStore := postgres.NewPostgresBookingStore(db, logger)
	reviewStore := postgres.NewPostgresReviewStore(db, logger)
	savedServiceStore := postgres.NewPostgresSavedServiceStore(db, logger)

	return &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		jwtService: jwtService,

		catalogService:  service.NewCatalogService(categoryStore, providerStore, serviceStore, logger),
		bookingService:  service.NewBookingService(bookingStore, serviceStore, logger),
		reviewService:   service.NewReviewService(reviewStore, bookingStore, logger),
		bookmarkService: service.NewBookmarkService(savedServiceStore, serviceStore, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
