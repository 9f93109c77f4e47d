// Package main implements the entry point for the marketplace API server,
// which exposes the church-services catalog and the per-user booking,
// review, and saved-service resources over HTTP.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/vestryhq/marketplace-api/internal/config"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, wires the application together, applies
// pending migrations, and serves until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
