package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// providerSpec declares the queryable surface of the provider list.
var providerSpec = store.Spec{
	SearchColumns: []string{"name", "description"},
	OrderColumns: map[string]string{
		"name":       "name",
		"created_at": "created_at",
	},
	DefaultOrder: "name",
	TieBreak:     "id",
}

const providerColumns = `id, name, description, website, contact_email, contact_phone, is_active, created_at, updated_at`

// PostgresProviderStore implements the store.ProviderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProviderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProviderStore creates a new PostgreSQL implementation of the
// ProviderStore interface. If logger is nil, a default logger is used.
func NewPostgresProviderStore(db store.DBTX, logger *slog.Logger) *PostgresProviderStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProviderStore{
		db:     db,
		logger: logger.With(slog.String("component", "provider_store")),
	}
}

// Ensure PostgresProviderStore implements store.ProviderStore interface
var _ store.ProviderStore = (*PostgresProviderStore)(nil)

// Create implements store.ProviderStore.Create
func (s *PostgresProviderStore) Create(ctx context.Context, provider *domain.ServiceProvider) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := provider.Validate(); err != nil {
		log.Warn("provider validation failed during create",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return err
	}

	query := `
		INSERT INTO service_providers
			(id, name, description, website, contact_email, contact_phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		provider.ID,
		provider.Name,
		provider.Description,
		provider.Website,
		provider.ContactEmail,
		provider.ContactPhone,
		provider.IsActive,
		provider.CreatedAt,
		provider.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return MapError(err)
	}

	log.Info("provider created",
		slog.String("provider_id", provider.ID.String()),
		slog.String("name", provider.Name))
	return nil
}

func (s *PostgresProviderStore) getByQuery(ctx context.Context, query string, id uuid.UUID) (*domain.ServiceProvider, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var provider domain.ServiceProvider
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&provider.ID,
		&provider.Name,
		&provider.Description,
		&provider.Website,
		&provider.ContactEmail,
		&provider.ContactPhone,
		&provider.IsActive,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("provider not found", slog.String("provider_id", id.String()))
			return nil, store.ErrProviderNotFound
		}
		log.Error("failed to get provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return nil, err
	}

	return &provider, nil
}

// GetByID implements store.ProviderStore.GetByID
func (s *PostgresProviderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error) {
	return s.getByQuery(ctx,
		`SELECT `+providerColumns+` FROM service_providers WHERE id = $1`, id)
}

// GetActiveByID implements store.ProviderStore.GetActiveByID
// Inactive providers are indistinguishable from missing ones.
func (s *PostgresProviderStore) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error) {
	return s.getByQuery(ctx,
		`SELECT `+providerColumns+` FROM service_providers WHERE id = $1 AND is_active = TRUE`, id)
}

// ListActive implements store.ProviderStore.ListActive
func (s *PostgresProviderStore) ListActive(ctx context.Context, params store.ListParams) ([]*domain.ServiceProvider, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	base := `SELECT ` + providerColumns + ` FROM service_providers`

	qb := store.NewQueryBuilder()
	conds := []string{
		"is_active = TRUE",
		providerSpec.SearchCondition(qb, params.Search),
	}
	query := store.AppendWhere(base, conds) + providerSpec.OrderClause(params.OrderBy)

	rows, err := s.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		log.Error("failed to list providers", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	providers := []*domain.ServiceProvider{}
	for rows.Next() {
		var provider domain.ServiceProvider
		err := rows.Scan(
			&provider.ID,
			&provider.Name,
			&provider.Description,
			&provider.Website,
			&provider.ContactEmail,
			&provider.ContactPhone,
			&provider.IsActive,
			&provider.CreatedAt,
			&provider.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan provider row", slog.String("error", err.Error()))
			return nil, err
		}
		providers = append(providers, &provider)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning provider rows", slog.String("error", err.Error()))
		return nil, err
	}

	return providers, nil
}

// Update implements store.ProviderStore.Update
func (s *PostgresProviderStore) Update(ctx context.Context, provider *domain.ServiceProvider) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := provider.Validate(); err != nil {
		log.Warn("provider validation failed during update",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return err
	}

	provider.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE service_providers
		SET name = $1, description = $2, website = $3, contact_email = $4,
			contact_phone = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		provider.Name,
		provider.Description,
		provider.Website,
		provider.ContactEmail,
		provider.ContactPhone,
		provider.IsActive,
		provider.UpdatedAt,
		provider.ID,
	)
	if err != nil {
		log.Error("failed to update provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProviderNotFound)
}

// Delete implements store.ProviderStore.Delete
// The schema cascades the delete to the provider's services; if any of
// those services still have bookings, the booking guard blocks the whole
// delete and nothing is removed.
func (s *PostgresProviderStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM service_providers WHERE id = $1`, id)
	if err != nil {
		log.Warn("failed to delete provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return MapDeleteError(err, store.ErrServiceHasBookings)
	}

	if err := CheckRowsAffected(result, store.ErrProviderNotFound); err != nil {
		return err
	}

	log.Info("provider deleted", slog.String("provider_id", id.String()))
	return nil
}
