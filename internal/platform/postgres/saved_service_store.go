package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// savedServiceSpec declares the queryable surface of the saved-service list.
var savedServiceSpec = store.Spec{
	OrderColumns: map[string]string{
		"created_at": "v.created_at",
	},
	DefaultOrder: "-created_at",
	TieBreak:     "v.id",
}

const savedServiceDetailColumns = `
	v.id, v.user_id, v.service_id, v.created_at,`

const savedServiceDetailFrom = `
	FROM saved_services v
	JOIN services s ON s.id = v.service_id
	JOIN service_providers p ON p.id = s.provider_id
	LEFT JOIN service_categories c ON c.id = s.category_id`

// PostgresSavedServiceStore implements the store.SavedServiceStore
// interface using a PostgreSQL database as the storage backend.
type PostgresSavedServiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSavedServiceStore creates a new PostgreSQL implementation of
// the SavedServiceStore interface. If logger is nil, a default logger is used.
func NewPostgresSavedServiceStore(db store.DBTX, logger *slog.Logger) *PostgresSavedServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSavedServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "saved_service_store")),
	}
}

// Ensure PostgresSavedServiceStore implements store.SavedServiceStore interface
var _ store.SavedServiceStore = (*PostgresSavedServiceStore)(nil)

// scanSavedServiceDetail scans one joined saved-service row.
func scanSavedServiceDetail(row rowScanner) (*domain.SavedServiceDetail, error) {
	var (
		detail domain.SavedServiceDetail

		categoryID  uuid.NullUUID
		serviceType string

		catID        uuid.NullUUID
		catName      sql.NullString
		catDesc      sql.NullString
		catIcon      sql.NullString
		catCreatedAt sql.NullTime
		catUpdatedAt sql.NullTime
	)

	err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&detail.SavedService.ServiceID,
		&detail.SavedService.CreatedAt,
		&detail.Service.ID,
		&detail.Service.ProviderID,
		&categoryID,
		&detail.Service.Name,
		&detail.Service.Description,
		&detail.Service.Price,
		&detail.Service.PriceUnit,
		&serviceType,
		&detail.Service.IsActive,
		&detail.Service.Service.CreatedAt,
		&detail.Service.Service.UpdatedAt,
		&detail.Service.Provider.ID,
		&detail.Service.Provider.Name,
		&detail.Service.Provider.Description,
		&detail.Service.Provider.Website,
		&detail.Service.Provider.ContactEmail,
		&detail.Service.Provider.ContactPhone,
		&detail.Service.Provider.IsActive,
		&detail.Service.Provider.CreatedAt,
		&detail.Service.Provider.UpdatedAt,
		&catID,
		&catName,
		&catDesc,
		&catIcon,
		&catCreatedAt,
		&catUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	detail.Service.Type = domain.ServiceType(serviceType)
	if categoryID.Valid {
		cid := categoryID.UUID
		detail.Service.CategoryID = &cid
	}
	if catID.Valid {
		detail.Service.Category = &domain.ServiceCategory{
			ID:          catID.UUID,
			Name:        catName.String,
			Description: catDesc.String,
			Icon:        catIcon.String,
			CreatedAt:   catCreatedAt.Time,
			UpdatedAt:   catUpdatedAt.Time,
		}
	}

	return &detail, nil
}

// Upsert implements store.SavedServiceStore.Upsert
// ON CONFLICT DO NOTHING makes the create idempotent at the store level:
// when the pair already exists (including via a concurrent insert), the
// existing row is fetched and returned instead of an error.
func (s *PostgresSavedServiceStore) Upsert(ctx context.Context, saved *domain.SavedService) (*domain.SavedService, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := saved.Validate(); err != nil {
		log.Warn("saved service validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("saved_service_id", saved.ID.String()))
		return nil, err
	}

	insert := `
		INSERT INTO saved_services (id, user_id, service_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, service_id) DO NOTHING
		RETURNING id, user_id, service_id, created_at
	`

	var row domain.SavedService
	err := s.db.QueryRowContext(
		ctx,
		insert,
		saved.ID,
		saved.UserID,
		saved.ServiceID,
		saved.CreatedAt,
	).Scan(&row.ID, &row.UserID, &row.ServiceID, &row.CreatedAt)

	if err == nil {
		log.Info("service saved",
			slog.String("saved_service_id", row.ID.String()),
			slog.String("user_id", row.UserID.String()),
			slog.String("service_id", row.ServiceID.String()))
		return &row, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to save service",
			slog.String("error", err.Error()),
			slog.String("user_id", saved.UserID.String()),
			slog.String("service_id", saved.ServiceID.String()))
		return nil, MapError(err)
	}

	// Conflict path: the pair already exists, return the existing row.
	existing := `
		SELECT id, user_id, service_id, created_at
		FROM saved_services
		WHERE user_id = $1 AND service_id = $2
	`
	err = s.db.QueryRowContext(ctx, existing, saved.UserID, saved.ServiceID).
		Scan(&row.ID, &row.UserID, &row.ServiceID, &row.CreatedAt)
	if err != nil {
		log.Error("failed to fetch existing saved service",
			slog.String("error", err.Error()),
			slog.String("user_id", saved.UserID.String()),
			slog.String("service_id", saved.ServiceID.String()))
		return nil, MapError(err)
	}

	log.Debug("service already saved",
		slog.String("saved_service_id", row.ID.String()),
		slog.String("user_id", row.UserID.String()))
	return &row, nil
}

// GetForUser implements store.SavedServiceStore.GetForUser
func (s *PostgresSavedServiceStore) GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.SavedServiceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + savedServiceDetailColumns + serviceDetailColumns + savedServiceDetailFrom + `
	WHERE v.id = $1 AND v.user_id = $2`

	detail, err := scanSavedServiceDetail(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("saved service not found in user scope",
				slog.String("saved_service_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrSavedServiceNotFound
		}
		log.Error("failed to get saved service",
			slog.String("error", err.Error()),
			slog.String("saved_service_id", id.String()))
		return nil, err
	}

	return detail, nil
}

// ListForUser implements store.SavedServiceStore.ListForUser
func (s *PostgresSavedServiceStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	params store.ListParams,
	filter store.SavedServiceFilter,
) ([]*domain.SavedServiceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	base := `SELECT` + savedServiceDetailColumns + serviceDetailColumns + savedServiceDetailFrom

	qb := store.NewQueryBuilder()
	conds := []string{"v.user_id = " + qb.Arg(userID)}

	if filter.ServiceID != nil {
		conds = append(conds, "v.service_id = "+qb.Arg(*filter.ServiceID))
	}
	if filter.CategoryID != nil {
		conds = append(conds, "s.category_id = "+qb.Arg(*filter.CategoryID))
	}

	query := store.AppendWhere(base, conds) + savedServiceSpec.OrderClause(params.OrderBy)

	rows, err := s.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		log.Error("failed to list saved services",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	details := []*domain.SavedServiceDetail{}
	for rows.Next() {
		detail, err := scanSavedServiceDetail(rows)
		if err != nil {
			log.Error("failed to scan saved service row", slog.String("error", err.Error()))
			return nil, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning saved service rows", slog.String("error", err.Error()))
		return nil, err
	}

	return details, nil
}

// DeleteForUser implements store.SavedServiceStore.DeleteForUser
func (s *PostgresSavedServiceStore) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM saved_services WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		log.Error("failed to delete saved service",
			slog.String("error", err.Error()),
			slog.String("saved_service_id", id.String()))
		return MapDeleteError(err, nil)
	}

	if err := CheckRowsAffected(result, store.ErrSavedServiceNotFound); err != nil {
		return err
	}

	log.Info("saved service deleted",
		slog.String("saved_service_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}
