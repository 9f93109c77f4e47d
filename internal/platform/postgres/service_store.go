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

// serviceSpec declares the queryable surface of the service list.
// Search reaches through the join to the provider's name.
var serviceSpec = store.Spec{
	SearchColumns: []string{"s.name", "s.description", "p.name"},
	OrderColumns: map[string]string{
		"name":       "s.name",
		"price":      "s.price",
		"created_at": "s.created_at",
	},
	DefaultOrder: "name",
	TieBreak:     "s.id",
}

// serviceDetailColumns lists the joined column set scanned by
// scanServiceDetail. Keep the two in sync.
const serviceDetailColumns = `
	s.id, s.provider_id, s.category_id, s.name, s.description, s.price,
	s.price_unit, s.service_type, s.is_active, s.created_at, s.updated_at,
	p.id, p.name, p.description, p.website, p.contact_email, p.contact_phone,
	p.is_active, p.created_at, p.updated_at,
	c.id, c.name, c.description, c.icon, c.created_at, c.updated_at`

const serviceDetailFrom = `
	FROM services s
	JOIN service_providers p ON p.id = s.provider_id
	LEFT JOIN service_categories c ON c.id = s.category_id`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanServiceDetail scans one joined service row, reassembling the
// optional category from its nullable columns.
func scanServiceDetail(row rowScanner) (*domain.ServiceDetail, error) {
	var (
		detail      domain.ServiceDetail
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
		&detail.ProviderID,
		&categoryID,
		&detail.Name,
		&detail.Description,
		&detail.Price,
		&detail.PriceUnit,
		&serviceType,
		&detail.IsActive,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Provider.ID,
		&detail.Provider.Name,
		&detail.Provider.Description,
		&detail.Provider.Website,
		&detail.Provider.ContactEmail,
		&detail.Provider.ContactPhone,
		&detail.Provider.IsActive,
		&detail.Provider.CreatedAt,
		&detail.Provider.UpdatedAt,
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

	detail.Type = domain.ServiceType(serviceType)
	if categoryID.Valid {
		id := categoryID.UUID
		detail.CategoryID = &id
	}
	if catID.Valid {
		detail.Category = &domain.ServiceCategory{
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

// PostgresServiceStore implements the store.ServiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresServiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the
// ServiceStore interface. If logger is nil, a default logger is used.
func NewPostgresServiceStore(db store.DBTX, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

// Ensure PostgresServiceStore implements store.ServiceStore interface
var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// Create implements store.ServiceStore.Create
func (s *PostgresServiceStore) Create(ctx context.Context, service *domain.Service) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during create",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	query := `
		INSERT INTO services
			(id, provider_id, category_id, name, description, price, price_unit,
			 service_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		service.ID,
		service.ProviderID,
		uuidOrNil(service.CategoryID),
		service.Name,
		service.Description,
		service.Price,
		service.PriceUnit,
		string(service.Type),
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create service",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()),
			slog.String("provider_id", service.ProviderID.String()))
		return MapError(err)
	}

	log.Info("service created",
		slog.String("service_id", service.ID.String()),
		slog.String("name", service.Name))
	return nil
}

// GetByID implements store.ServiceStore.GetByID
func (s *PostgresServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, provider_id, category_id, name, description, price, price_unit,
			service_type, is_active, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var (
		service     domain.Service
		categoryID  uuid.NullUUID
		serviceType string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&service.ID,
		&service.ProviderID,
		&categoryID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.PriceUnit,
		&serviceType,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("service not found", slog.String("service_id", id.String()))
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service by ID",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return nil, err
	}

	service.Type = domain.ServiceType(serviceType)
	if categoryID.Valid {
		cid := categoryID.UUID
		service.CategoryID = &cid
	}

	return &service, nil
}

// GetActiveDetailByID implements store.ServiceStore.GetActiveDetailByID
// Inactive services are indistinguishable from missing ones.
func (s *PostgresServiceStore) GetActiveDetailByID(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + serviceDetailColumns + serviceDetailFrom + `
	WHERE s.id = $1 AND s.is_active = TRUE`

	detail, err := scanServiceDetail(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("active service not found", slog.String("service_id", id.String()))
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service detail",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return nil, err
	}

	return detail, nil
}

// ListActive implements store.ServiceStore.ListActive
// The is_active predicate is part of the base condition set; filters and
// search only ever narrow it further.
func (s *PostgresServiceStore) ListActive(
	ctx context.Context,
	params store.ListParams,
	filter store.ServiceFilter,
) ([]*domain.ServiceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	base := `SELECT` + serviceDetailColumns + serviceDetailFrom

	qb := store.NewQueryBuilder()
	conds := []string{"s.is_active = TRUE"}

	if filter.CategoryID != nil {
		conds = append(conds, "s.category_id = "+qb.Arg(*filter.CategoryID))
	}
	if filter.ProviderID != nil {
		conds = append(conds, "s.provider_id = "+qb.Arg(*filter.ProviderID))
	}
	if filter.Type != nil {
		conds = append(conds, "s.service_type = "+qb.Arg(string(*filter.Type)))
	}
	if filter.PriceLTE != nil {
		conds = append(conds, "s.price <= "+qb.Arg(*filter.PriceLTE))
	}
	if filter.PriceGTE != nil {
		conds = append(conds, "s.price >= "+qb.Arg(*filter.PriceGTE))
	}
	if filter.CategoryName != "" {
		conds = append(conds, "LOWER(c.name) = LOWER("+qb.Arg(filter.CategoryName)+")")
	}
	conds = append(conds, serviceSpec.SearchCondition(qb, params.Search))

	query := store.AppendWhere(base, conds) + serviceSpec.OrderClause(params.OrderBy)

	return s.queryDetails(ctx, log, query, qb.Args()...)
}

// ListSimilar implements store.ServiceStore.ListSimilar
// Category matching is null-safe: an uncategorized service is similar to
// other uncategorized services.
func (s *PostgresServiceStore) ListSimilar(
	ctx context.Context,
	service *domain.Service,
	limit int,
) ([]*domain.ServiceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + serviceDetailColumns + serviceDetailFrom + `
	WHERE s.is_active = TRUE
	  AND s.id <> $1
	  AND s.category_id IS NOT DISTINCT FROM $2
	ORDER BY s.name ASC, s.id ASC
	LIMIT $3`

	return s.queryDetails(ctx, log, query, service.ID, uuidOrNil(service.CategoryID), limit)
}

func (s *PostgresServiceStore) queryDetails(
	ctx context.Context,
	log *slog.Logger,
	query string,
	args ...any,
) ([]*domain.ServiceDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query services", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	details := []*domain.ServiceDetail{}
	for rows.Next() {
		detail, err := scanServiceDetail(rows)
		if err != nil {
			log.Error("failed to scan service row", slog.String("error", err.Error()))
			return nil, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning service rows", slog.String("error", err.Error()))
		return nil, err
	}

	return details, nil
}

// Update implements store.ServiceStore.Update
func (s *PostgresServiceStore) Update(ctx context.Context, service *domain.Service) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during update",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	service.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE services
		SET provider_id = $1, category_id = $2, name = $3, description = $4,
			price = $5, price_unit = $6, service_type = $7, is_active = $8,
			updated_at = $9
		WHERE id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		service.ProviderID,
		uuidOrNil(service.CategoryID),
		service.Name,
		service.Description,
		service.Price,
		service.PriceUnit,
		string(service.Type),
		service.IsActive,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		log.Error("failed to update service",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrServiceNotFound)
}

// Delete implements store.ServiceStore.Delete
// Bookings guard the delete (ON DELETE RESTRICT); saved bookmarks cascade.
func (s *PostgresServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		log.Warn("failed to delete service",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return MapDeleteError(err, store.ErrServiceHasBookings)
	}

	if err := CheckRowsAffected(result, store.ErrServiceNotFound); err != nil {
		return err
	}

	log.Info("service deleted", slog.String("service_id", id.String()))
	return nil
}

// uuidOrNil converts an optional UUID into a driver-friendly value,
// mapping nil to SQL NULL.
func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
