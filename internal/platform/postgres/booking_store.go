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

// bookingSpec declares the queryable surface of the booking list.
var bookingSpec = store.Spec{
	OrderColumns: map[string]string{
		"start_date": "b.start_date",
		"created_at": "b.created_at",
	},
	DefaultOrder: "-start_date",
	TieBreak:     "b.id",
}

const bookingDetailColumns = `
	b.id, b.service_id, b.user_id, b.status, b.start_date, b.end_date, b.notes,
	b.created_at, b.updated_at,`

const bookingDetailFrom = `
	FROM service_bookings b
	JOIN services s ON s.id = b.service_id
	JOIN service_providers p ON p.id = s.provider_id
	LEFT JOIN service_categories c ON c.id = s.category_id`

// PostgresBookingStore implements the store.BookingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookingStore creates a new PostgreSQL implementation of the
// BookingStore interface. If logger is nil, a default logger is used.
func NewPostgresBookingStore(db store.DBTX, logger *slog.Logger) *PostgresBookingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookingStore{
		db:     db,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

// Ensure PostgresBookingStore implements store.BookingStore interface
var _ store.BookingStore = (*PostgresBookingStore)(nil)

// scanBookingDetail scans one joined booking row.
func scanBookingDetail(row rowScanner) (*domain.BookingDetail, error) {
	// The service detail columns follow the booking columns, so scan the
	// booking fields here and let the shared helper shape the rest once the
	// raw values are in hand.
	var (
		detail  domain.BookingDetail
		status  string
		endDate sql.NullTime

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
		&detail.ServiceBooking.ServiceID,
		&detail.UserID,
		&status,
		&detail.StartDate,
		&endDate,
		&detail.Notes,
		&detail.ServiceBooking.CreatedAt,
		&detail.ServiceBooking.UpdatedAt,
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

	detail.Status = domain.BookingStatus(status)
	if endDate.Valid {
		t := endDate.Time
		detail.EndDate = &t
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

// Create implements store.BookingStore.Create
func (s *PostgresBookingStore) Create(ctx context.Context, booking *domain.ServiceBooking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := booking.Validate(); err != nil {
		log.Warn("booking validation failed during create",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return err
	}

	query := `
		INSERT INTO service_bookings
			(id, service_id, user_id, status, start_date, end_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		booking.ID,
		booking.ServiceID,
		booking.UserID,
		string(booking.Status),
		booking.StartDate,
		timeOrNil(booking.EndDate),
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()),
			slog.String("service_id", booking.ServiceID.String()),
			slog.String("user_id", booking.UserID.String()))
		return MapError(err)
	}

	log.Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("service_id", booking.ServiceID.String()),
		slog.String("user_id", booking.UserID.String()))
	return nil
}

// GetForUser implements store.BookingStore.GetForUser
// The ownership predicate is part of the SQL, so another user's booking
// scans as no rows at all.
func (s *PostgresBookingStore) GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.BookingDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + bookingDetailColumns + serviceDetailColumns + bookingDetailFrom + `
	WHERE b.id = $1 AND b.user_id = $2`

	detail, err := scanBookingDetail(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("booking not found in user scope",
				slog.String("booking_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrBookingNotFound
		}
		log.Error("failed to get booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return nil, err
	}

	return detail, nil
}

// ListForUser implements store.BookingStore.ListForUser
func (s *PostgresBookingStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	params store.ListParams,
	filter store.BookingFilter,
) ([]*domain.BookingDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	base := `SELECT` + bookingDetailColumns + serviceDetailColumns + bookingDetailFrom

	qb := store.NewQueryBuilder()
	conds := []string{"b.user_id = " + qb.Arg(userID)}

	if filter.Status != nil {
		conds = append(conds, "b.status = "+qb.Arg(string(*filter.Status)))
	}
	if filter.ServiceID != nil {
		conds = append(conds, "b.service_id = "+qb.Arg(*filter.ServiceID))
	}
	if filter.ProviderID != nil {
		conds = append(conds, "s.provider_id = "+qb.Arg(*filter.ProviderID))
	}

	query := store.AppendWhere(base, conds) + bookingSpec.OrderClause(params.OrderBy)

	rows, err := s.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		log.Error("failed to list bookings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	details := []*domain.BookingDetail{}
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			log.Error("failed to scan booking row", slog.String("error", err.Error()))
			return nil, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning booking rows", slog.String("error", err.Error()))
		return nil, err
	}

	return details, nil
}

// UpdateForUser implements store.BookingStore.UpdateForUser
func (s *PostgresBookingStore) UpdateForUser(ctx context.Context, userID uuid.UUID, booking *domain.ServiceBooking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := booking.Validate(); err != nil {
		log.Warn("booking validation failed during update",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return err
	}

	booking.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE service_bookings
		SET status = $1, start_date = $2, end_date = $3, notes = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		string(booking.Status),
		booking.StartDate,
		timeOrNil(booking.EndDate),
		booking.Notes,
		booking.UpdatedAt,
		booking.ID,
		userID,
	)
	if err != nil {
		log.Error("failed to update booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrBookingNotFound)
}

// DeleteForUser implements store.BookingStore.DeleteForUser
// The schema cascades the delete to the booking's review.
func (s *PostgresBookingStore) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM service_bookings WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		log.Error("failed to delete booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return MapDeleteError(err, nil)
	}

	if err := CheckRowsAffected(result, store.ErrBookingNotFound); err != nil {
		return err
	}

	log.Info("booking deleted",
		slog.String("booking_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// timeOrNil converts an optional time into a driver-friendly value,
// mapping nil to SQL NULL.
func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
