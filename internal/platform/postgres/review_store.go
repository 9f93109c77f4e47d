package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// reviewSpec declares the queryable surface of the review list.
var reviewSpec = store.Spec{
	OrderColumns: map[string]string{
		"rating":     "r.rating",
		"created_at": "r.created_at",
	},
	DefaultOrder: "-created_at",
	TieBreak:     "r.id",
}

const reviewDetailColumns = `
	r.id, r.booking_id, r.rating, r.comment, r.created_at, r.updated_at,
	u.email, s.name`

const reviewDetailFrom = `
	FROM service_reviews r
	JOIN service_bookings b ON b.id = r.booking_id
	JOIN users u ON u.id = b.user_id
	JOIN services s ON s.id = b.service_id`

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface. If logger is nil, a default logger is used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// scanReviewDetail scans one joined review row.
func scanReviewDetail(row rowScanner) (*domain.ReviewDetail, error) {
	var detail domain.ReviewDetail

	err := row.Scan(
		&detail.ID,
		&detail.BookingID,
		&detail.Rating,
		&detail.Comment,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.ReviewerEmail,
		&detail.ServiceName,
	)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// Create implements store.ReviewStore.Create
// The booking_id unique constraint enforces the one-review-per-booking
// rule even under concurrent creates.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.ServiceReview) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO service_reviews (id, booking_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.BookingID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("booking already reviewed",
				slog.String("booking_id", review.BookingID.String()))
			return fmt.Errorf("%w: %v", store.ErrReviewExists, err)
		}
		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()),
			slog.String("booking_id", review.BookingID.String()))
		return MapError(err)
	}

	log.Info("review created",
		slog.String("review_id", review.ID.String()),
		slog.String("booking_id", review.BookingID.String()))
	return nil
}

// GetForUser implements store.ReviewStore.GetForUser
// Ownership reaches through the booking join; a review of another user's
// booking scans as no rows at all.
func (s *PostgresReviewStore) GetForUser(ctx context.Context, userID, id uuid.UUID) (*domain.ReviewDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + reviewDetailColumns + reviewDetailFrom + `
	WHERE r.id = $1 AND b.user_id = $2`

	detail, err := scanReviewDetail(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review not found in user scope",
				slog.String("review_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, err
	}

	return detail, nil
}

// ListForUser implements store.ReviewStore.ListForUser
func (s *PostgresReviewStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	params store.ListParams,
	filter store.ReviewFilter,
) ([]*domain.ReviewDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	base := `SELECT` + reviewDetailColumns + reviewDetailFrom

	qb := store.NewQueryBuilder()
	conds := []string{"b.user_id = " + qb.Arg(userID)}

	if filter.Rating != nil {
		conds = append(conds, "r.rating = "+qb.Arg(*filter.Rating))
	}
	if filter.ServiceID != nil {
		conds = append(conds, "b.service_id = "+qb.Arg(*filter.ServiceID))
	}

	query := store.AppendWhere(base, conds) + reviewSpec.OrderClause(params.OrderBy)

	rows, err := s.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		log.Error("failed to list reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	details := []*domain.ReviewDetail{}
	for rows.Next() {
		detail, err := scanReviewDetail(rows)
		if err != nil {
			log.Error("failed to scan review row", slog.String("error", err.Error()))
			return nil, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning review rows", slog.String("error", err.Error()))
		return nil, err
	}

	return details, nil
}

// UpdateForUser implements store.ReviewStore.UpdateForUser
// The ownership predicate is a subquery against the booking; only rating
// and comment are mutable.
func (s *PostgresReviewStore) UpdateForUser(ctx context.Context, userID uuid.UUID, review *domain.ServiceReview) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during update",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	review.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE service_reviews r
		SET rating = $1, comment = $2, updated_at = $3
		WHERE r.id = $4
		  AND EXISTS (
			SELECT 1 FROM service_bookings b
			WHERE b.id = r.booking_id AND b.user_id = $5
		  )
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
		review.ID,
		userID,
	)
	if err != nil {
		log.Error("failed to update review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrReviewNotFound)
}

// DeleteForUser implements store.ReviewStore.DeleteForUser
func (s *PostgresReviewStore) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM service_reviews r
		WHERE r.id = $1
		  AND EXISTS (
			SELECT 1 FROM service_bookings b
			WHERE b.id = r.booking_id AND b.user_id = $2
		  )
	`
	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return MapDeleteError(err, nil)
	}

	if err := CheckRowsAffected(result, store.ErrReviewNotFound); err != nil {
		return err
	}

	log.Info("review deleted",
		slog.String("review_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}
