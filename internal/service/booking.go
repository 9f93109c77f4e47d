package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// CreateBookingInput carries the client-settable fields of a new booking.
// Status is deliberately absent: new bookings always start as pending.
type CreateBookingInput struct {
	ServiceID uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
}

// UpdateBookingInput carries the client-settable fields of a booking
// update. Status accepts any declared value; no transition rules apply.
type UpdateBookingInput struct {
	Status    domain.BookingStatus
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
}

// BookingService implements the booking lifecycle. Every read and
// mutation after create is scoped to the owning user.
type BookingService struct {
	bookings store.BookingStore
	services store.ServiceStore
	logger   *slog.Logger
}

// NewBookingService creates a BookingService backed by the given stores.
// If logger is nil, a default logger is used.
func NewBookingService(bookings store.BookingStore, services store.ServiceStore, logger *slog.Logger) *BookingService {
	if bookings == nil || services == nil {
		panic("stores cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &BookingService{
		bookings: bookings,
		services: services,
		logger:   logger.With(slog.String("component", "booking_service")),
	}
}

// Create books a service for the user. The service must exist and be
// active, and subscription services require an end date. The stored
// booking always starts as pending regardless of anything the client
// sent.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, in CreateBookingInput) (*domain.BookingDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	svc, err := s.services.GetActiveDetailByID(ctx, in.ServiceID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("booking refused: service not bookable",
				slog.String("service_id", in.ServiceID.String()))
			return nil, ErrServiceNotActive
		}
		return nil, err
	}

	if svc.Type == domain.ServiceTypeSubscription && in.EndDate == nil {
		log.Debug("booking refused: subscription without end date",
			slog.String("service_id", in.ServiceID.String()))
		return nil, domain.ErrEndDateRequired
	}

	booking, err := domain.NewServiceBooking(in.ServiceID, userID, in.StartDate, in.EndDate, in.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	return s.bookings.GetForUser(ctx, userID, booking.ID)
}

// Get returns one of the user's bookings with the booked service embedded.
func (s *BookingService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.BookingDetail, error) {
	return s.bookings.GetForUser(ctx, userID, id)
}

// List returns the user's bookings refined by params and filter.
func (s *BookingService) List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.BookingFilter) ([]*domain.BookingDetail, error) {
	return s.bookings.ListForUser(ctx, userID, params, filter)
}

// Update replaces the mutable fields of a booking the user owns. The
// subscription end-date rule is re-checked against the booked service.
func (s *BookingService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateBookingInput) (*domain.BookingDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	detail, err := s.bookings.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if detail.Service.Type == domain.ServiceTypeSubscription && in.EndDate == nil {
		log.Debug("booking update refused: subscription without end date",
			slog.String("booking_id", id.String()))
		return nil, domain.ErrEndDateRequired
	}

	booking := detail.ServiceBooking
	booking.Status = in.Status
	booking.StartDate = in.StartDate
	booking.EndDate = in.EndDate
	booking.Notes = in.Notes

	if err := s.bookings.UpdateForUser(ctx, userID, &booking); err != nil {
		return nil, err
	}

	return s.bookings.GetForUser(ctx, userID, id)
}

// Delete removes a booking the user owns, along with its review if one
// exists.
func (s *BookingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.bookings.DeleteForUser(ctx, userID, id)
}
