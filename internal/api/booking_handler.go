package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/api/shared"
	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/platform/logger"
	"github.com/vestryhq/marketplace-api/internal/redact"
	"github.com/vestryhq/marketplace-api/internal/service"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// BookingManager is the slice of the booking service the booking
// endpoints need.
type BookingManager interface {
	Create(ctx context.Context, userID uuid.UUID, in service.CreateBookingInput) (*domain.BookingDetail, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.BookingDetail, error)
	List(ctx context.Context, userID uuid.UUID, params store.ListParams, filter store.BookingFilter) ([]*domain.BookingDetail, error)
	Update(ctx context.Context, userID, id uuid.UUID, in service.UpdateBookingInput) (*domain.BookingDetail, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// BookingHandler handles booking-related HTTP requests.
type BookingHandler struct {
	bookings BookingManager
	logger   *slog.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings BookingManager, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		panic("logger cannot be nil for BookingHandler")
	}

	return &BookingHandler{
		bookings: bookings,
		logger:   logger.With(slog.String("component", "booking_handler")),
	}
}

// ListBookings handles GET /bookings requests, returning only the
// authenticated user's bookings.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	filter, err := parseBookingFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid filter parameters")
		return
	}

	bookings, err := h.bookings.List(r.Context(), userID, parseListParams(r), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list bookings")
		return
	}

	responses := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = bookingDetailToResponse(booking)
	}

	log.Debug("listed bookings",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetBooking handles GET /bookings/{id} requests. Bookings owned by other
// users are reported as not found.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	booking, err := h.bookings.Get(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get booking")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookingDetailToResponse(booking))
}

// CreateBooking handles POST /bookings requests. The new booking always
// starts as pending.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("booking request validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid booking data")
		return
	}

	input, err := bookingInputFromRequest(req.ServiceID, req.StartDate, req.EndDate, req.Notes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	booking, err := h.bookings.Create(r.Context(), userID, input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create booking")
		return
	}

	log.Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, bookingDetailToResponse(booking))
}

// UpdateBooking handles PUT /bookings/{id} requests.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("booking_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("booking request validation failed",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid booking data")
		return
	}

	startDate, endDate, err := parseBookingDates(req.StartDate, req.EndDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	input := service.UpdateBookingInput{
		Status:    domain.BookingStatus(req.Status),
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     req.Notes,
	}

	booking, err := h.bookings.Update(r.Context(), userID, id, input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update booking")
		return
	}

	log.Info("booking updated",
		slog.String("booking_id", id.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, bookingDetailToResponse(booking))
}

// DeleteBooking handles DELETE /bookings/{id} requests. The booking's
// review, if any, is removed with it.
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	id, ok := requirePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.bookings.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete booking")
		return
	}

	log.Info("booking deleted",
		slog.String("booking_id", id.String()),
		slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// bookingInputFromRequest converts validated request fields into a
// create input. The UUID and date formats were already checked by the
// request validator, so parse failures here are defensive only.
func bookingInputFromRequest(serviceID, startDate string, endDate *string, notes string) (service.CreateBookingInput, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return service.CreateBookingInput{}, domain.ErrInvalidID
	}

	start, end, err := parseBookingDates(startDate, endDate)
	if err != nil {
		return service.CreateBookingInput{}, err
	}

	return service.CreateBookingInput{
		ServiceID: id,
		StartDate: start,
		EndDate:   end,
		Notes:     notes,
	}, nil
}

func parseBookingDates(startDate string, endDate *string) (time.Time, *time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, nil, domain.ErrBookingStartDateZero
	}

	var end *time.Time
	if endDate != nil {
		parsed, err := time.Parse(dateLayout, *endDate)
		if err != nil {
			return time.Time{}, nil, domain.ErrEndDateRequired
		}
		end = &parsed
	}

	return start, end, nil
}
