package api

import (
	"errors"
	"net/http"

	"github.com/vestryhq/marketplace-api/internal/api/shared"
	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/service"
	"github.com/vestryhq/marketplace-api/internal/service/auth"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients. Ownership violations never map to 403: rows outside
// the requester's scope are reported as 404 so their existence is not leaked.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors, including out-of-scope rows
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors: duplicates and guarded deletes
	case store.IsDuplicateError(err),
		store.IsIntegrityBlockedError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		domain.IsValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	// Not found errors
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrProviderNotFound):
		return "Provider not found"

	case errors.Is(err, store.ErrServiceNotFound):
		return "Service not found"

	case errors.Is(err, store.ErrBookingNotFound):
		return "Booking not found"

	case errors.Is(err, store.ErrReviewNotFound):
		return "Review not found"

	case errors.Is(err, store.ErrSavedServiceNotFound):
		return "Saved service not found"

	case store.IsNotFoundError(err):
		return "Not found"

	// Conflict errors
	case errors.Is(err, store.ErrReviewExists):
		return "Booking already has a review"

	case errors.Is(err, store.ErrServiceHasBookings):
		return "Service still has bookings"

	case store.IsDuplicateError(err):
		return "Already exists"

	case store.IsIntegrityBlockedError(err):
		return "Delete blocked by referencing records"

	// Validation errors carry static, client-safe messages
	case errors.Is(err, service.ErrServiceNotActive):
		return "Service does not exist or is not active"

	case errors.Is(err, domain.ErrEndDateRequired):
		return "End date is required for subscription services"

	case domain.IsValidationError(err):
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and sanitized message and
// writes the error response, logging the redacted raw error. When
// fallbackMessage is non-empty it replaces the generic message for
// unrecognized errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if fallbackMessage != "" && safeMessage == "An unexpected error occurred" {
		safeMessage = fallbackMessage
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}
