package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// dateLayout is the wire format for booking dates, which are calendar
// dates without a time component.
const dateLayout = "2006-01-02"

// Request payloads. Write requests reference related rows by ID; the
// nested read representations below are never accepted on writes.

// CreateBookingRequest defines the payload for creating a booking.
// Status is not accepted: new bookings always start as pending.
type CreateBookingRequest struct {
	ServiceID string  `json:"service_id" validate:"required,uuid"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Notes     string  `json:"notes"`
}

// UpdateBookingRequest defines the payload for updating a booking.
type UpdateBookingRequest struct {
	Status    string  `json:"status"     validate:"required,oneof=pending confirmed in_progress completed cancelled"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Notes     string  `json:"notes"`
}

// CreateReviewRequest defines the payload for reviewing a booking.
type CreateReviewRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest defines the payload for updating a review. The
// booking association is immutable.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateSavedServiceRequest defines the payload for bookmarking a service.
type CreateSavedServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
}

// Response representations.

// CategoryResponse represents the response data for a service category.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProviderResponse represents the response data for a service provider.
type ProviderResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Website      string    `json:"website"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ServiceResponse represents the response data for a service, with its
// provider and category embedded. Category is null for uncategorized
// services.
type ServiceResponse struct {
	ID          uuid.UUID         `json:"id"`
	Provider    ProviderResponse  `json:"provider"`
	Category    *CategoryResponse `json:"category"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	PriceUnit   string            `json:"price_unit"`
	ServiceType string            `json:"service_type"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// BookingResponse represents the response data for a booking, with the
// booked service embedded. Dates are calendar dates.
type BookingResponse struct {
	ID        uuid.UUID       `json:"id"`
	Service   ServiceResponse `json:"service"`
	Status    string          `json:"status"`
	StartDate string          `json:"start_date"`
	EndDate   *string         `json:"end_date"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ReviewResponse represents the response data for a review. User carries
// the reviewing user's email and ServiceName the reviewed service's name,
// both resolved through the booking.
type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	User        string    `json:"user"`
	ServiceName string    `json:"service_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SavedServiceResponse represents the response data for a saved service,
// with the bookmarked service embedded.
type SavedServiceResponse struct {
	ID        uuid.UUID       `json:"id"`
	Service   ServiceResponse `json:"service"`
	CreatedAt time.Time       `json:"created_at"`
}

// Mapping functions between domain read models and wire representations.

func categoryToResponse(category *domain.ServiceCategory) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Icon:        category.Icon,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func providerToResponse(provider *domain.ServiceProvider) ProviderResponse {
	return ProviderResponse{
		ID:           provider.ID,
		Name:         provider.Name,
		Description:  provider.Description,
		Website:      provider.Website,
		ContactEmail: provider.ContactEmail,
		ContactPhone: provider.ContactPhone,
		IsActive:     provider.IsActive,
		CreatedAt:    provider.CreatedAt,
		UpdatedAt:    provider.UpdatedAt,
	}
}

func serviceDetailToResponse(detail *domain.ServiceDetail) ServiceResponse {
	resp := ServiceResponse{
		ID:          detail.ID,
		Provider:    providerToResponse(&detail.Provider),
		Name:        detail.Name,
		Description: detail.Description,
		Price:       detail.Price,
		PriceUnit:   detail.PriceUnit,
		ServiceType: string(detail.Type),
		IsActive:    detail.IsActive,
		CreatedAt:   detail.Service.CreatedAt,
		UpdatedAt:   detail.Service.UpdatedAt,
	}
	if detail.Category != nil {
		category := categoryToResponse(detail.Category)
		resp.Category = &category
	}
	return resp
}

func serviceDetailsToResponse(details []*domain.ServiceDetail) []ServiceResponse {
	responses := make([]ServiceResponse, len(details))
	for i, detail := range details {
		responses[i] = serviceDetailToResponse(detail)
	}
	return responses
}

func bookingDetailToResponse(detail *domain.BookingDetail) BookingResponse {
	resp := BookingResponse{
		ID:        detail.ID,
		Service:   serviceDetailToResponse(&detail.Service),
		Status:    string(detail.Status),
		StartDate: detail.StartDate.Format(dateLayout),
		Notes:     detail.Notes,
		CreatedAt: detail.ServiceBooking.CreatedAt,
		UpdatedAt: detail.ServiceBooking.UpdatedAt,
	}
	if detail.EndDate != nil {
		endDate := detail.EndDate.Format(dateLayout)
		resp.EndDate = &endDate
	}
	return resp
}

func reviewDetailToResponse(detail *domain.ReviewDetail) ReviewResponse {
	return ReviewResponse{
		ID:          detail.ID,
		BookingID:   detail.BookingID,
		User:        detail.ReviewerEmail,
		ServiceName: detail.ServiceName,
		Rating:      detail.Rating,
		Comment:     detail.Comment,
		CreatedAt:   detail.CreatedAt,
		UpdatedAt:   detail.UpdatedAt,
	}
}

func savedServiceDetailToResponse(detail *domain.SavedServiceDetail) SavedServiceResponse {
	return SavedServiceResponse{
		ID:        detail.ID,
		Service:   serviceDetailToResponse(&detail.Service),
		CreatedAt: detail.CreatedAt,
	}
}
