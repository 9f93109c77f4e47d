package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/vestryhq/marketplace-api/internal/domain"
	"github.com/vestryhq/marketplace-api/internal/store"
)

// Query parameter parsing. Parameter names follow the original API
// surface: "search", "ordering" with a "-" prefix for descending, and
// per-resource filter parameters with "__" reaching through a relation.
// Unknown ordering keys are ignored (the store falls back to its
// default); malformed UUID or numeric filter values are validation
// errors.

func parseListParams(r *http.Request) store.ListParams {
	q := r.URL.Query()
	return store.ListParams{
		Search:  q.Get("search"),
		OrderBy: q.Get("ordering"),
	}
}

func parseUUIDParam(q url.Values, name string) (*uuid.UUID, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parameter %q must be a UUID", domain.ErrValidation, name)
	}
	return &id, nil
}

func parseFloatParam(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: parameter %q must be a number", domain.ErrValidation, name)
	}
	return &v, nil
}

func parseIntParam(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parameter %q must be an integer", domain.ErrValidation, name)
	}
	return &v, nil
}

func parseServiceFilter(r *http.Request) (store.ServiceFilter, error) {
	q := r.URL.Query()
	var filter store.ServiceFilter
	var err error

	if filter.CategoryID, err = parseUUIDParam(q, "category"); err != nil {
		return filter, err
	}
	if filter.ProviderID, err = parseUUIDParam(q, "provider"); err != nil {
		return filter, err
	}
	if filter.PriceLTE, err = parseFloatParam(q, "price__lte"); err != nil {
		return filter, err
	}
	if filter.PriceGTE, err = parseFloatParam(q, "price__gte"); err != nil {
		return filter, err
	}

	if raw := q.Get("service_type"); raw != "" {
		t := domain.ServiceType(raw)
		if !t.IsValid() {
			return filter, fmt.Errorf("%w: parameter %q must be one of one_time, subscription",
				domain.ErrValidation, "service_type")
		}
		filter.Type = &t
	}

	filter.CategoryName = q.Get("category_name")

	return filter, nil
}

func parseBookingFilter(r *http.Request) (store.BookingFilter, error) {
	q := r.URL.Query()
	var filter store.BookingFilter
	var err error

	if filter.ServiceID, err = parseUUIDParam(q, "service"); err != nil {
		return filter, err
	}
	if filter.ProviderID, err = parseUUIDParam(q, "service__provider"); err != nil {
		return filter, err
	}

	if raw := q.Get("status"); raw != "" {
		s := domain.BookingStatus(raw)
		if !s.IsValid() {
			return filter, fmt.Errorf("%w: parameter %q must be a valid booking status",
				domain.ErrValidation, "status")
		}
		filter.Status = &s
	}

	return filter, nil
}

func parseReviewFilter(r *http.Request) (store.ReviewFilter, error) {
	q := r.URL.Query()
	var filter store.ReviewFilter
	var err error

	if filter.Rating, err = parseIntParam(q, "rating"); err != nil {
		return filter, err
	}
	if filter.ServiceID, err = parseUUIDParam(q, "booking__service"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseSavedServiceFilter(r *http.Request) (store.SavedServiceFilter, error) {
	q := r.URL.Query()
	var filter store.SavedServiceFilter
	var err error

	if filter.ServiceID, err = parseUUIDParam(q, "service"); err != nil {
		return filter, err
	}
	if filter.CategoryID, err = parseUUIDParam(q, "service__category"); err != nil {
		return filter, err
	}

	return filter, nil
}
