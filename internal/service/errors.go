package service

import (
	"fmt"

	"github.com/vestryhq/marketplace-api/internal/domain"
)

// ErrServiceNotActive is returned when a booking or bookmark references a
// service that does not exist or is not active. It is a validation error,
// not a not-found error: the booking or bookmark is the resource being
// created, and the service reference is just a bad field value.
var ErrServiceNotActive = fmt.Errorf("%w: service does not exist or is not active", domain.ErrValidation)
