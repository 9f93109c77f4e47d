package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockJWTService is a mock implementation of the JWTService interface for testing.
// This is the single canonical mock implementation to be used in all tests.
type MockJWTService struct {
	// Function field for custom behavior
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	// Fixed fields for simple cases
	ValidationError error   // Default error for token validation
	Claims          *Claims // Default claims to return
}

// NewMockJWTService creates a new mock JWT service with default values.
// By default, it returns minimal values that will pass simple validation.
func NewMockJWTService() *MockJWTService {
	now := time.Now()
	userID := uuid.New()

	return &MockJWTService{
		Claims: &Claims{
			UserID:    userID,
			Subject:   userID.String(),
			IssuedAt:  now,
			ExpiresAt: now.Add(1 * time.Hour),
			ID:        uuid.New().String(),
		},
	}
}

// ValidateToken implements the JWTService.ValidateToken method.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	return m.Claims, m.ValidationError
}

// WithValidateTokenFunc sets a custom ValidateToken function and returns the mock.
func (m *MockJWTService) WithValidateTokenFunc(
	fn func(ctx context.Context, tokenString string) (*Claims, error),
) *MockJWTService {
	m.ValidateTokenFunc = fn
	return m
}

// WithValidationError sets a custom token validation error and returns the mock.
func (m *MockJWTService) WithValidationError(err error) *MockJWTService {
	m.ValidationError = err
	return m
}

// WithClaims sets custom claims and returns the mock.
func (m *MockJWTService) WithClaims(claims *Claims) *MockJWTService {
	m.Claims = claims
	return m
}
