package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vestryhq/marketplace-api/internal/config"
)

// DefaultJWTConfig returns a standard configuration for JWT validation
// suitable for testing. This is the single source of truth for JWT test config.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-jwt-secret-that-is-32-chars-long", // At least 32 chars
	}
}

// RequireTestJWTService creates a JWT service with default configuration and
// uses require to handle errors. This is the recommended way to create a JWT
// service in tests.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	service, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return service
}

// SignTokenForTesting mints a token the way the external identity provider
// would, signed with the default test secret and the given expiry.
func SignTokenForTesting(userID uuid.UUID, expiry time.Time) (string, error) {
	claims := jwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(DefaultJWTConfig().JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign test token: %w", err)
	}
	return signed, nil
}

// GenerateAuthHeaderForTestingT creates an Authorization header value with
// Bearer prefix containing a valid token for the specified user ID, failing
// the test if signing fails.
func GenerateAuthHeaderForTestingT(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := SignTokenForTesting(userID, time.Now().Add(1*time.Hour))
	require.NoError(t, err, "Failed to generate auth header")
	return "Bearer " + token
}
