package auth

import (
	"time"

	"github.com/phrazzld/taskify-api/internal/config"
)

// TestAuthConfig returns an AuthConfig with distinct secrets and short
// lifetimes, suitable for tests.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-access-secret-that-is-32-chars-long",
		RefreshTokenSecret:   "test-refresh-secret-that-is-32-chars-long",
		ResetPasswordSecret:  "test-reset-secret-that-is-32-chars-long!",
		AccessTokenLifetime:  time.Hour,
		RefreshTokenLifetime: 24 * time.Hour,
		ResetTokenLifetime:   15 * time.Minute,
		ResetPasswordLink:    "http://localhost:3000/reset-password",
	}
}

// NewTestTokenService creates a token service from TestAuthConfig using timeFunc.
// A nil timeFunc uses time.Now.
func NewTestTokenService(timeFunc func() time.Time) TokenService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	svc, err := NewTokenServiceWithClock(TestAuthConfig(), timeFunc)
	if err != nil {
		panic(err) // ALLOW-PANIC
	}
	return svc
}
