package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
)

// minSecretLength is the shortest accepted HMAC secret.
const minSecretLength = 32

// signingKey is the secret and lifetime used for one purpose.
type signingKey struct {
	secret   []byte
	lifetime time.Duration
}

// hmacTokenService is an implementation of TokenService using HMAC-SHA256 signing.
type hmacTokenService struct {
	keys      map[Purpose]signingKey
	timeFunc  func() time.Time // Injectable for testing
	clockSkew time.Duration    // Allowed time difference for validation to handle clock drift
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType string    `json:"typ"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenService implements TokenService interface
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a token service with one secret per purpose.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	return NewTokenServiceWithClock(cfg, time.Now)
}

// NewTokenServiceWithClock is NewTokenService with an injectable clock.
func NewTokenServiceWithClock(cfg config.AuthConfig, timeFunc func() time.Time) (TokenService, error) {
	keys := map[Purpose]signingKey{
		PurposeAccess:        {secret: []byte(cfg.JWTSecret), lifetime: cfg.AccessTokenLifetime},
		PurposeRefresh:       {secret: []byte(cfg.RefreshTokenSecret), lifetime: cfg.RefreshTokenLifetime},
		PurposePasswordReset: {secret: []byte(cfg.ResetPasswordSecret), lifetime: cfg.ResetTokenLifetime},
	}

	for purpose, key := range keys {
		if len(key.secret) < minSecretLength {
			return nil, fmt.Errorf("%s token secret must be at least %d characters", purpose, minSecretLength)
		}
		if key.lifetime <= 0 {
			return nil, fmt.Errorf("%s token lifetime must be positive", purpose)
		}
	}

	return &hmacTokenService{
		keys:      keys,
		timeFunc:  timeFunc,
		clockSkew: 2 * time.Minute,
	}, nil
}

// Issue implements TokenService.Issue
func (s *hmacTokenService) Issue(ctx context.Context, purpose Purpose, identity Identity) (string, error) {
	log := logger.FromContext(ctx)

	key, ok := s.keys[purpose]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPurpose, purpose)
	}

	now := s.timeFunc()
	claims := jwtCustomClaims{
		UserID:    identity.UserID,
		Email:     identity.Email,
		Role:      string(identity.Role),
		TokenType: string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(key.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key.secret)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"user_id", identity.UserID,
			"token_type", purpose,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", purpose, err)
	}

	return signed, nil
}

// Verify implements TokenService.Verify
func (s *hmacTokenService) Verify(ctx context.Context, purpose Purpose, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	key, ok := s.keys[purpose]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPurpose, purpose)
	}
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key.secret, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err, "token_type", purpose)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "error", err, "token_type", purpose)
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "error", err, "token_type", purpose)
		default:
			log.Debug("token validation failed: other validation error",
				"error", err,
				"token_type", purpose,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims", "token_type", purpose)
		return nil, ErrInvalidToken
	}
	if claims.TokenType != string(purpose) {
		log.Debug("token validation failed: wrong token type",
			"expected", purpose,
			"actual", claims.TokenType)
		return nil, ErrInvalidToken
	}

	log.Debug("token validated successfully",
		"user_id", claims.UserID,
		"token_id", claims.ID,
		"token_type", purpose)

	return &Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      domain.Role(claims.Role),
		Purpose:   Purpose(claims.TokenType),
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
