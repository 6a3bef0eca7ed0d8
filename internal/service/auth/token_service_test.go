package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func testIdentity() Identity {
	return Identity{UserID: uuid.New(), Email: "jane@example.com", Role: domain.RoleAdmin}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTestTokenService(fixedClock)
	identity := testIdentity()
	cfg := TestAuthConfig()

	lifetimes := map[Purpose]time.Duration{
		PurposeAccess:        cfg.AccessTokenLifetime,
		PurposeRefresh:       cfg.RefreshTokenLifetime,
		PurposePasswordReset: cfg.ResetTokenLifetime,
	}

	for purpose, lifetime := range lifetimes {
		t.Run(string(purpose), func(t *testing.T) {
			token, err := svc.Issue(context.Background(), purpose, identity)
			require.NoError(t, err)
			assert.Len(t, strings.Split(token, "."), 3)

			claims, err := svc.Verify(context.Background(), purpose, token)
			require.NoError(t, err)
			assert.Equal(t, identity.UserID, claims.UserID)
			assert.Equal(t, identity.UserID.String(), claims.Subject)
			assert.Equal(t, identity.Email, claims.Email)
			assert.Equal(t, identity.Role, claims.Role)
			assert.Equal(t, purpose, claims.Purpose)
			assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
			assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
			assert.NotEmpty(t, claims.ID)
		})
	}
}

func TestVerifyRejectsOtherPurposes(t *testing.T) {
	t.Parallel()

	svc := NewTestTokenService(fixedClock)
	identity := testIdentity()

	purposes := []Purpose{PurposeAccess, PurposeRefresh, PurposePasswordReset}
	for _, issued := range purposes {
		token, err := svc.Issue(context.Background(), issued, identity)
		require.NoError(t, err)

		for _, verified := range purposes {
			if verified == issued {
				continue
			}
			_, err := svc.Verify(context.Background(), verified, token)
			assert.ErrorIs(t, err, ErrInvalidToken, "%s token verified as %s", issued, verified)
		}
	}
}

func TestVerifyResetTokenSignedWithAccessSecret(t *testing.T) {
	t.Parallel()

	cfg := TestAuthConfig()
	identity := testIdentity()

	// A well-formed, unexpired reset-typed token signed with the access secret.
	claims := jwtCustomClaims{
		UserID:    identity.UserID,
		Email:     identity.Email,
		Role:      string(identity.Role),
		TokenType: string(PurposePasswordReset),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(fixedTime),
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	svc := NewTestTokenService(fixedClock)
	_, err = svc.Verify(context.Background(), PurposePasswordReset, forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	identity := testIdentity()
	issuer := NewTestTokenService(fixedClock)
	token, err := issuer.Issue(context.Background(), PurposeRefresh, identity)
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		token   string
		wantErr error
	}{
		{
			name:    "expired beyond clock skew",
			now:     fixedTime.Add(24*time.Hour + 3*time.Minute),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "within clock skew",
			now:     fixedTime.Add(24*time.Hour + time.Minute),
			token:   token,
			wantErr: nil,
		},
		{
			name:    "tampered payload",
			now:     fixedTime,
			token:   tamper(token),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed",
			now:     fixedTime,
			token:   "not-a-jwt",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty",
			now:     fixedTime,
			token:   "",
			wantErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTestTokenService(func() time.Time { return tt.now })
			claims, err := svc.Verify(context.Background(), PurposeRefresh, tt.token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, identity.UserID, claims.UserID)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	claims := jwtCustomClaims{
		TokenType: string(PurposeAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTestTokenService(fixedClock).Verify(context.Background(), PurposeAccess, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceValidatesConfig(t *testing.T) {
	t.Parallel()

	cfg := TestAuthConfig()
	cfg.ResetPasswordSecret = "short"
	_, err := NewTokenService(cfg)
	assert.Error(t, err)

	cfg = TestAuthConfig()
	cfg.RefreshTokenLifetime = 0
	_, err = NewTokenService(cfg)
	assert.Error(t, err)

	_, err = NewTokenService(TestAuthConfig())
	assert.NoError(t, err)
}

func TestUnknownPurpose(t *testing.T) {
	t.Parallel()

	svc := NewTestTokenService(fixedClock)
	_, err := svc.Issue(context.Background(), Purpose("session"), testIdentity())
	assert.ErrorIs(t, err, ErrUnknownPurpose)
}

// tamper flips one character of the payload segment.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
