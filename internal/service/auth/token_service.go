package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
)

// Purpose scopes a token to one use. Each purpose is signed with its own
// secret, so a token issued for one purpose never verifies as another.
type Purpose string

const (
	PurposeAccess        Purpose = "access"
	PurposeRefresh       Purpose = "refresh"
	PurposePasswordReset Purpose = "password_reset"
)

// Identity is the subject a token is issued for.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

// IdentityOf returns the token identity of user.
func IdentityOf(user *domain.User) Identity {
	return Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}

// TokenService issues and verifies signed, time-limited tokens.
type TokenService interface {
	// Issue signs a token for identity with the purpose's secret and lifetime.
	Issue(ctx context.Context, purpose Purpose, identity Identity) (string, error)

	// Verify checks the signature, expiry and purpose of token.
	// Returns ErrExpiredToken for an expired token and ErrInvalidToken otherwise.
	Verify(ctx context.Context, purpose Purpose, token string) (*Claims, error)
}

// Claims represents the verified contents of a token.
type Claims struct {
	UserID  uuid.UUID
	Email   string
	Role    domain.Role
	Purpose Purpose

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// Principal converts verified claims into the authenticated caller.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{UserID: c.UserID, Email: c.Email, Role: c.Role}
}
