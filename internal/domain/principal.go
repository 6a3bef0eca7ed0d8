package domain

import "github.com/google/uuid"

// Principal is the authenticated caller, derived from a verified access token.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// OwnerScope returns the owner constraint for list-style queries:
// nil for admins, the caller's own id otherwise.
func (p Principal) OwnerScope() *uuid.UUID {
	if p.IsAdmin() {
		return nil
	}
	id := p.UserID
	return &id
}
