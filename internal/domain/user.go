package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization tier carried in access tokens.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserStatus gates whether an account may log in.
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

// Valid reports whether s is a known user status.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusBlocked
}

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidUserStatus   = errors.New("invalid user status")
)

// User represents a registered account.
// The password hash is never serialized.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	Role           Role       `json:"role"`
	Status         UserStatus `json:"status"`
	Avatar         *string    `json:"avatar"`
	Phone          *string    `json:"phone"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// NewUser creates an ACTIVE user with role USER.
// The caller must supply an already hashed password.
func NewUser(name, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		Role:           RoleUser,
		Status:         UserStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	if !u.Status.Valid() {
		return ErrInvalidUserStatus
	}
	return nil
}

// IsBlocked reports whether the account is suspended.
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}

// Profile is the restricted view of a user returned to its owner.
type Profile struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar"`
	Email  string    `json:"email"`
	Phone  *string   `json:"phone"`
	Role   Role      `json:"role"`
}

// Profile projects u onto the fields a user may see about themselves.
func (u *User) Profile() Profile {
	return Profile{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Email:  u.Email,
		Phone:  u.Phone,
		Role:   u.Role,
	}
}

// UserUpdate carries the fields to overwrite on a user. Nil fields are left unchanged.
type UserUpdate struct {
	Name           *string
	Email          *string
	Phone          *string
	Avatar         *string
	HashedPassword *string
	Role           *Role
	Status         *UserStatus
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Avatar == nil &&
		u.HashedPassword == nil && u.Role == nil && u.Status == nil
}

// Validate checks every field that is set.
func (u UserUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyName)
	}
	if u.Email != nil && !ValidEmail(*u.Email) {
		return NewValidationError("email", "must be a valid email address", ErrInvalidEmail)
	}
	if u.HashedPassword != nil && *u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyHashedPassword)
	}
	if u.Role != nil && !u.Role.Valid() {
		return NewValidationError("role", "must be one of ADMIN, USER", ErrInvalidRole)
	}
	if u.Status != nil && !u.Status.Valid() {
		return NewValidationError("status", "must be one of ACTIVE, BLOCKED", ErrInvalidUserStatus)
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email is a bare RFC 5322 address.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
