package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/service"
)

// LoginRequest defines the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest defines the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// TokenResponse is returned by login and token refresh.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshTokenRequest is the body fallback for POST /auth/refresh-token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest defines the payload for POST /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// ForgotPasswordRequest defines the payload for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the payload for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// MessageResponse carries a confirmation message as data.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileUpdateRequest is the JSON "data" part of PUT /auth/profile.
type ProfileUpdateRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Phone    *string `json:"phone"    validate:"omitempty,max=32"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

func (r ProfileUpdateRequest) toService() service.ProfileUpdate {
	return service.ProfileUpdate{
		Name:     shared.SanitizePtr(r.Name),
		Email:    r.Email,
		Phone:    shared.SanitizePtr(r.Phone),
		Password: r.Password,
	}
}

// UserUpdateRequest is the JSON "data" part of PATCH /users/{id}.
type UserUpdateRequest struct {
	ProfileUpdateRequest
	Role   *domain.Role       `json:"role"   validate:"omitempty,oneof=ADMIN USER"`
	Status *domain.UserStatus `json:"status" validate:"omitempty,oneof=ACTIVE BLOCKED"`
}

func (r UserUpdateRequest) toService() service.AdminUserUpdate {
	return service.AdminUserUpdate{
		ProfileUpdate: r.ProfileUpdateRequest.toService(),
		Role:          r.Role,
		Status:        r.Status,
	}
}

// ChangeStatusRequest defines the payload for PATCH /users/{id}/status.
type ChangeStatusRequest struct {
	Status domain.UserStatus `json:"status" validate:"required,oneof=ACTIVE BLOCKED"`
}

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title    string            `json:"title"    validate:"required,max=200"`
	Status   domain.TaskStatus `json:"status"   validate:"required,oneof=TODO InPROGRESS DONE"`
	Priority domain.Priority   `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Date     *Date             `json:"date"     validate:"required"`
}

func (r CreateTaskRequest) toDomain() domain.TaskInput {
	return domain.TaskInput{
		Title:    shared.Sanitize(r.Title),
		Status:   r.Status,
		Priority: r.Priority,
		Date:     r.Date.Time,
	}
}

// UpdateTaskRequest defines the payload for PUT /tasks/{id}.
type UpdateTaskRequest struct {
	Title    *string            `json:"title"    validate:"omitempty,min=1,max=200"`
	Status   *domain.TaskStatus `json:"status"   validate:"omitempty,oneof=TODO InPROGRESS DONE"`
	Priority *domain.Priority   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Date     *Date              `json:"date"`
}

func (r UpdateTaskRequest) toDomain() domain.TaskUpdate {
	return domain.TaskUpdate{
		Title:    shared.SanitizePtr(r.Title),
		Status:   r.Status,
		Priority: r.Priority,
		Date:     r.Date.Ptr(),
	}
}

// dateLayouts are the accepted forms of a task date, most specific first.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Date is a task date given either as an RFC 3339 timestamp or a calendar
// day. Values without a zone are read as UTC.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("date %q is not a valid date", s)
}

// Ptr returns the time, or nil for a nil Date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
