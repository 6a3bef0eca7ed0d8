package service

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is the parent of every credential failure. The API layer
// maps anything wrapping it to 401 Unauthorized.
var ErrUnauthenticated = errors.New("unauthenticated")

// Credential failures. Each wraps ErrUnauthenticated.
var (
	ErrUserNotFoundOrInactive = fmt.Errorf("%w: user not found or inactive", ErrUnauthenticated)
	ErrAccountSuspended       = fmt.Errorf("%w: user suspended", ErrUnauthenticated)
	ErrIncorrectPassword      = fmt.Errorf("%w: incorrect password", ErrUnauthenticated)
	ErrIncorrectOldPassword   = fmt.Errorf("%w: incorrect old password", ErrUnauthenticated)
	ErrInvalidResetToken      = fmt.Errorf("%w: invalid or expired reset token", ErrUnauthenticated)
	ErrInvalidRefreshToken    = fmt.Errorf("%w: invalid or expired refresh token", ErrUnauthenticated)
	ErrUserNoLongerExists     = fmt.Errorf("%w: user does not exist", ErrUnauthenticated)
)

// ServiceError wraps an unexpected failure with the service and operation
// it occurred in. Expected conditions are returned as sentinel errors instead.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}
