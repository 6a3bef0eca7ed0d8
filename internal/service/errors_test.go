package service

import (
	"errors"
	"testing"

	"github.com/phrazzld/taskify-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestCredentialErrorsWrapUnauthenticated(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		ErrUserNotFoundOrInactive,
		ErrAccountSuspended,
		ErrIncorrectPassword,
		ErrIncorrectOldPassword,
		ErrInvalidResetToken,
		ErrInvalidRefreshToken,
		ErrUserNoLongerExists,
	} {
		assert.ErrorIs(t, err, ErrUnauthenticated, err.Error())
	}

	assert.False(t, errors.Is(ErrIncorrectPassword, ErrAccountSuspended))
}

func TestServiceError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "user",
			op:       "delete",
			err:      errors.New("database connection failed"),
			expected: "user service delete operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "task",
			op:       "statistics",
			expected: "task service statistics operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NewServiceError(tt.service, tt.op, tt.err).Error())
		})
	}
}

func TestServiceError_ErrorsIsAndAs(t *testing.T) {
	t.Parallel()

	inner := NewServiceError("task", "list", store.ErrInvalidQuery)
	outer := NewServiceError("wrapper", "wrap", inner)

	assert.ErrorIs(t, outer, store.ErrInvalidQuery)

	var serviceErr *ServiceError
	assert.True(t, errors.As(outer, &serviceErr))
	assert.Equal(t, "wrapper", serviceErr.Service)

	assert.Nil(t, NewServiceError("x", "y", nil).Unwrap())
}
