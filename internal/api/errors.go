package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/service"
	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/phrazzld/taskify-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrReferenced):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidQuery),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
// Unrecognized errors get a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Something went wrong!"
	}

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, service.ErrUserNotFoundOrInactive):
		return "User not found or inactive!"
	case errors.Is(err, service.ErrAccountSuspended):
		return "User Suspended"
	case errors.Is(err, service.ErrIncorrectPassword):
		return "Incorrect password!"
	case errors.Is(err, service.ErrIncorrectOldPassword):
		return "Incorrect old password!"
	case errors.Is(err, service.ErrInvalidResetToken):
		return "Invalid or expired token!"
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return "Invalid refresh token"
	case errors.Is(err, service.ErrUserNoLongerExists):
		return "User does not exist"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "You are not authorized!"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found!"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found!"
	case store.IsNotFoundError(err):
		return "Resource not found!"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrReferenced):
		return "User still owns tasks"
	case store.IsDuplicateError(err):
		return "Resource already exists"

	case errors.Is(err, store.ErrInvalidQuery):
		return "Invalid query parameter"
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation Error"

	default:
		return "Something went wrong!"
	}
}

// HandleAPIError writes the error envelope for err, logging its redacted
// detail. Status and message come from MapErrorToStatusCode and
// GetSafeErrorMessage.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// handleValidationError writes a 400 envelope listing the failed fields.
func handleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	issues := shared.ValidationIssues(err)
	if issues == nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation Error", err,
		shared.WithDetail(&shared.ErrorDetail{Issues: issues}))
}
