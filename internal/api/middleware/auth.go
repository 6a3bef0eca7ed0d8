package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/service/auth"
)

// AuthMiddleware authenticates access tokens and enforces a Policy.
type AuthMiddleware struct {
	tokens auth.TokenService
	policy Policy
}

// NewAuthMiddleware creates a new AuthMiddleware. A nil policy uses DefaultPolicy.
func NewAuthMiddleware(tokens auth.TokenService, policy Policy) *AuthMiddleware {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &AuthMiddleware{tokens: tokens, policy: policy}
}

// Authenticate verifies the access token in the Authorization header, given
// either bare or as "Bearer <token>", and stores the caller in the context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := shared.TokenFromHeader(r.Header.Get("Authorization"))
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "You are not authorized!")
			return
		}

		claims, err := m.tokens.Verify(r.Context(), auth.PurposeAccess, token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		principal := claims.Principal()
		ctx := shared.WithPrincipal(r.Context(), principal)
		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("user_id", principal.UserID.String()))
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
	})
}

// Require admits the request only if the authenticated caller's role is
// granted action on resource. It must run after Authenticate.
func (m *AuthMiddleware) Require(resource Resource, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := shared.PrincipalFrom(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "You are not authorized!")
				return
			}
			if !m.policy.Allows(principal.Role, resource, action) {
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Forbidden!", nil,
					shared.WithElevatedLogLevel())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
