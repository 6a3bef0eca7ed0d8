package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issue(t *testing.T, tokens auth.TokenService, purpose auth.Purpose, role domain.Role) (string, auth.Identity) {
	t.Helper()
	identity := auth.Identity{UserID: uuid.New(), Email: "ada@example.com", Role: role}
	token, err := tokens.Issue(context.Background(), purpose, identity)
	require.NoError(t, err)
	return token, identity
}

// principalEcho responds 200 with the caller's role, proving the principal reached the handler.
var principalEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.PrincipalFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(p.Role))
})

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTestTokenService(nil)
	m := NewAuthMiddleware(tokens, nil)

	access, _ := issue(t, tokens, auth.PurposeAccess, domain.RoleUser)
	refresh, _ := issue(t, tokens, auth.PurposeRefresh, domain.RoleUser)

	past := auth.NewTestTokenService(func() time.Time { return time.Now().Add(-48 * time.Hour) })
	expired, _ := issue(t, past, auth.PurposeAccess, domain.RoleUser)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "bearer token", header: "Bearer " + access, wantStatus: http.StatusOK, wantBody: "USER"},
		{name: "bare token", header: access, wantStatus: http.StatusOK, wantBody: "USER"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "refresh token is not an access token", header: "Bearer " + refresh, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantBody: "Token expired"},
		{name: "garbage", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			m.Authenticate(principalEcho).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTestTokenService(nil)
	m := NewAuthMiddleware(tokens, nil)
	userToken, _ := issue(t, tokens, auth.PurposeAccess, domain.RoleUser)
	adminToken, _ := issue(t, tokens, auth.PurposeAccess, domain.RoleAdmin)

	tests := []struct {
		name       string
		token      string
		resource   Resource
		action     Action
		wantStatus int
	}{
		{name: "user lists users", token: userToken, resource: ResourceUser, action: ActionList, wantStatus: http.StatusForbidden},
		{name: "admin lists users", token: adminToken, resource: ResourceUser, action: ActionList, wantStatus: http.StatusOK},
		{name: "user reads tasks", token: userToken, resource: ResourceTask, action: ActionRead, wantStatus: http.StatusOK},
		{name: "unknown permission", token: adminToken, resource: "report", action: ActionRead, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()

			m.Authenticate(m.Require(tt.resource, tt.action)(principalEcho)).ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("without Authenticate", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Require(ResourceTask, ActionRead)(principalEcho).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	assert.True(t, DefaultPolicy.Allows(domain.RoleUser, ResourceProfile, ActionUpdate))
	assert.True(t, DefaultPolicy.Allows(domain.RoleAdmin, ResourceUser, ActionDelete))
	assert.False(t, DefaultPolicy.Allows(domain.RoleUser, ResourceUser, ActionDelete))
	assert.False(t, DefaultPolicy.Allows(domain.RoleUser, ResourceUser, ActionUpdate))
	assert.False(t, DefaultPolicy.Allows("GUEST", ResourceTask, ActionRead))
}
