package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/mocks"
	"github.com/phrazzld/taskify-api/internal/platform/storage"
	"github.com/phrazzld/taskify-api/internal/service"
	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/phrazzld/taskify-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testClientURL = "http://localhost:3000"

type testApp struct {
	handler http.Handler
	users   *mocks.UserStore
	tasks   *mocks.TaskStore
	tokens  auth.TokenService
	dir     string
}

// newTestApp wires the real services over mocked stores.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Server:  config.ServerConfig{ClientURL: testClientURL},
		Auth:    auth.TestAuthConfig(),
		Storage: config.StorageConfig{UploadDir: dir, MaxAvatarBytes: 1 << 20},
	}

	users := new(mocks.UserStore)
	tasks := new(mocks.TaskStore)
	tokens := auth.NewTestTokenService(nil)
	hasher := auth.NewBcryptHasher()
	avatars, err := storage.NewLocalAvatarStore(dir, cfg.Storage.MaxAvatarBytes, log)
	require.NoError(t, err)

	authService, err := service.NewAuthService(users, tokens, hasher, new(mocks.Mailer), avatars,
		cfg.Auth.ResetPasswordLink, log)
	require.NoError(t, err)
	taskService, err := service.NewTaskService(tasks, log)
	require.NoError(t, err)
	userService, err := service.NewUserService(users, hasher, avatars, log)
	require.NoError(t, err)

	app := &application{
		config:      cfg,
		logger:      log,
		tokens:      tokens,
		authService: authService,
		taskService: taskService,
		userService: userService,
		uploadDir:   dir,
		registry:    prometheus.NewRegistry(),
	}

	return &testApp{
		handler: app.setupRouter(),
		users:   users,
		tasks:   tasks,
		tokens:  tokens,
		dir:     dir,
	}
}

func (a *testApp) accessToken(t *testing.T, id uuid.UUID, role domain.Role) string {
	t.Helper()
	token, err := a.tokens.Issue(context.Background(), auth.PurposeAccess,
		auth.Identity{UserID: id, Email: "someone@example.com", Role: role})
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, r *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	rec, body := app.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	rec, body := app.do(t, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "API NOT FOUND!", body["message"])
	detail, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/api/nope", detail["path"])
	assert.Equal(t, "Your requested path is not found!", detail["message"])
}

func TestRouter_Authorization(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	adminID := uuid.New()
	app.users.On("List", mock.Anything, mock.Anything).Return(&store.Page[domain.User]{
		Items: []domain.User{{ID: adminID}},
		Meta:  store.PageMeta{Page: 1, Limit: 10, Total: 1, TotalPage: 1},
	}, nil)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"no token", "", http.StatusUnauthorized, "You are not authorized!"},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, "Invalid token"},
		{"user role", app.accessToken(t, uuid.New(), domain.RoleUser), http.StatusForbidden, "Forbidden!"},
		{"admin role", app.accessToken(t, adminID, domain.RoleAdmin), http.StatusOK, "Users data fetched!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			rec, body := app.do(t, r)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantMessage, body["message"])
		})
	}
}

func TestRouter_TaskStatisticsScopedToCaller(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	userID := uuid.New()
	app.tasks.On("Stats", mock.Anything, &userID).Return(&store.TaskStats{
		Total:      3,
		Completed:  1,
		InProgress: 1,
		ByMonth:    map[int]int64{0: 2, 2: 1},
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/tasks/statistics", nil)
	r.Header.Set("Authorization", "Bearer "+app.accessToken(t, userID, domain.RoleUser))
	rec, body := app.do(t, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"totalTasks":           float64(3),
		"totalTasksCompleted":  float64(1),
		"totalTasksInProgress": float64(1),
	}, data["total"])
	app.tasks.AssertExpectations(t)
}

func TestRouter_LoginThenProfile(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: string(hash),
		Role:           domain.RoleUser,
		Status:         domain.UserStatusActive,
	}
	app.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	app.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	rec, body := app.do(t, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"Ada@Example.com","password":"secret1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	access, ok := data["accessToken"].(string)
	require.True(t, ok)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	r.Header.Set("Authorization", access)
	rec, body = app.do(t, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	profile, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", profile["email"])
	assert.NotContains(t, profile, "status")
}

func TestRouter_ServesUploads(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(app.dir, "avatars"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(app.dir, "avatars", "a.txt"), []byte("hello"), 0o644))

	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, storage.PublicPrefix+"/avatars/a.txt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	r := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	r.Header.Set("Origin", testClientURL)
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, r)

	assert.Equal(t, testClientURL, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/health",status="200"} 1`)
}
