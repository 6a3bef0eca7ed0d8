package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/service"
	"github.com/phrazzld/taskify-api/internal/store"
	"github.com/stretchr/testify/mock"
)

type fakeAuthService struct{ mock.Mock }

var _ service.AuthService = (*fakeAuthService)(nil)

func (m *fakeAuthService) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	pair, _ := args.Get(0).(*service.TokenPair)
	return pair, args.Error(1)
}

func (m *fakeAuthService) Signup(ctx context.Context, in service.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *fakeAuthService) RefreshToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *fakeAuthService) ChangePassword(ctx context.Context, p domain.Principal, oldPassword, newPassword string) error {
	return m.Called(ctx, p, oldPassword, newPassword).Error(0)
}

func (m *fakeAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *fakeAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

func (m *fakeAuthService) GetMyProfile(ctx context.Context, p domain.Principal) (*domain.Profile, error) {
	args := m.Called(ctx, p)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *fakeAuthService) UpdateMyProfile(
	ctx context.Context,
	p domain.Principal,
	avatar *domain.FileUpload,
	in service.ProfileUpdate,
) (*domain.User, error) {
	args := m.Called(ctx, p, avatar, in)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type fakeTaskService struct{ mock.Mock }

var _ service.TaskService = (*fakeTaskService)(nil)

func (m *fakeTaskService) Create(ctx context.Context, p domain.Principal, in domain.TaskInput) (*domain.Task, error) {
	args := m.Called(ctx, p, in)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *fakeTaskService) List(
	ctx context.Context,
	p domain.Principal,
	params store.ListParams,
) (*store.Page[domain.Task], error) {
	args := m.Called(ctx, p, params)
	page, _ := args.Get(0).(*store.Page[domain.Task])
	return page, args.Error(1)
}

func (m *fakeTaskService) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *fakeTaskService) Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, id, update)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *fakeTaskService) Remove(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *fakeTaskService) Statistics(ctx context.Context, p domain.Principal) (*domain.TaskStatistics, error) {
	args := m.Called(ctx, p)
	stats, _ := args.Get(0).(*domain.TaskStatistics)
	return stats, args.Error(1)
}

type fakeUserService struct{ mock.Mock }

var _ service.UserService = (*fakeUserService)(nil)

func (m *fakeUserService) List(ctx context.Context, params store.ListParams) (*store.Page[domain.User], error) {
	args := m.Called(ctx, params)
	page, _ := args.Get(0).(*store.Page[domain.User])
	return page, args.Error(1)
}

func (m *fakeUserService) ChangeStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	args := m.Called(ctx, id, status)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *fakeUserService) Update(
	ctx context.Context,
	id uuid.UUID,
	avatar *domain.FileUpload,
	in service.AdminUserUpdate,
) (*domain.User, error) {
	args := m.Called(ctx, id, avatar, in)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *fakeUserService) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// asPrincipal wraps h so every request carries p.
func asPrincipal(p domain.Principal, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(w, r.WithContext(shared.WithPrincipal(r.Context(), p)))
	})
}
