package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/phrazzld/taskify-api/internal/store"
)

// UserService provides user administration. Callers are expected to have
// been authorized as admins before reaching it.
type UserService interface {
	// List returns a page of users.
	List(ctx context.Context, params store.ListParams) (*store.Page[domain.User], error)

	// ChangeStatus sets the status of a user.
	ChangeStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error)

	// Update applies an admin update and an optional new avatar to a user.
	Update(ctx context.Context, id uuid.UUID, avatar *domain.FileUpload, in AdminUserUpdate) (*domain.User, error)

	// Delete removes a user and returns it.
	Delete(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userServiceImpl struct {
	users   store.UserStore
	hasher  auth.PasswordHasher
	avatars AvatarStorage
	logger  *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	avatars AvatarStorage,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if avatars == nil {
		return nil, domain.NewValidationError("avatars", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:   users,
		hasher:  hasher,
		avatars: avatars,
		logger:  logger.With(slog.String("component", "user_service")),
	}, nil
}

// List implements UserService.List
func (s *userServiceImpl) List(ctx context.Context, params store.ListParams) (*store.Page[domain.User], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page, err := s.users.List(ctx, params.Normalize())
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, NewServiceError("user", "list", err)
	}

	return page, nil
}

// ChangeStatus implements UserService.ChangeStatus
func (s *userServiceImpl) ChangeStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.UserStatus,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	update := domain.UserUpdate{Status: &status}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to change user status",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, NewServiceError("user", "change_status", err)
	}

	log.Info("user status changed",
		slog.String("user_id", id.String()),
		slog.String("status", string(status)))
	return user, nil
}

// Update implements UserService.Update
func (s *userServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	avatar *domain.FileUpload,
	in AdminUserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := (domain.UserUpdate{Role: in.Role, Status: in.Status}).Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if expected(err) {
			return nil, err
		}
		return nil, NewServiceError("user", "update", err)
	}

	update, err := profileChanges(ctx, s.hasher, s.avatars, id, avatar, in.ProfileUpdate)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to prepare user update", slog.String("error", err.Error()))
		return nil, NewServiceError("user", "update", err)
	}
	update.Role = in.Role
	update.Status = in.Status

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, NewServiceError("user", "update", err)
	}

	log.Info("user updated", slog.String("user_id", id.String()))
	return user, nil
}

// Delete implements UserService.Delete
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.Delete(ctx, id)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, NewServiceError("user", "delete", err)
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return user, nil
}
