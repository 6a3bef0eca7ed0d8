package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/phrazzld/taskify-api/internal/store"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService provides credential and profile operations.
type AuthService interface {
	// Login verifies credentials and returns an access and refresh token.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Signup registers an ACTIVE user with role USER.
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)

	// RefreshToken exchanges a refresh token for a new access token.
	RefreshToken(ctx context.Context, refreshToken string) (string, error)

	// ChangePassword replaces the caller's password after checking the old one.
	ChangePassword(ctx context.Context, principal domain.Principal, oldPassword, newPassword string) error

	// ForgotPassword emails a password reset link to the account owner.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password for the subject of a reset token.
	ResetPassword(ctx context.Context, resetToken, newPassword string) error

	// GetMyProfile returns the caller's profile.
	GetMyProfile(ctx context.Context, principal domain.Principal) (*domain.Profile, error)

	// UpdateMyProfile applies a self-service update and an optional new avatar.
	UpdateMyProfile(
		ctx context.Context,
		principal domain.Principal,
		avatar *domain.FileUpload,
		in ProfileUpdate,
	) (*domain.User, error)
}

type authServiceImpl struct {
	users     store.UserStore
	tokens    auth.TokenService
	hasher    auth.PasswordHasher
	mailer    Mailer
	avatars   AvatarStorage
	resetLink string
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService.
// resetLink is the page that receives the reset token as its token query parameter.
func NewAuthService(
	users store.UserStore,
	tokens auth.TokenService,
	hasher auth.PasswordHasher,
	mailer Mailer,
	avatars AvatarStorage,
	resetLink string,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if mailer == nil {
		return nil, domain.NewValidationError("mailer", "cannot be nil", domain.ErrValidation)
	}
	if avatars == nil {
		return nil, domain.NewValidationError("avatars", "cannot be nil", domain.ErrValidation)
	}
	if _, err := url.ParseRequestURI(resetLink); err != nil {
		return nil, domain.NewValidationError("resetLink", "must be an absolute URL", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		mailer:    mailer,
		avatars:   avatars,
		resetLink: resetLink,
		logger:    logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Login implements AuthService.Login
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return nil, ErrUserNotFoundOrInactive
		}
		log.Error("failed to look up user for login", slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "login", err)
	}

	if user.IsBlocked() {
		log.Info("login rejected for blocked user", slog.String("user_id", user.ID.String()))
		return nil, ErrAccountSuspended
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with incorrect password", slog.String("user_id", user.ID.String()))
		return nil, ErrIncorrectPassword
	}

	identity := auth.IdentityOf(user)
	access, err := s.tokens.Issue(ctx, auth.PurposeAccess, identity)
	if err != nil {
		log.Error("failed to issue access token", slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "login", err)
	}
	refresh, err := s.tokens.Issue(ctx, auth.PurposeRefresh, identity)
	if err != nil {
		log.Error("failed to issue refresh token", slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "login", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Signup implements AuthService.Signup
func (s *authServiceImpl) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.Password == "" {
		return nil, domain.NewValidationError("password", "cannot be empty", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password, auth.CostStandard)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "signup", err)
	}

	user, err := domain.NewUser(in.Name, in.Email, hash)
	if err != nil {
		return nil, domain.NewValidationError("user", err.Error(), err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup with existing email")
			return nil, err
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "signup", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// RefreshToken implements AuthService.RefreshToken
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.Verify(ctx, auth.PurposeRefresh, refreshToken)
	if err != nil {
		log.Debug("refresh token rejected", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("refresh token for deleted user", slog.String("user_id", claims.UserID.String()))
			return "", ErrUserNoLongerExists
		}
		log.Error("failed to look up user for refresh", slog.String("error", err.Error()))
		return "", NewServiceError("auth", "refresh_token", err)
	}

	access, err := s.tokens.Issue(ctx, auth.PurposeAccess, auth.IdentityOf(user))
	if err != nil {
		log.Error("failed to issue access token", slog.String("error", err.Error()))
		return "", NewServiceError("auth", "refresh_token", err)
	}

	return access, nil
}

// ChangePassword implements AuthService.ChangePassword
func (s *authServiceImpl) ChangePassword(
	ctx context.Context,
	principal domain.Principal,
	oldPassword, newPassword string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		log.Error("failed to look up user for password change", slog.String("error", err.Error()))
		return NewServiceError("auth", "change_password", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, oldPassword); err != nil {
		log.Debug("password change with incorrect old password", slog.String("user_id", user.ID.String()))
		return ErrIncorrectOldPassword
	}

	if newPassword == "" {
		return domain.NewValidationError("newPassword", "cannot be empty", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(newPassword, auth.CostStrong)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return NewServiceError("auth", "change_password", err)
	}

	if _, err := s.users.Update(ctx, user.ID, domain.UserUpdate{HashedPassword: &hash}); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		log.Error("failed to persist password", slog.String("error", err.Error()))
		return NewServiceError("auth", "change_password", err)
	}

	log.Info("password changed", slog.String("user_id", user.ID.String()))
	return nil
}

// ForgotPassword implements AuthService.ForgotPassword
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		log.Error("failed to look up user for password reset", slog.String("error", err.Error()))
		return NewServiceError("auth", "forgot_password", err)
	}

	token, err := s.tokens.Issue(ctx, auth.PurposePasswordReset, auth.IdentityOf(user))
	if err != nil {
		log.Error("failed to issue reset token", slog.String("error", err.Error()))
		return NewServiceError("auth", "forgot_password", err)
	}

	link, err := s.resetURL(token)
	if err != nil {
		return NewServiceError("auth", "forgot_password", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		log.Error("failed to send reset email",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return NewServiceError("auth", "forgot_password", err)
	}

	log.Info("password reset email sent", slog.String("user_id", user.ID.String()))
	return nil
}

// resetURL appends token to the configured reset page as ?token=.
func (s *authServiceImpl) resetURL(token string) (string, error) {
	u, err := url.Parse(s.resetLink)
	if err != nil {
		return "", fmt.Errorf("invalid reset link: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ResetPassword implements AuthService.ResetPassword
func (s *authServiceImpl) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.Verify(ctx, auth.PurposePasswordReset, resetToken)
	if err != nil {
		log.Debug("reset token rejected", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrInvalidResetToken, err)
	}

	if newPassword == "" {
		return domain.NewValidationError("password", "cannot be empty", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(newPassword, auth.CostStrong)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return NewServiceError("auth", "reset_password", err)
	}

	if err := s.users.UpdatePasswordByEmail(ctx, claims.Email, hash); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		log.Error("failed to persist password", slog.String("error", err.Error()))
		return NewServiceError("auth", "reset_password", err)
	}

	log.Info("password reset", slog.String("user_id", claims.UserID.String()))
	return nil
}

// GetMyProfile implements AuthService.GetMyProfile
func (s *authServiceImpl) GetMyProfile(ctx context.Context, principal domain.Principal) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, NewServiceError("auth", "get_profile", err)
	}

	profile := user.Profile()
	return &profile, nil
}

// UpdateMyProfile implements AuthService.UpdateMyProfile
func (s *authServiceImpl) UpdateMyProfile(
	ctx context.Context,
	principal domain.Principal,
	avatar *domain.FileUpload,
	in ProfileUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.users.GetByID(ctx, principal.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, NewServiceError("auth", "update_profile", err)
	}

	update, err := profileChanges(ctx, s.hasher, s.avatars, principal.UserID, avatar, in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to prepare profile update", slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "update_profile", err)
	}

	user, err := s.users.Update(ctx, principal.UserID, update)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrEmailExists) {
			return nil, err
		}
		log.Error("failed to update profile", slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "update_profile", err)
	}

	log.Info("profile updated", slog.String("user_id", user.ID.String()))
	return user, nil
}
