package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// readTxOptions gives count-then-page and aggregate queries a single snapshot.
var readTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db *gorm.DB, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	row := newUserRow(user)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attempted to create user with existing email",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "id = ?", id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email = ?", domain.NormalizeEmail(email))
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row userRow
	err := s.db.WithContext(ctx).Where(query, arg).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("user not found", slog.String("query", query))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	user := row.toDomain()
	return &user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(
	ctx context.Context,
	params store.ListParams,
) (*store.Page[domain.User], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	params = params.Normalize()
	filter, order, err := userListSpec.scope(params)
	if err != nil {
		return nil, err
	}

	var (
		total int64
		rows  []userRow
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userRow{}).Scopes(filter).Count(&total).Error; err != nil {
			return err
		}
		return tx.Scopes(filter).
			Order(order).
			Limit(params.Limit).
			Offset(params.Offset()).
			Find(&rows).Error
	}, readTxOptions)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	users := make([]domain.User, len(rows))
	for i, r := range rows {
		users[i] = r.toDomain()
	}

	return &store.Page[domain.User]{
		Items: users,
		Meta:  store.NewPageMeta(params, total),
	}, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.UserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		return nil, err
	}

	var row userRow
	result := s.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(userAssignments(update, time.Now().UTC()))
	if IsUniqueViolation(result.Error) {
		log.Warn("attempted to update user to existing email", slog.String("user_id", id.String()))
		return nil, store.ErrEmailExists
	}
	if err := checkRowsAffected(result, store.ErrUserNotFound); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.String("user_id", id.String()))
		}
		return nil, err
	}

	log.Info("user updated successfully", slog.String("user_id", id.String()))
	user := row.toDomain()
	return &user, nil
}

// UpdatePasswordByEmail implements store.UserStore.UpdatePasswordByEmail
func (s *PostgresUserStore) UpdatePasswordByEmail(
	ctx context.Context,
	email, hashedPassword string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if hashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	result := s.db.WithContext(ctx).
		Model(&userRow{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		Updates(map[string]any{
			"password":   hashedPassword,
			"updated_at": time.Now().UTC(),
		})
	if err := checkRowsAffected(result, store.ErrUserNotFound); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to update password", slog.String("error", err.Error()))
		}
		return err
	}

	log.Info("user password updated")
	return nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row userRow
	result := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&row)
	if IsForeignKeyViolation(result.Error) {
		log.Warn("refusing to delete user who still owns tasks", slog.String("user_id", id.String()))
		return nil, fmt.Errorf("%w: user %s owns tasks", store.ErrReferenced, id)
	}
	if err := checkRowsAffected(result, store.ErrUserNotFound); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete user",
				slog.String("error", err.Error()),
				slog.String("user_id", id.String()))
		}
		return nil, err
	}

	log.Info("user deleted successfully", slog.String("user_id", id.String()))
	user := row.toDomain()
	return &user, nil
}
