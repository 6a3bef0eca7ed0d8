package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *gorm.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	row := newTaskRow(task)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task owner does not exist",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return store.ErrUserNotFound
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row taskRow
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	task := row.toDomain()
	return &task, nil
}

// ownerScope restricts a query to ownerID when it is set.
func ownerScope(ownerID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ownerID == nil {
			return db
		}
		return db.Where("user_id = ?", *ownerID)
	}
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(
	ctx context.Context,
	query store.TaskQuery,
) (*store.Page[domain.Task], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	params := query.ListParams.Normalize()
	filter, order, err := taskListSpec.scope(params)
	if err != nil {
		return nil, err
	}
	owner := ownerScope(query.OwnerID)

	var (
		total int64
		rows  []taskRow
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&taskRow{}).Scopes(owner, filter).Count(&total).Error; err != nil {
			return err
		}
		return tx.Scopes(owner, filter).
			Order(order).
			Limit(params.Limit).
			Offset(params.Offset()).
			Find(&rows).Error
	}, readTxOptions)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	tasks := make([]domain.Task, len(rows))
	for i, r := range rows {
		tasks[i] = r.toDomain()
	}

	return &store.Page[domain.Task]{
		Items: tasks,
		Meta:  store.NewPageMeta(params, total),
	}, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		return nil, err
	}

	var row taskRow
	result := s.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(taskAssignments(update, time.Now().UTC()))
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to update task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, err
	}

	log.Info("task updated successfully", slog.String("task_id", id.String()))
	task := row.toDomain()
	return &task, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row taskRow
	result := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&row)
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, err
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	task := row.toDomain()
	return &task, nil
}

type statusTotals struct {
	Total      int64
	Completed  int64
	InProgress int64
}

type monthCount struct {
	Month int
	Total int64
}

// Stats implements store.TaskStore.Stats
func (s *PostgresTaskStore) Stats(ctx context.Context, ownerID *uuid.UUID) (*store.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	owner := ownerScope(ownerID)

	var (
		totals statusTotals
		months []monthCount
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&taskRow{}).
			Scopes(owner).
			Select(
				"COUNT(*) AS total, "+
					"COUNT(*) FILTER (WHERE status = ?) AS completed, "+
					"COUNT(*) FILTER (WHERE status = ?) AS in_progress",
				string(domain.TaskStatusDone),
				string(domain.TaskStatusInProgress),
			).
			Scan(&totals).Error
		if err != nil {
			return err
		}
		// Months are zero-based to match domain.MonthName.
		return tx.Model(&taskRow{}).
			Scopes(owner).
			Select("CAST(EXTRACT(MONTH FROM date AT TIME ZONE 'UTC') AS integer) - 1 AS month, COUNT(*) AS total").
			Group("month").
			Scan(&months).Error
	}, readTxOptions)
	if err != nil {
		log.Error("failed to compute task statistics", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	byMonth := make(map[int]int64, len(months))
	for _, m := range months {
		byMonth[m.Month] = m.Total
	}

	return &store.TaskStats{
		Total:      totals.Total,
		Completed:  totals.Completed,
		InProgress: totals.InProgress,
		ByMonth:    byMonth,
	}, nil
}
