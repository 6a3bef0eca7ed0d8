package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/store"
)

// TaskService provides task management and reporting.
type TaskService interface {
	// Create adds a task owned by the caller.
	Create(ctx context.Context, principal domain.Principal, in domain.TaskInput) (*domain.Task, error)

	// List returns a page of tasks. Users only see their own tasks; admins see all.
	List(ctx context.Context, principal domain.Principal, params store.ListParams) (*store.Page[domain.Task], error)

	// Get returns a task by id.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update applies the set fields of update to a task.
	Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// Remove deletes a task and returns it.
	Remove(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Statistics reports totals and a per-month histogram over the caller's scope.
	Statistics(ctx context.Context, principal domain.Principal) (*domain.TaskStatistics, error)
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// expected reports whether err is a condition the API maps to a client error.
func expected(err error) bool {
	return errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, store.ErrInvalidQuery) ||
		errors.Is(err, store.ErrReferenced) ||
		errors.Is(err, domain.ErrValidation)
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(
	ctx context.Context,
	principal domain.Principal,
	in domain.TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(principal.UserID, in)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "create", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", principal.UserID.String()))
	return task, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(
	ctx context.Context,
	principal domain.Principal,
	params store.ListParams,
) (*store.Page[domain.Task], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page, err := s.tasks.List(ctx, store.TaskQuery{
		OwnerID:    principal.OwnerScope(),
		ListParams: params.Normalize(),
	})
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "list", err)
	}

	return page, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		return nil, NewServiceError("task", "get", err)
	}
	return task, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		return nil, err
	}
	if update.Date != nil {
		date := update.Date.UTC()
		update.Date = &date
	}

	task, err := s.tasks.Update(ctx, id, update)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewServiceError("task", "update", err)
	}

	return task, nil
}

// Remove implements TaskService.Remove
func (s *taskServiceImpl) Remove(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.Delete(ctx, id)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewServiceError("task", "remove", err)
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	return task, nil
}

// Statistics implements TaskService.Statistics
func (s *taskServiceImpl) Statistics(
	ctx context.Context,
	principal domain.Principal,
) (*domain.TaskStatistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats, err := s.tasks.Stats(ctx, principal.OwnerScope())
	if err != nil {
		log.Error("failed to aggregate task statistics", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "statistics", err)
	}

	result := domain.NewTaskStatistics(domain.TaskTotals{
		TotalTasks:           stats.Total,
		TotalTasksCompleted:  stats.Completed,
		TotalTasksInProgress: stats.InProgress,
	}, stats.ByMonth)
	return &result, nil
}
