package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
)

// TaskStats holds the aggregate counts behind the statistics report.
// ByMonth is keyed by zero-based month index of the scheduled date (UTC).
type TaskStats struct {
	Total      int64
	Completed  int64
	InProgress int64
	ByMonth    map[int]int64
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrUserNotFound if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns one page of tasks matching query.
	// Searchable fields: title. Filterable: title, status, priority.
	// Returns ErrInvalidQuery for an unknown sort or filter field.
	List(ctx context.Context, query TaskQuery) (*Page[domain.Task], error)

	// Update applies the non-nil fields of update in a single statement and
	// returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes a task and returns the removed record.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Stats aggregates the tasks of ownerID, or of every owner when nil.
	Stats(ctx context.Context, ownerID *uuid.UUID) (*TaskStats, error)
}
