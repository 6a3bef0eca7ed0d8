package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "InPROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Common validation errors for Task
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner    = errors.New("task owner cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrEmptyTaskDate     = errors.New("task date cannot be empty")
)

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	Priority  Priority   `json:"priority"`
	Date      time.Time  `json:"date"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TaskInput holds the caller-supplied fields of a new task.
type TaskInput struct {
	Title    string
	Status   TaskStatus
	Priority Priority
	Date     time.Time
}

// NewTask creates a task owned by ownerID.
func NewTask(ownerID uuid.UUID, in TaskInput) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     strings.TrimSpace(in.Title),
		Status:    in.Status,
		Priority:  in.Priority,
		Date:      in.Date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}
	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of TODO, InPROGRESS, DONE", ErrInvalidTaskStatus)
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH", ErrInvalidPriority)
	}
	if t.Date.IsZero() {
		return NewValidationError("date", "is required", ErrEmptyTaskDate)
	}
	return nil
}

// TaskUpdate carries the fields to overwrite on a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title    *string
	Status   *TaskStatus
	Priority *Priority
	Date     *time.Time
}

// IsEmpty reports whether no field is set.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Status == nil && u.Priority == nil && u.Date == nil
}

// Validate checks every field that is set.
func (u TaskUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if u.Status != nil && !u.Status.Valid() {
		return NewValidationError("status", "must be one of TODO, InPROGRESS, DONE", ErrInvalidTaskStatus)
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH", ErrInvalidPriority)
	}
	if u.Date != nil && u.Date.IsZero() {
		return NewValidationError("date", "is required", ErrEmptyTaskDate)
	}
	return nil
}
