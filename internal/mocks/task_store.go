package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a testify mock of store.TaskStore.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskStore) List(ctx context.Context, query store.TaskQuery) (*store.Page[domain.Task], error) {
	args := m.Called(ctx, query)
	if page, ok := args.Get(0).(*store.Page[domain.Task]); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, id, update)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskStore) Stats(ctx context.Context, ownerID *uuid.UUID) (*store.TaskStats, error) {
	args := m.Called(ctx, ownerID)
	if stats, ok := args.Get(0).(*store.TaskStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
