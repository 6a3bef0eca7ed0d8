package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mailer is a testify mock of service.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, link string) error {
	args := m.Called(ctx, to, link)
	return args.Error(0)
}

// AvatarStorage is a testify mock of service.AvatarStorage.
type AvatarStorage struct {
	mock.Mock
}

func (m *AvatarStorage) Save(ctx context.Context, userID uuid.UUID, upload *domain.FileUpload) (string, error) {
	args := m.Called(ctx, userID, upload)
	return args.String(0), args.Error(1)
}
