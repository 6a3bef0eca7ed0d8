package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
)

// Mailer delivers outbound email.
type Mailer interface {
	// SendPasswordReset emails link to the address to.
	SendPasswordReset(ctx context.Context, to, link string) error
}

// AvatarStorage persists uploaded avatar images.
type AvatarStorage interface {
	// Save stores upload for userID and returns the path recorded on the user.
	Save(ctx context.Context, userID uuid.UUID, upload *domain.FileUpload) (string, error)
}
