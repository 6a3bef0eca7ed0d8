package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/service/auth"
)

// ProfileUpdate holds the self-service fields of a user. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

// AdminUserUpdate extends ProfileUpdate with the fields only an admin may set.
type AdminUserUpdate struct {
	ProfileUpdate
	Role   *domain.Role
	Status *domain.UserStatus
}

// profileChanges converts a profile update into store assignments: the
// password is hashed at CostStandard and an avatar, when present, is stored
// first so its path can be recorded.
func profileChanges(
	ctx context.Context,
	hasher auth.PasswordHasher,
	avatars AvatarStorage,
	userID uuid.UUID,
	avatar *domain.FileUpload,
	in ProfileUpdate,
) (domain.UserUpdate, error) {
	update := domain.UserUpdate{
		Name:  in.Name,
		Phone: in.Phone,
	}
	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		update.Email = &email
	}

	if in.Password != nil {
		hash, err := hasher.Hash(*in.Password, auth.CostStandard)
		if err != nil {
			return domain.UserUpdate{}, fmt.Errorf("failed to hash password: %w", err)
		}
		update.HashedPassword = &hash
	}

	if err := update.Validate(); err != nil {
		return domain.UserUpdate{}, err
	}

	if avatar != nil {
		path, err := avatars.Save(ctx, userID, avatar)
		if err != nil {
			return domain.UserUpdate{}, fmt.Errorf("failed to store avatar: %w", err)
		}
		update.Avatar = &path
	}

	return update, nil
}
