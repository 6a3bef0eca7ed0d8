package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns one page of users matching params.
	// Searchable fields: name, email. Filterable: name, email, role, status, phone.
	// Returns ErrInvalidQuery for an unknown sort or filter field.
	List(ctx context.Context, params ListParams) (*Page[domain.User], error)

	// Update applies the non-nil fields of update in a single statement and
	// returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error)

	// UpdatePasswordByEmail replaces the password hash of the user with email.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePasswordByEmail(ctx context.Context, email, hashedPassword string) error

	// Delete removes a user and returns the removed record.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrReferenced if the user still owns tasks.
	Delete(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
