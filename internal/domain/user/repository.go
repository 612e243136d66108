package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for users.
type Repository interface {
	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Exists reports whether a user with the given id is registered.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListAll retrieves every user, oldest first.
	ListAll(ctx context.Context) ([]*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// Delete removes a user by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
