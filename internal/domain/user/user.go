package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/apperrors"
)

// User is a registered account that can list items and request bookings.
type User struct {
	id    uuid.UUID
	name  string
	email string

	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user with validated fields.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("user name is required")
	}
	if email == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// ApplyUpdate patches the fields a nil pointer leaves untouched.
func (u *User) ApplyUpdate(name, email *string) {
	if name != nil {
		u.name = *name
	}
	if email != nil {
		u.email = *email
	}
	u.updatedAt = time.Now().UTC()
}
