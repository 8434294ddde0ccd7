// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/model"
)

// UserRepository provides CRUD access for user accounts.
type UserRepository interface {
	// Create inserts a new user and fills the generated ID and timestamps.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByName loads a user by display name.
	GetByName(ctx context.Context, name string) (*model.User, error)
	// List returns all users ordered by creation time descending.
	List(ctx context.Context) ([]model.User, error)
	// Update persists email, name, password hash and avatar URL.
	Update(ctx context.Context, u *model.User) error
	// SetRole updates the role of a user.
	SetRole(ctx context.Context, id int64, role string) (*model.User, error)
	// Delete removes a user.
	Delete(ctx context.Context, id int64) error
}
