package service

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

// UserService defines admin-only user management operations.
type UserService interface {
	// List returns all accounts, newest first.
	List(ctx context.Context) ([]model.User, error)
	// Get loads a single account.
	Get(ctx context.Context, id int64) (*model.User, error)
	// SetRole changes an account's role.
	SetRole(ctx context.Context, id int64, role string) (*model.User, error)
	// Delete removes an account. Admins cannot delete themselves.
	Delete(ctx context.Context, callerID, id int64) error
}

type UserServiceImpl struct {
	users repository.UserRepository
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

// List returns all accounts.
func (s *UserServiceImpl) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Get loads a single account.
func (s *UserServiceImpl) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// SetRole changes an account's role after validating it.
func (s *UserServiceImpl) SetRole(ctx context.Context, id int64, role string) (*model.User, error) {
	if role == "" {
		return nil, errs.Validation("role required")
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, errs.Validation("invalid role '%s'", role)
	}
	return s.users.SetRole(ctx, id, role)
}

// Delete removes an account, refusing self-deletion.
func (s *UserServiceImpl) Delete(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return errs.Validation("cannot delete yourself")
	}
	return s.users.Delete(ctx, id)
}
