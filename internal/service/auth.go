// Package service contains application services behind the HTTP layer.
package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/slidesmith/slidesmith/internal/crypto"
	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

// accessTTL is the lifetime of issued access tokens.
const accessTTL = 7 * 24 * time.Hour

const maxNameLength = 32

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// ProfileUpdate carries the fields of a self-service profile change.
// A password change requires the current password.
type ProfileUpdate struct {
	Name            string
	Email           string
	CurrentPassword string
	Password        string
}

// AuthService defines registration, login and self-service profile operations.
type AuthService interface {
	// Register creates a new user account with the "user" role.
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	// Login authenticates a user and issues a signed access token.
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	// Me loads the calling user's account.
	Me(ctx context.Context, userID int64) (*model.User, error)
	// UpdateMe applies a partial profile update.
	UpdateMe(ctx context.Context, userID int64, upd ProfileUpdate) (*model.User, error)
}

type AuthServiceImpl struct {
	users   repository.UserRepository
	signKey []byte
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey}
}

// Register validates inputs and creates a user. Registration always assigns
// the "user" role regardless of what the client sent.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, errs.Validation("Missing inputs")
	}
	if !emailRe.MatchString(email) {
		return nil, errs.Validation("invalid email format")
	}
	if len([]rune(name)) > maxNameLength {
		return nil, errs.Validation("name must be %d characters or fewer", maxNameLength)
	}
	if !pkgcrypto.CheckPasswordPolicy(password) {
		return nil, errs.Validation("password must contain at least two of: letters, digits, symbols, and no quote characters")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, errs.Validation("email is already in use")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByName(ctx, name); err == nil {
		return nil, errs.Validation("name is already taken")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{Email: email, Name: name, PasswordHash: hash, Role: model.RoleUser}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.Validation("email is already in use")
		}
		return nil, err
	}
	return u, nil
}

// Login authenticates by email and password. Malformed credentials are
// rejected with the same generic error as wrong ones, before the store is
// ever consulted, so responses never reveal whether an account exists.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, errs.Validation("Missing inputs")
	}
	if !emailRe.MatchString(email) || !pkgcrypto.CheckPasswordPolicy(password) {
		return "", nil, errs.ErrUnauthorized
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", nil, errs.ErrUnauthorized
		}
		return "", nil, err
	}
	if !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		return "", nil, errs.ErrUnauthorized
	}
	token, err := s.issueAccessToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// issueAccessToken creates a signed HS256 JWT for the given user.
func (s *AuthServiceImpl) issueAccessToken(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.signKey)
}

// Me loads the calling user's account.
func (s *AuthServiceImpl) Me(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateMe applies name/email changes and, when a new password is supplied,
// verifies the current one before rehashing.
func (s *AuthServiceImpl) UpdateMe(ctx context.Context, userID int64, upd ProfileUpdate) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Email != "" && upd.Email != u.Email {
		if !emailRe.MatchString(upd.Email) {
			return nil, errs.Validation("invalid email format")
		}
		if _, err := s.users.GetByEmail(ctx, upd.Email); err == nil {
			return nil, errs.Validation("email is already in use")
		} else if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		u.Email = upd.Email
	}
	if upd.Name != "" {
		if len([]rune(upd.Name)) > maxNameLength {
			return nil, errs.Validation("name must be %d characters or fewer", maxNameLength)
		}
		u.Name = upd.Name
	}
	if upd.Password != "" {
		if upd.CurrentPassword == "" {
			return nil, errs.Validation("current password required")
		}
		if !pkgcrypto.VerifyPassword(upd.CurrentPassword, u.PasswordHash) {
			return nil, errs.ErrUnauthorized
		}
		if !pkgcrypto.CheckPasswordPolicy(upd.Password) {
			return nil, errs.Validation("password must contain at least two of: letters, digits, symbols, and no quote characters")
		}
		hash, err := pkgcrypto.HashPassword(upd.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.Validation("email is already in use")
		}
		return nil, err
	}
	return u, nil
}
