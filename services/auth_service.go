// Package services implements the application core: account
// provisioning, login, and the issue resolution workflow. Services take
// their stores as constructor parameters and the acting user as an
// explicit argument on every authorization-sensitive call.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lavanyasahu/CitiFix/common"
	"github.com/lavanyasahu/CitiFix/models"
	"github.com/lavanyasahu/CitiFix/store"
	authUtils "github.com/lavanyasahu/CitiFix/utils"
)

// Actor identifies the user a call is performed on behalf of.
type Actor struct {
	ID   primitive.ObjectID
	Role models.Role
}

type AuthService struct {
	users store.UserStore
}

func NewAuthService(users store.UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterUser validates input, hashes the password, and inserts the
// account. Duplicate username or email fails with ErrDuplicateIdentity.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, password string, phone *string, role models.Role) (primitive.ObjectID, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if !authUtils.ValidEmail(email) {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	if len(password) < 6 {
		return primitive.NilObjectID, fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}
	if !role.Valid() {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}
	if phone != nil && *phone == "" {
		phone = nil
	}
	if phone != nil && !authUtils.ValidPhone(*phone) {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid phone number", common.ErrValidation)
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.CreateUser(ctx, user)
}

// RegisterCitizen is the public self-registration entry point.
func (s *AuthService) RegisterCitizen(ctx context.Context, username, email, password string, phone *string) (primitive.ObjectID, error) {
	return s.RegisterUser(ctx, username, email, password, phone, models.RoleCitizen)
}

// CreateAuthority provisions an authority account. Only an admin may
// call it.
func (s *AuthService) CreateAuthority(ctx context.Context, actor Actor, username, email, password string, phone *string) (primitive.ObjectID, error) {
	if actor.Role != models.RoleAdmin {
		return primitive.NilObjectID, fmt.Errorf("%w: only admins can create authority accounts", common.ErrForbidden)
	}
	return s.RegisterUser(ctx, username, email, password, phone, models.RoleAuthority)
}

// CreateAdmin provisions an admin account. It is called once at startup
// to seed the bootstrap admin and is not exposed over HTTP.
func (s *AuthService) CreateAdmin(ctx context.Context, username, email, password string, phone *string) (primitive.ObjectID, error) {
	return s.RegisterUser(ctx, username, email, password, phone, models.RoleAdmin)
}

// Login authenticates by username and password. Unknown username and
// wrong password both fail with ErrInvalidCredentials. The returned
// profile never carries the password hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !user.ComparePassword(password) {
		return nil, common.ErrInvalidCredentials
	}
	user.PasswordHash = ""
	return user, nil
}

// LoginCitizen rejects a structurally valid login when the account is
// not a citizen, with the same error as a bad password.
func (s *AuthService) LoginCitizen(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleCitizen {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// LoginAuthority accepts authority and admin accounts.
func (s *AuthService) LoginAuthority(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !user.Role.CanSign() {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser fetches a profile by id, without the password hash.
func (s *AuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ListUsers returns every account for the admin panel.
func (s *AuthService) ListUsers(ctx context.Context, actor Actor) ([]models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can list users", common.ErrForbidden)
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
