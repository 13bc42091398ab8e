package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

type AuthService struct {
	users port.UserRepository
}

func NewAuthService(users port.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a customer account and returns its id.
func (s *AuthService) Register(ctx context.Context, name, credential string, loc domain.Coordinate) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" || credential == "" {
		return 0, fmt.Errorf("%w: name and password are required", ErrValidation)
	}
	if !loc.Valid() {
		return 0, fmt.Errorf("%w: latitude and longitude must be within [0, 100]", ErrValidation)
	}

	id, err := s.users.CreateUser(ctx, domain.User{
		Name:       name,
		Credential: credential,
		Location:   loc,
		Role:       domain.RoleCustomer,
	})
	if errors.Is(err, port.ErrAlreadyExists) {
		return 0, fmt.Errorf("%w: user %q already exists", ErrValidation, name)
	}
	if err != nil {
		return 0, dataAccess("create user", err)
	}
	return id, nil
}

// Login returns the session for an exact name and credential match. A
// failed match is reported by ok=false, not by an error.
func (s *AuthService) Login(ctx context.Context, name, credential string) (domain.Session, bool, error) {
	user, err := s.users.FindUserByCredentials(ctx, name, credential)
	if errors.Is(err, domain.ErrUnknownRole) {
		return domain.Session{}, false, fmt.Errorf("%w: %w", ErrDataIntegrity, err)
	}
	if err != nil {
		return domain.Session{}, false, dataAccess("find user", err)
	}
	if user == nil {
		return domain.Session{}, false, nil
	}
	if user.Role == domain.RoleNone {
		return domain.Session{}, false, fmt.Errorf("%w: user %d has no recognized role", ErrDataIntegrity, user.ID)
	}

	return domain.Session{UserID: user.ID, Name: user.Name, Role: user.Role}, true, nil
}

// Logout drops all access.
func (s *AuthService) Logout(domain.Session) domain.Session {
	return domain.Session{}
}
