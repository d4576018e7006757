package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// UserService orchestrates validation and persistence for users.
type UserService struct {
	users  persistence.UserRepository
	logger *slog.Logger
}

// NewUserService wires dependencies for the user service.
func NewUserService(users persistence.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: defaultLogger(logger)}
}

// RegisterUser validates input and persists a new user. Registering an
// email that already exists returns the existing user instead of failing,
// so callers can treat registration as idempotent.
func (s *UserService) RegisterUser(ctx context.Context, name, email string) (persistence.User, error) {
	if s == nil || s.users == nil {
		return persistence.User{}, fmt.Errorf("user repository not configured")
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.add("email", "email is invalid")
	}
	if vErr.HasErrors() {
		return persistence.User{}, vErr
	}

	logger := serviceLogger(ctx, s.logger, "user", "register")

	user, err := s.users.CreateUser(ctx, name, email)
	if err != nil {
		logger.ErrorContext(ctx, "user registration failed", "error", err, "error_kind", ErrorKind(err))
		return persistence.User{}, err
	}

	logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return persistence.User{}, mapNotFound(err)
	}
	return user, nil
}

// GetUserByEmail returns the user registered under the given address.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return persistence.User{}, mapNotFound(err)
	}
	return user, nil
}

// SearchUsers returns users whose name contains the given substring,
// case-insensitively. An empty query matches every user.
func (s *UserService) SearchUsers(ctx context.Context, name string) ([]persistence.User, error) {
	return s.users.SearchUsersByName(ctx, strings.TrimSpace(name))
}

// ListUsers returns all registered users.
func (s *UserService) ListUsers(ctx context.Context) ([]persistence.User, error) {
	return s.users.ListUsers(ctx)
}
