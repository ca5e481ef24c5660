package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	apperrors "lecturetrack/internal/errors"
	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

// AuthService handles account registration, login and profile edits.
// Passwords are stored and compared verbatim.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error)
	// EnsureAdmin creates the admin account when no user has the email yet.
	EnsureAdmin(ctx context.Context, email, password string) (created bool, err error)
}

type authService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, logger zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a new user account with the "user" role.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login returns the user matching both email and password.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByCredentials(ctx, email, password)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the name and avatar that were provided.
func (s *authService) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, update)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("check admin existence: %w", err)
	}

	admin := &model.User{
		Name:     "Admin",
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
