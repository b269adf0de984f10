package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/identity"
	"github.com/propman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages back-office user accounts
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser creates a new back-office account
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*identity.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewUser(input.Username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	return user, nil
}

// GetUser returns one user by id
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("User ID is required")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

// ListUsers returns all back-office accounts
func (s *UserService) ListUsers(ctx context.Context, filter shared.Filter) ([]*identity.User, int64, error) {
	return s.userRepo.FindAll(ctx, filter)
}

// ResetPassword sets a new password without checking the old one (admin action)
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user password reset", zap.String("user_id", id.String()))
	return nil
}

// DeactivateUser deactivates an account
func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user deactivated", zap.String("user_id", id.String()))
	return nil
}

// UnlockUser clears a lockout before its expiry
func (s *UserService) UnlockUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Unlock(); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user unlocked", zap.String("user_id", id.String()))
	return nil
}
