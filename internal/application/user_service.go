package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/middleware"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// UserRepository interface for user role persistence
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
}

// UserApplicationService manages explicit role bindings. Roles are looked up
// here, never inferred from the email address itself.
type UserApplicationService struct {
	repo   UserRepository
	logger *logging.Logger
}

// NewUserApplicationService creates a new UserApplicationService
func NewUserApplicationService(repo UserRepository, logger *logging.Logger) *UserApplicationService {
	return &UserApplicationService{
		repo:   repo,
		logger: logger,
	}
}

// UpsertUser creates or updates a user's role binding
func (s *UserApplicationService) UpsertUser(ctx context.Context, cmd UpsertUserCommand) (*UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get user", "email", email)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		user, err = domain.NewUser(email, domain.UserRole(cmd.Role))
		if err != nil {
			return nil, errors.ErrValidation(err.Error())
		}
	} else if err := user.SetRole(domain.UserRole(cmd.Role)); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.repo.Save(ctx, user); err != nil {
		s.logger.WithError(err).Error("Failed to save user", "email", email)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Audit(ctx, "role_assigned", "user", user.Email, "", map[string]interface{}{
		"role": string(user.Role),
	})

	return ToUserDTO(user), nil
}

// GetUser retrieves a user by email
func (s *UserApplicationService) GetUser(ctx context.Context, query GetUserQuery) (*UserDTO, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(query.Email)))
	if err != nil {
		s.logger.WithError(err).Error("Failed to get user", "email", query.Email)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, errors.ErrNotFound("user")
	}

	return ToUserDTO(user), nil
}

// ListUsers retrieves all user role bindings
func (s *UserApplicationService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		if dto := ToUserDTO(user); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos, nil
}

// ResolveRole implements middleware.RoleResolver. Unknown users resolve to
// the least privileged role.
func (s *UserApplicationService) ResolveRole(ctx context.Context, email string) (middleware.Role, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return middleware.RoleUser, fmt.Errorf("failed to resolve role: %w", err)
	}

	if user == nil || !user.IsAdmin() {
		return middleware.RoleUser, nil
	}
	return middleware.RoleAdmin, nil
}
