package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"
	"github.com/officio/business_mgmt_app/internal/dto"
	"github.com/officio/business_mgmt_app/internal/middleware"
	"github.com/officio/business_mgmt_app/internal/utils"
)

// ErrInvalidCredentials is returned when a login attempt fails. It is
// deliberately indistinguishable between unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// userService manages application users and credential verification.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find user by ID", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return users, nil
}

// CreateUser creates a new user. Only admins may create users.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeAdmin(ctx, creatorUserID); err != nil {
		logger.Warn("Authorization failed for CreateUser", slog.String("user_id", creatorUserID))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleSeller
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID: uuid.NewString(),
		Name:   req.Name,
		Email:  req.Email,
		Role:   role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user, passwordHash); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate email on user creation", slog.String("email", req.Email))
			return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, req.Email)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// UpdateUser updates an existing user. Role changes require admin rights;
// users may rename themselves.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Role != nil || userID != requestingUserID {
		if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
			logger.Warn("Authorization failed for UpdateUser", slog.String("user_id", requestingUserID), slog.String("target_user_id", userID))
			return nil, err
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	updated := false
	if req.Name != nil {
		user.Name = *req.Name
		updated = true
	}
	if req.Role != nil {
		user.Role = *req.Role
		updated = true
	}

	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("User updated", slog.String("target_user_id", userID))
	return user, nil
}

// DeleteUser marks a user as deleted (soft delete). Admin only.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for DeleteUser", slog.String("user_id", requestingUserID), slog.String("target_user_id", userID))
		return err
	}

	now := time.Now().UTC()
	if err := s.userRepo.MarkUserDeleted(ctx, userID, now, requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to mark user deleted", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		}
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}

	logger.Info("User deleted", slog.String("target_user_id", userID))
	return nil
}

// AuthenticateUser verifies email/password credentials and returns the user.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, passwordHash, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to fetch user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.DeletedAt != nil {
		logger.Warn("Login attempt for deleted user", slog.String("target_user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, passwordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("target_user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// AuthorizeAdmin returns apperrors.ErrForbidden unless the user holds the
// admin role. The role is read from storage, not from the token, so
// demotions take effect immediately.
func (s *userService) AuthorizeAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to fetch user for authorization: %w", err)
	}
	if !user.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}
