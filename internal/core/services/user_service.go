package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/utils"
)

// userService implements user management, authentication and shop authorization.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	shopRepo portsrepo.ShopReader
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithUserShopReader lets the service verify that a user's shop exists.
func WithUserShopReader(repo portsrepo.ShopReader) UserServiceOption {
	return func(s *userService) {
		s.shopRepo = repo
	}
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{userRepo: userRepo}
	for _, option := range options {
		option(svc)
	}
	// The user service is its own authorizer.
	svc.Authorizer = svc
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requestingUserID string) (*domain.User, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing user", slog.String("email", email))
		return nil, err
	}

	shopID, err := s.validateRoleShop(ctx, req.Role, req.ShopID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		ShopID:       shopID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// validateRoleShop returns the shop a user of role should be bound to.
func (s *userService) validateRoleShop(ctx context.Context, role domain.UserRole, shopID string) (string, error) {
	if role == domain.RoleAdmin {
		return "", nil
	}
	if shopID == "" {
		return "", fmt.Errorf("shop is required for role %s: %w", role, apperrors.ErrValidation)
	}
	if s.shopRepo != nil {
		if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("shop %s does not exist: %w", shopID, apperrors.ErrValidation)
			}
			return "", err
		}
	}
	return shopID, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int, requestingUserID string) ([]domain.User, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	role, shopID := user.Role, user.ShopID
	if req.Role != nil {
		role = *req.Role
	}
	if req.ShopID != nil {
		shopID = *req.ShopID
	}
	if req.Role != nil || req.ShopID != nil {
		if shopID, err = s.validateRoleShop(ctx, role, shopID); err != nil {
			return nil, err
		}
		user.Role, user.ShopID = role, shopID
	}
	if req.IsActive != nil {
		if !*req.IsActive && userID == requestingUserID {
			return nil, fmt.Errorf("cannot deactivate yourself: %w", apperrors.ErrValidation)
		}
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		// A deactivated user must not refresh their session.
		if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
			s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		}
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Rejected login", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to record last login", slog.String("user_id", user.UserID))
	} else {
		user.LastLoginAt = &now
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// activeUser loads a user for an authorization decision.
func (s *userService) activeUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user is inactive: %w", apperrors.ErrForbidden)
	}
	return user, nil
}

func (s *userService) AuthorizeShopAccess(ctx context.Context, userID, shopID string) error {
	if userID == SystemUserID {
		return nil
	}
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanAccessShop(shopID) {
		s.LogWarn(ctx, "Shop access denied", slog.String("user_id", userID), slog.String("shop_id", shopID))
		return fmt.Errorf("no access to shop %s: %w", shopID, apperrors.ErrForbidden)
	}
	return nil
}

func (s *userService) AuthorizeAdmin(ctx context.Context, userID string) error {
	if userID == SystemUserID {
		return nil
	}
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleAdmin {
		return fmt.Errorf("admin role required: %w", apperrors.ErrForbidden)
	}
	return nil
}

func (s *userService) AccessibleShopIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == SystemUserID {
		return nil, nil
	}
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return nil, nil
	}
	if user.ShopID == "" {
		return []string{}, nil
	}
	return []string{user.ShopID}, nil
}
