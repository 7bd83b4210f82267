package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/identity"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/auth"
)

// UserService handles profile and admin user management
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, blacklist auth.TokenBlacklist, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		logger:    logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile updates the caller's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.AvatarURL != nil {
		if err := user.SetAvatarURL(*req.AvatarURL); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List returns users matching the filter (admin)
func (s *UserService) List(ctx context.Context, req ListUsersRequest) (*shared.Paginated[UserResponse], error) {
	filter := identity.UserFilter{
		Filter:  shared.DefaultFilter(),
		Keyword: req.Keyword,
	}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Role != "" {
		role := identity.UserRole(req.Role)
		filter.Role = &role
	}
	if req.Status != "" {
		status := identity.UserStatus(req.Status)
		filter.Status = &status
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Lock locks a user account and revokes their sessions (admin)
func (s *UserService) Lock(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return shared.NewDomainError("FORBIDDEN", "Admin accounts cannot be locked")
	}

	if err := user.Lock(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Outstanding tokens die with the account
	if err := s.blacklist.RevokeAllForUser(ctx, userID.String(), identity.LockoutDuration); err != nil {
		s.logger.Error("Failed to revoke sessions for locked user", zap.Error(err))
	}

	s.logger.Info("User locked by admin", zap.String("user_id", userID.String()))
	return nil
}

// Unlock unlocks a user account (admin)
func (s *UserService) Unlock(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Unlock(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// Activate reactivates a deactivated user account (admin)
func (s *UserService) Activate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Activate(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// Deactivate deactivates a user account (admin or self)
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.blacklist.RevokeAllForUser(ctx, userID.String(), identity.LockoutDuration); err != nil {
		s.logger.Error("Failed to revoke sessions for deactivated user", zap.Error(err))
	}
	return nil
}
