package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
)

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	TeamName  string
}

type UserService struct {
	userRepo user.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewUserService(userRepo user.Repository, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}

	return &UserService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) GetProfile(ctx context.Context, requester user.Principal) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetProfile")
	defer span.End()

	account, exists, err := s.userRepo.GetByID(ctx, requester.UserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, requester.UserID)
	}

	account.PasswordHash = ""
	return account, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, requester user.Principal, input UpdateProfileInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdateProfile")
	defer span.End()

	account, exists, err := s.userRepo.GetByID(ctx, requester.UserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, requester.UserID)
	}

	if v := strings.TrimSpace(input.FirstName); v != "" {
		account.FirstName = v
	}
	if v := strings.TrimSpace(input.LastName); v != "" {
		account.LastName = v
	}
	if v := strings.TrimSpace(input.TeamName); v != "" {
		account.TeamName = v
	}
	account.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, account); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "user profile updated", "user_id", account.ID)

	account.PasswordHash = ""
	return account, nil
}

func (s *UserService) DeleteAccount(ctx context.Context, requester user.Principal, targetUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.DeleteAccount")
	defer span.End()

	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		targetUserID = requester.UserID
	}
	if targetUserID != requester.UserID && !requester.IsAdmin() {
		return fmt.Errorf("%w: cannot delete another user's account", ErrForbidden)
	}

	if err := s.userRepo.Delete(ctx, targetUserID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user account deleted", "user_id", targetUserID)
	return nil
}
