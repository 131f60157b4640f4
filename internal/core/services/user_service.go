package services

import (
	"context"
	"fmt"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the self-service account service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsersAddedBy(ctx context.Context, addByID int64, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.FindUsersByAddBy(ctx, addByID, limit, offset)
}

func (s *userService) UpdateNames(ctx context.Context, user *domain.User, req dto.UpdateUserRequest) error {
	if err := s.userRepo.UpdateNames(ctx, user.UserID, req.FirstName, req.LastName, req.NameBn); err != nil {
		return fmt.Errorf("failed to update names for user %d: %w", user.UserID, err)
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, user *domain.User, req dto.ChangePasswordRequest) error {
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return fmt.Errorf("current password is incorrect: %w", apperrors.ErrUnauthorized)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.UserID, hash); err != nil {
		return fmt.Errorf("failed to change password for user %d: %w", user.UserID, err)
	}
	user.PasswordHash = hash
	return nil
}
