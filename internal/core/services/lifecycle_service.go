package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
)

type lifecycleService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewLifecycleService creates the admin approval/rejection service.
func NewLifecycleService(userRepo portsrepo.UserRepositoryFacade) portssvc.LifecycleSvcFacade {
	return &lifecycleService{userRepo: userRepo}
}

func requireAdmin(actor *domain.User) error {
	if actor == nil || actor.Role.Name != domain.RoleAdmin {
		return fmt.Errorf("admin role required: %w", apperrors.ErrForbidden)
	}
	return nil
}

func (s *lifecycleService) Approve(ctx context.Context, actor *domain.User, targetID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	target, err := s.userRepo.FindUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role.Name != domain.RoleDataCollector {
		return apperrors.NewFieldErrors("id", "only data collector accounts can be approved")
	}

	if err := s.userRepo.SetApproval(ctx, targetID, true, actor.UserID, time.Now()); err != nil {
		return fmt.Errorf("failed to approve user %d: %w", targetID, err)
	}
	return nil
}

func (s *lifecycleService) Reject(ctx context.Context, actor *domain.User, targetID int64, contact string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if contact == "" {
		return apperrors.NewFieldErrors("contact", "contact is required")
	}

	target, err := s.userRepo.FindUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if !target.MatchesContact(contact) {
		return apperrors.NewFieldErrors("contact", "contact does not match the user")
	}

	if err := s.userRepo.SetApproval(ctx, targetID, false, actor.UserID, time.Now()); err != nil {
		return fmt.Errorf("failed to reject user %d: %w", targetID, err)
	}
	return nil
}

func (s *lifecycleService) TogglePostponed(ctx context.Context, actor *domain.User, targetID int64, contact string, identity dto.TargetIdentity) (bool, error) {
	if err := requireAdmin(actor); err != nil {
		return false, err
	}

	target, err := s.resolveTarget(ctx, targetID, contact, identity)
	if err != nil {
		return false, err
	}

	// Preconditions are re-read with the target, so a concurrent admin
	// action surfaces as a conflict rather than a stale write.
	switch {
	case target.Rejected:
		return false, fmt.Errorf("cannot postpone a rejected user: %w", apperrors.ErrConflict)
	case !target.Approved:
		return false, fmt.Errorf("user is not approved yet: %w", apperrors.ErrConflict)
	case !target.HasVerifiedChannel():
		return false, fmt.Errorf("user has no verified contact channel: %w", apperrors.ErrConflict)
	case target.PaymentStatus != domain.PaymentPaid:
		return false, fmt.Errorf("user has not completed payment: %w", apperrors.ErrConflict)
	}

	next := !target.Postponed
	if err := s.userRepo.SetPostponed(ctx, targetID, next); err != nil {
		return false, fmt.Errorf("failed to set postponed on user %d: %w", targetID, err)
	}
	return next, nil
}

func (s *lifecycleService) Delete(ctx context.Context, actor *domain.User, targetID int64, contact string, identity dto.TargetIdentity) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	target, err := s.resolveTarget(ctx, targetID, contact, identity)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, target.UserID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", target.UserID, err)
	}
	return nil
}

// resolveTarget fetches the target and enforces the contact match. For a
// sub-account the quoted contact belongs to the parent, so the match runs
// against the parent's record when the target has no direct match.
func (s *lifecycleService) resolveTarget(ctx context.Context, targetID int64, contact string, identity dto.TargetIdentity) (*domain.User, error) {
	if contact == "" {
		return nil, apperrors.NewFieldErrors("contact", "contact is required")
	}

	target, err := s.userRepo.FindUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if target.MatchesContact(contact) {
		return target, nil
	}

	if identity == dto.IdentitySubUser && target.ParentID != nil {
		parent, err := s.userRepo.FindUserByID(ctx, *target.ParentID)
		if err == nil && parent.MatchesContact(contact) {
			return target, nil
		}
	}
	return nil, apperrors.NewFieldErrors("contact", "contact does not match the user")
}
