package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/utils"
)

type authService struct {
	userRepo   portsrepo.UserReader
	sessionSvc portssvc.SessionIssuerSvc
}

// NewAuthService creates the login service on top of the user store and the
// session issuer.
func NewAuthService(userRepo portsrepo.UserReader, sessionSvc portssvc.SessionIssuerSvc) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, sessionSvc: sessionSvc}
}

func (s *authService) Login(ctx context.Context, p portssvc.LoginParams) (*domain.User, *domain.Session, error) {
	if p.VisitorID == "" {
		return nil, nil, apperrors.NewFieldErrors("visitor_id", "visitor identifier is required")
	}

	user, err := s.resolveCandidate(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	if !utils.CheckPasswordHash(p.Password, user.PasswordHash) {
		return nil, nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	if !user.ChannelVerified(p.Channel) {
		return nil, nil, fmt.Errorf("%s is not verified: %w", p.Channel, apperrors.ErrUnauthorized)
	}

	session, err := s.sessionSvc.Issue(ctx, user, p.VisitorID, p.Remember, p.UserAgent, p.IP)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// resolveCandidate maps the login kind to exactly one account. For the public
// kind the contact doubles as a parent contact: when no public account holds
// it, or the public account's password does not match, all sub-accounts under
// that contact are candidates and the submitted password picks the one it
// belongs to.
func (s *authService) resolveCandidate(ctx context.Context, p portssvc.LoginParams) (*domain.User, error) {
	switch p.Kind {
	case dto.LoginPublic:
		user, err := s.userRepo.FindUserByContactAndRole(ctx, p.Contact, domain.RolePublic)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			return s.resolveSubUser(ctx, p.Contact, p.Password)
		}
		if utils.CheckPasswordHash(p.Password, user.PasswordHash) {
			return user, nil
		}
		// The contact belongs to a public account but the password does
		// not; a dependent may be logging in through the parent contact.
		sub, subErr := s.resolveSubUser(ctx, p.Contact, p.Password)
		if subErr == nil {
			return sub, nil
		}
		if errors.Is(subErr, apperrors.ErrNotFound) {
			// No dependents either; report the bad password on the
			// public account, not a missing one.
			return user, nil
		}
		return nil, subErr
	case dto.LoginDataCollector:
		return s.userRepo.FindUserByContactAndRole(ctx, p.Contact, domain.RoleDataCollector)
	case dto.LoginAdmin:
		return s.userRepo.FindUserByContactAndRole(ctx, p.Contact, domain.RoleAdmin)
	default:
		return nil, apperrors.NewFieldErrors("account_type", "unknown account type")
	}
}

func (s *authService) resolveSubUser(ctx context.Context, contact, password string) (*domain.User, error) {
	candidates, err := s.userRepo.FindSubUsersByParentContact(ctx, contact)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if utils.CheckPasswordHash(password, candidates[i].PasswordHash) {
			return &candidates[i], nil
		}
	}
	if len(candidates) > 0 {
		// Sub-accounts exist under this contact but none own the
		// submitted password.
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	return nil, fmt.Errorf("no account found for contact: %w", apperrors.ErrNotFound)
}
