package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/platform/config"
	"github.com/nagorik/citizen-registry/internal/utils"
)

// tokenBytes is the entropy of each issued token; the wire form is its hex
// encoding, so tokens are 64 characters long.
const tokenBytes = 32

type sessionService struct {
	sessionRepo      portsrepo.SessionRepositoryFacade
	userRepo         portsrepo.UserReader
	accessDuration   time.Duration
	refreshDuration  time.Duration
	rememberDuration time.Duration
}

// NewSessionService creates the session issuer/validator backed by the session store.
func NewSessionService(sessionRepo portsrepo.SessionRepositoryFacade, userRepo portsrepo.UserReader, cfg *config.Config) portssvc.SessionSvcFacade {
	return &sessionService{
		sessionRepo:      sessionRepo,
		userRepo:         userRepo,
		accessDuration:   cfg.AccessTokenDuration,
		refreshDuration:  cfg.RefreshTokenDuration,
		rememberDuration: cfg.RememberRefreshTokenDuration,
	}
}

func (s *sessionService) newTokenPair() (string, string, error) {
	access, err := utils.GenerateSecureRandomString(tokenBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateSecureRandomString(tokenBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *sessionService) refreshLifetime(remember bool) time.Duration {
	if remember {
		return s.rememberDuration
	}
	return s.refreshDuration
}

func (s *sessionService) Issue(ctx context.Context, user *domain.User, visitorID string, remember bool, userAgent, ip string) (*domain.Session, error) {
	if visitorID == "" {
		return nil, apperrors.NewFieldErrors("visitor_id", "visitor identifier is required")
	}

	access, refresh, err := s.newTokenPair()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		UserID:              user.UserID,
		VisitorID:           visitorID,
		AccessToken:         access,
		RefreshToken:        refresh,
		AccessTokenExpires:  now.Add(s.accessDuration),
		RefreshTokenExpires: now.Add(s.refreshLifetime(remember)),
		Remember:            remember,
		UserAgent:           optional(userAgent),
		IP:                  optional(ip),
		IsActive:            true,
	}

	if err := s.sessionRepo.UpsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// RotateAccessToken replaces both tokens of an existing session in place. The
// refresh window restarts, honoring the remember flag the session was issued with.
func (s *sessionService) RotateAccessToken(ctx context.Context, session *domain.Session) error {
	access, refresh, err := s.newTokenPair()
	if err != nil {
		return err
	}

	now := time.Now()
	session.AccessToken = access
	session.RefreshToken = refresh
	session.AccessTokenExpires = now.Add(s.accessDuration)
	session.RefreshTokenExpires = now.Add(s.refreshLifetime(session.Remember))
	session.IsActive = true

	if err := s.sessionRepo.UpdateSessionTokens(ctx, session); err != nil {
		return fmt.Errorf("failed to rotate session tokens: %w", err)
	}
	return nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func (s *sessionService) Validate(ctx context.Context, accessToken, refreshToken, visitorID string) (*domain.User, *domain.Session, domain.SessionOutcome, error) {
	if visitorID == "" {
		return nil, nil, domain.OutcomeRejected, nil
	}
	now := time.Now()

	if accessToken != "" {
		session, err := s.sessionRepo.FindSessionByAccessToken(ctx, accessToken, visitorID)
		switch {
		case err == nil:
			if session.AccessTokenValid(now) {
				user, err := s.userRepo.FindUserByID(ctx, session.UserID)
				if err != nil {
					if errors.Is(err, apperrors.ErrNotFound) {
						return nil, nil, domain.OutcomeRejected, nil
					}
					return nil, nil, domain.OutcomeRejected, err
				}
				return user, session, domain.OutcomeFresh, nil
			}
			// Access token expired; fall through to the refresh path.
		case errors.Is(err, apperrors.ErrNotFound):
			// Unknown access token or fingerprint mismatch; the refresh
			// token may still identify the session.
		default:
			return nil, nil, domain.OutcomeRejected, err
		}
	}

	if refreshToken == "" {
		return nil, nil, domain.OutcomeRejected, nil
	}

	session, err := s.sessionRepo.FindSessionByRefreshToken(ctx, refreshToken, visitorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, domain.OutcomeRejected, nil
		}
		return nil, nil, domain.OutcomeRejected, err
	}
	if !session.RefreshTokenValid(now) {
		return nil, nil, domain.OutcomeRejected, nil
	}

	user, err := s.userRepo.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, domain.OutcomeRejected, nil
		}
		return nil, nil, domain.OutcomeRejected, err
	}

	if err := s.RotateAccessToken(ctx, session); err != nil {
		return nil, nil, domain.OutcomeRejected, err
	}
	return user, session, domain.OutcomeRotated, nil
}

func (s *sessionService) Invalidate(ctx context.Context, session *domain.Session) error {
	if err := s.sessionRepo.ExpireSession(ctx, session.SessionID, time.Now()); err != nil {
		return fmt.Errorf("failed to expire session: %w", err)
	}
	return nil
}
