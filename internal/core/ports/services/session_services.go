package services

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
)

// SessionIssuerSvc creates and rotates device-bound sessions.
type SessionIssuerSvc interface {
	// Issue creates a session for (user, visitorID), or rotates the existing
	// one in place, refreshing metadata and both tokens.
	Issue(ctx context.Context, user *domain.User, visitorID string, remember bool, userAgent, ip string) (*domain.Session, error)

	// RotateAccessToken regenerates both tokens and their expiries on an
	// existing session and persists them.
	RotateAccessToken(ctx context.Context, session *domain.Session) error
}

// SessionValidatorSvc resolves token pairs to accounts.
type SessionValidatorSvc interface {
	// Validate resolves an access/refresh token pair bound to a visitor id.
	// The outcome is OutcomeFresh, OutcomeRotated (tokens were rotated and
	// the returned session carries the new ones), or OutcomeRejected (user
	// and session are nil).
	Validate(ctx context.Context, accessToken, refreshToken, visitorID string) (*domain.User, *domain.Session, domain.SessionOutcome, error)
}

// SessionTerminatorSvc ends sessions without deleting them.
type SessionTerminatorSvc interface {
	// Invalidate sets both expiries to now, terminally expiring the session.
	Invalidate(ctx context.Context, session *domain.Session) error
}

// SessionSvcFacade combines all session-related service interfaces
type SessionSvcFacade interface {
	SessionIssuerSvc
	SessionValidatorSvc
	SessionTerminatorSvc
}
