package repositories

import (
	"context"
	"time"

	"github.com/nagorik/citizen-registry/internal/core/domain"
)

// SessionReader defines read operations for session data
type SessionReader interface {
	// FindSessionByAccessToken retrieves the session holding the given access
	// token bound to the given visitor id.
	FindSessionByAccessToken(ctx context.Context, accessToken, visitorID string) (*domain.Session, error)

	// FindSessionByRefreshToken retrieves the session holding the given
	// refresh token bound to the given visitor id.
	FindSessionByRefreshToken(ctx context.Context, refreshToken, visitorID string) (*domain.Session, error)
}

// SessionWriter defines write operations for session data
type SessionWriter interface {
	// UpsertSession inserts the session, or updates the existing row for the
	// same (user, visitor) pair in place. The store's uniqueness constraint
	// on the pair serializes concurrent logins from one device.
	UpsertSession(ctx context.Context, session *domain.Session) error

	// UpdateSessionTokens persists rotated tokens and expiries.
	UpdateSessionTokens(ctx context.Context, session *domain.Session) error

	// ExpireSession sets both token expiries to now. The row is kept.
	ExpireSession(ctx context.Context, sessionID int64, now time.Time) error
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
