package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
)

type PgxSessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *PgxSessionRepository {
	return &PgxSessionRepository{db: db}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

const sessionColumns = `
	id, user_id, visitor_id, access_token, refresh_token,
	access_token_expires, refresh_token_expires,
	remember, user_agent, ip, is_active, created_at, updated_at`

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.SessionID, &s.UserID, &s.VisitorID, &s.AccessToken, &s.RefreshToken,
		&s.AccessTokenExpires, &s.RefreshTokenExpires,
		&s.Remember, &s.UserAgent, &s.IP, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgxSessionRepository) FindSessionByAccessToken(ctx context.Context, accessToken, visitorID string) (*domain.Session, error) {
	query := `SELECT` + sessionColumns + ` FROM sessions WHERE access_token = $1 AND visitor_id = $2;`
	session, err := scanSession(r.db.QueryRow(ctx, query, accessToken, visitorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by access token: %w", err)
	}
	return session, nil
}

func (r *PgxSessionRepository) FindSessionByRefreshToken(ctx context.Context, refreshToken, visitorID string) (*domain.Session, error) {
	query := `SELECT` + sessionColumns + ` FROM sessions WHERE refresh_token = $1 AND visitor_id = $2;`
	session, err := scanSession(r.db.QueryRow(ctx, query, refreshToken, visitorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by refresh token: %w", err)
	}
	return session, nil
}

// UpsertSession relies on the (user_id, visitor_id) unique constraint:
// a concurrent login from the same device resolves to an in-place update
// of the existing row instead of a duplicate session.
func (r *PgxSessionRepository) UpsertSession(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (
			user_id, visitor_id, access_token, refresh_token,
			access_token_expires, refresh_token_expires,
			remember, user_agent, ip, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		ON CONFLICT (user_id, visitor_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			access_token_expires = EXCLUDED.access_token_expires,
			refresh_token_expires = EXCLUDED.refresh_token_expires,
			remember = EXCLUDED.remember,
			user_agent = EXCLUDED.user_agent,
			ip = EXCLUDED.ip,
			is_active = TRUE,
			updated_at = now()
		RETURNING id, is_active, created_at, updated_at;`
	err := r.db.QueryRow(ctx, query,
		session.UserID,
		session.VisitorID,
		session.AccessToken,
		session.RefreshToken,
		session.AccessTokenExpires,
		session.RefreshTokenExpires,
		session.Remember,
		session.UserAgent,
		session.IP,
	).Scan(&session.SessionID, &session.IsActive, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) UpdateSessionTokens(ctx context.Context, session *domain.Session) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET access_token = $1, refresh_token = $2,
		    access_token_expires = $3, refresh_token_expires = $4,
		    updated_at = now()
		WHERE id = $5;`,
		session.AccessToken,
		session.RefreshToken,
		session.AccessTokenExpires,
		session.RefreshTokenExpires,
		session.SessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session tokens: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ExpireSession soft-expires the row; sessions are never deleted on logout
// so they remain auditable.
func (r *PgxSessionRepository) ExpireSession(ctx context.Context, sessionID int64, now time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET access_token_expires = $1, refresh_token_expires = $1, is_active = FALSE, updated_at = now()
		WHERE id = $2;`, now, sessionID)
	if err != nil {
		return fmt.Errorf("failed to expire session %d: %w", sessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
