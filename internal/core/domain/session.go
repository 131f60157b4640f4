package domain

import "time"

// Session pairs an access token and refresh token to an account on one
// device. At most one session exists per (user, visitor) pair; re-login
// from the same device rotates the existing record in place. Logout
// soft-expires the row rather than deleting it so sessions stay auditable.
type Session struct {
	SessionID int64  `json:"sessionID"`
	UserID    int64  `json:"userID"`
	VisitorID string `json:"visitorID"`

	AccessToken         string    `json:"-"`
	RefreshToken        string    `json:"-"`
	AccessTokenExpires  time.Time `json:"accessTokenExpires"`
	RefreshTokenExpires time.Time `json:"refreshTokenExpires"`

	Remember  bool    `json:"remember"`
	UserAgent *string `json:"userAgent,omitempty"`
	IP        *string `json:"ip,omitempty"`
	IsActive  bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccessTokenValid reports whether the access token is still live at now.
func (s *Session) AccessTokenValid(now time.Time) bool {
	return now.Before(s.AccessTokenExpires)
}

// RefreshTokenValid reports whether the refresh token is still live at now.
func (s *Session) RefreshTokenValid(now time.Time) bool {
	return now.Before(s.RefreshTokenExpires)
}

// SessionOutcome classifies the result of validating a token pair.
type SessionOutcome string

const (
	// OutcomeFresh: the access token is currently valid; no rotation happened.
	OutcomeFresh SessionOutcome = "authenticated-fresh"
	// OutcomeRotated: the access token was expired or absent but the refresh
	// token matched; tokens were rotated and the caller must propagate the
	// new cookies.
	OutcomeRotated SessionOutcome = "authenticated-rotated"
	// OutcomeRejected: no usable refresh token. The caller must clear both
	// token cookies.
	OutcomeRejected SessionOutcome = "rejected"
)
