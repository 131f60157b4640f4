package dto

import (
	"fmt"

	"github.com/nagorik/citizen-registry/internal/core/domain"
)

// LoginKind is the tagged discriminant for the login lookup path. Parsing
// happens once at the handler boundary; services switch exhaustively on the
// typed value instead of matching strings.
type LoginKind string

const (
	LoginPublic        LoginKind = "public"
	LoginDataCollector LoginKind = "dataCollector"
	LoginAdmin         LoginKind = "admin"
)

// ParseLoginKind validates an account_type discriminant from the wire.
func ParseLoginKind(s string) (LoginKind, error) {
	switch LoginKind(s) {
	case LoginPublic, LoginDataCollector, LoginAdmin:
		return LoginKind(s), nil
	default:
		return "", fmt.Errorf("invalid account_type %q", s)
	}
}

// LoginRequest is the /login payload. Exactly one of phone or email must be
// supplied; the chosen channel must already be verified for the account.
type LoginRequest struct {
	Phone       string `json:"phone" binding:"omitempty,bdphone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password" binding:"required"`
	Remember    bool   `json:"remember"`
	AccountType string `json:"account_type" binding:"required"`
}

// Contact returns the supplied contact value and its channel. Phone wins
// when both are present, mirroring how usernames are derived.
func (r LoginRequest) Contact() (string, domain.ContactChannel) {
	if r.Phone != "" {
		return r.Phone, domain.ChannelPhone
	}
	return r.Email, domain.ChannelEmail
}

// LoginResponse returns the identity and the token pair. Browser clients can
// ignore the tokens and rely on the cookies set alongside; header-based
// clients echo them back in Access-Token / Refresh-Token.
type LoginResponse struct {
	Message      string       `json:"message"`
	Data         UserResponse `json:"data"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// VerifyResponse is returned by GET /verify alongside rotated cookies.
type VerifyResponse struct {
	Message string       `json:"message"`
	Data    UserResponse `json:"data"`
}
