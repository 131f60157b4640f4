package services

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	"github.com/nagorik/citizen-registry/internal/dto"
)

// LoginParams carries a parsed, validated login attempt into the service
// layer. Kind has already been through dto.ParseLoginKind.
type LoginParams struct {
	Kind      dto.LoginKind
	Contact   string
	Channel   domain.ContactChannel
	Password  string
	Remember  bool
	VisitorID string
	UserAgent string
	IP        string
}

// AuthSvcFacade performs credential checks and session issuance for login.
type AuthSvcFacade interface {
	// Login resolves the candidate account for the login kind, verifies the
	// password and the used channel's verification state, and issues a
	// session. Error taxonomy: ErrNotFound (no candidate), ErrUnauthorized
	// (bad password or unverified channel), ErrValidation (missing visitor).
	Login(ctx context.Context, p LoginParams) (*domain.User, *domain.Session, error)
}
