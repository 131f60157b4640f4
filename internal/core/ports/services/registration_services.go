package services

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	"github.com/nagorik/citizen-registry/internal/dto"
)

// RegistrationSvcFacade creates accounts of the three registration kinds.
// Creation is atomic; verification issuance and notification dispatch run
// after commit and never fail the registration.
type RegistrationSvcFacade interface {
	// RegisterSelf creates a dataCollector account from the caller's own
	// details.
	RegisterSelf(ctx context.Context, req dto.RegisterSelfRequest) (*dto.RegistrationResult, error)

	// RegisterPublic creates a public account plus its profile in one
	// transaction. addBy records the registering data collector, when known.
	RegisterPublic(ctx context.Context, req dto.RegisterPublicRequest, addBy *domain.User) (*dto.RegistrationResult, error)

	// RegisterSubAccount creates a subUser under the referenced parent after
	// matching the supplied guardian NID against the parent's profile. The
	// generated password is delivered to the parent's contact.
	RegisterSubAccount(ctx context.Context, req dto.RegisterSubAccountRequest, addBy *domain.User) (*dto.RegistrationResult, error)
}
