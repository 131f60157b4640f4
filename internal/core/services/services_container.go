package services

import (
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Notifier: notifier}

	// Session and verification first since other services depend on them
	container.Session = NewSessionService(repos.SessionRepo, repos.UserRepo, cfg)
	container.Verification = NewVerificationService(repos.UserRepo, repos.FeeRepo, notifier, cfg.OTPExpiryDuration)

	container.Auth = NewAuthService(repos.UserRepo, container.Session)
	container.Registration = NewRegistrationService(repos.UserRepo, repos.RoleRepo, container.Verification, notifier)
	container.Lifecycle = NewLifecycleService(repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.SessionSvcFacade      = (*sessionService)(nil)
	_ portssvc.AuthSvcFacade         = (*authService)(nil)
	_ portssvc.VerificationSvcFacade = (*verificationService)(nil)
	_ portssvc.RegistrationSvcFacade = (*registrationService)(nil)
	_ portssvc.LifecycleSvcFacade    = (*lifecycleService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
)
