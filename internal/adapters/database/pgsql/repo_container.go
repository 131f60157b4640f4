package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:    NewUserRepository(pool),
		SessionRepo: NewSessionRepository(pool),
		RoleRepo:    NewRoleRepository(pool),
		FeeRepo:     NewFeeRepository(pool),
	}
}
