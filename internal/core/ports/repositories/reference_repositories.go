package repositories

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
)

// RoleReader defines read operations for the roles reference table.
type RoleReader interface {
	// FindRoleByName retrieves a role record by its semantic name.
	FindRoleByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
}

// FeeReader defines read operations against the payment collaborator's fee
// table. This core never writes fees.
type FeeReader interface {
	// FindActiveFeesByRole retrieves the active fee lines for a role.
	FindActiveFeesByRole(ctx context.Context, roleID int64) ([]domain.PaymentFee, error)
}
