package services

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	"github.com/nagorik/citizen-registry/internal/dto"
)

// LifecycleSvcFacade enforces the approval state machine. All operations
// require actor.Role.Name == admin and re-read the target inside the
// transition so concurrent admin actions cannot write stale state; the
// loser of a race gets ErrConflict describing the current state.
type LifecycleSvcFacade interface {
	// Approve marks a dataCollector account approved, clearing any prior
	// rejection and recording the approver and timestamp.
	Approve(ctx context.Context, actor *domain.User, targetID int64) error

	// Reject marks an account rejected, clearing any prior approval. The
	// supplied contact must match the target's email or phone.
	Reject(ctx context.Context, actor *domain.User, targetID int64, contact string) error

	// TogglePostponed flips the postponed flag on an approved, verified,
	// paid account. Contact matching follows identity: direct, or via the
	// parent for sub-accounts. Returns the new postponed value.
	TogglePostponed(ctx context.Context, actor *domain.User, targetID int64, contact string, identity dto.TargetIdentity) (bool, error)

	// Delete hard-deletes the account, cascading to owned sub-accounts.
	// Contact matching follows identity as for TogglePostponed.
	Delete(ctx context.Context, actor *domain.User, targetID int64, contact string, identity dto.TargetIdentity) error
}
