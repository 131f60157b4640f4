package repositories

import (
	"context"
	"time"

	"github.com/nagorik/citizen-registry/internal/core/domain"
)

// UserReader defines read operations for account data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByContactAndRole retrieves the user whose email or phone equals
	// contact and whose role matches. Used by login disambiguation.
	FindUserByContactAndRole(ctx context.Context, contact string, role domain.RoleName) (*domain.User, error)

	// FindSubUsersByParentContact retrieves the subUsers whose parent's email
	// or phone equals contact. Sub-accounts authenticate with the parent's
	// contact and their own password, so the caller disambiguates among the
	// candidates by password check.
	FindSubUsersByParentContact(ctx context.Context, contact string) ([]domain.User, error)

	// TopLevelContactExists reports whether a parentless account already owns
	// the given contact value on the given channel.
	TopLevelContactExists(ctx context.Context, channel domain.ContactChannel, contact string) (bool, error)

	// FindUsersByAddBy retrieves the top-level accounts registered by the
	// given data collector.
	FindUsersByAddBy(ctx context.Context, addByID int64, limit, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for account data
type UserWriter interface {
	// CreateUser persists a new user and assigns its ID.
	CreateUser(ctx context.Context, user *domain.User) error

	// CreateUserWithProfile persists a user and its profile in one
	// transaction. If the profile insert fails the user insert is rolled
	// back and the returned error names the half that failed.
	CreateUserWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile) error

	// SetChannelCode stores a pending one-time code for the channel.
	SetChannelCode(ctx context.Context, userID int64, channel domain.ContactChannel, code string, sentAt time.Time) error

	// MarkChannelVerified flips the channel's verified flag and clears the
	// stored code and its timestamp.
	MarkChannelVerified(ctx context.Context, userID int64, channel domain.ContactChannel) error

	// SetApproval records an approval or rejection. The two flags are always
	// written together so they can never both be true.
	SetApproval(ctx context.Context, userID int64, approved bool, actorID int64, at time.Time) error

	// SetPostponed writes the postponed flag, enforcing the eligibility
	// guards (approved, not rejected, a verified channel, payment settled)
	// atomically with the write. Returns apperrors.ErrConflict when the
	// user exists but is no longer eligible.
	SetPostponed(ctx context.Context, userID int64, postponed bool) error

	// UpdateNames updates first/last name and the profile's Bangla name in
	// one transaction.
	UpdateNames(ctx context.Context, userID int64, firstName, lastName, nameBn string) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error

	// DeleteUser hard-deletes the user; owned sub-accounts cascade.
	DeleteUser(ctx context.Context, userID int64) error
}

// ProfileReader defines read operations for user profiles
type ProfileReader interface {
	// FindProfileByUserID retrieves the profile owned by the given user.
	FindProfileByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	ProfileReader
}
