package services

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	"github.com/nagorik/citizen-registry/internal/dto"
)

// UserReaderSvc defines read operations for account data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// ListUsersAddedBy retrieves the top-level accounts the given data
	// collector registered.
	ListUsersAddedBy(ctx context.Context, addByID int64, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines self-service write operations
type UserWriterSvc interface {
	// UpdateNames updates the caller's first/last/Bangla names across the
	// user and profile rows in one transaction.
	UpdateNames(ctx context.Context, user *domain.User, req dto.UpdateUserRequest) error

	// ChangePassword rotates the caller's password after verifying the
	// current one.
	ChangePassword(ctx context.Context, user *domain.User, req dto.ChangePasswordRequest) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
