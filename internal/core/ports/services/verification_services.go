package services

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	"github.com/nagorik/citizen-registry/internal/dto"
)

// VerificationSvcFacade issues and checks one-time codes bound to a
// contact channel.
type VerificationSvcFacade interface {
	// IssueCode generates a code for the channel, stores it with its issue
	// time, and returns it for delivery.
	IssueCode(ctx context.Context, userID int64, channel domain.ContactChannel) (string, error)

	// SendCode issues a code and hands it to the notifier. The supplied
	// contact must match the account's stored value for the channel.
	SendCode(ctx context.Context, userID int64, channel domain.ContactChannel, contact string) error

	// VerifyCode checks a submitted code against the stored one. On match it
	// marks the channel verified, clears the code, and attaches the role's
	// fee breakdown to the receipt. Mismatched, expired, already-verified and
	// channel-less submissions are ErrValidation variants; the receipt is nil.
	VerifyCode(ctx context.Context, userID int64, channelHint domain.ContactChannel, code string) (*dto.VerificationReceipt, error)
}
