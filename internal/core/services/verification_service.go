package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/utils"
)

type verificationService struct {
	userRepo  portsrepo.UserRepositoryFacade
	feeRepo   portsrepo.FeeReader
	notifier  portssvc.Notifier
	otpExpiry time.Duration
}

// NewVerificationService creates the one-time-code service.
func NewVerificationService(userRepo portsrepo.UserRepositoryFacade, feeRepo portsrepo.FeeReader, notifier portssvc.Notifier, otpExpiry time.Duration) portssvc.VerificationSvcFacade {
	return &verificationService{
		userRepo:  userRepo,
		feeRepo:   feeRepo,
		notifier:  notifier,
		otpExpiry: otpExpiry,
	}
}

func (s *verificationService) IssueCode(ctx context.Context, userID int64, channel domain.ContactChannel) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.Contact(channel) == nil {
		return "", apperrors.NewFieldErrors("contact_type", fmt.Sprintf("account has no %s on file", channel))
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	if err := s.userRepo.SetChannelCode(ctx, userID, channel, code, time.Now()); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}
	return code, nil
}

func (s *verificationService) SendCode(ctx context.Context, userID int64, channel domain.ContactChannel, contact string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	stored := user.Contact(channel)
	if stored == nil || *stored != contact {
		return fmt.Errorf("no account matches the given contact: %w", apperrors.ErrNotFound)
	}

	code, err := s.IssueCode(ctx, userID, channel)
	if err != nil {
		return err
	}

	n := portssvc.Notification{
		Channel:   channel,
		Recipient: contact,
		Subject:   "Verification code",
		Body:      fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.otpExpiry.Minutes())),
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		slog.WarnContext(ctx, "verification code dispatch failed", "user_id", userID, "channel", channel, "error", err)
	}
	return nil
}

func (s *verificationService) VerifyCode(ctx context.Context, userID int64, channelHint domain.ContactChannel, code string) (*dto.VerificationReceipt, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	channel, err := pickChannel(user, channelHint)
	if err != nil {
		return nil, err
	}

	stored, sentAt := channelCode(user, channel)
	switch {
	case stored == nil:
		return nil, apperrors.NewFieldErrors("otp", "no pending code for this channel")
	case sentAt == nil || time.Since(*sentAt) > s.otpExpiry:
		// An expired code is indistinguishable from a wrong one.
		return nil, apperrors.NewFieldErrors("otp", "the code does not match")
	case *stored != code:
		return nil, apperrors.NewFieldErrors("otp", "the code does not match")
	}

	if err := s.userRepo.MarkChannelVerified(ctx, userID, channel); err != nil {
		return nil, fmt.Errorf("failed to mark %s verified: %w", channel, err)
	}

	receipt := &dto.VerificationReceipt{
		ApplicationID: user.UserID,
		ContactType:   string(channel),
		Verified:      true,
	}

	fees, err := s.feeRepo.FindActiveFeesByRole(ctx, user.Role.RoleID)
	if err != nil {
		slog.WarnContext(ctx, "fee lookup failed after verification", "user_id", userID, "role", user.Role.Name, "error", err)
		receipt.Warning = "fee information is temporarily unavailable"
		return receipt, nil
	}
	breakdown := domain.BuildFeeBreakdown(fees)
	receipt.Fees = &breakdown
	return receipt, nil
}

// pickChannel selects the channel a submitted code targets. With no hint the
// single unverified channel holding a contact wins; two pending channels need
// an explicit hint.
func pickChannel(user *domain.User, hint domain.ContactChannel) (domain.ContactChannel, error) {
	if user.Phone == nil && user.Email == nil {
		return "", apperrors.NewFieldErrors("contact_type", "account has no contact channel on file")
	}
	if hint != "" {
		if user.Contact(hint) == nil {
			return "", apperrors.NewFieldErrors("contact_type", fmt.Sprintf("account has no %s on file", hint))
		}
		if user.ChannelVerified(hint) {
			return "", apperrors.NewFieldErrors("otp", fmt.Sprintf("%s is already verified", hint))
		}
		return hint, nil
	}

	var pending []domain.ContactChannel
	for _, ch := range []domain.ContactChannel{domain.ChannelPhone, domain.ChannelEmail} {
		if user.Contact(ch) != nil && !user.ChannelVerified(ch) {
			pending = append(pending, ch)
		}
	}
	switch len(pending) {
	case 0:
		return "", apperrors.NewFieldErrors("otp", "account is already verified")
	case 1:
		return pending[0], nil
	default:
		return "", apperrors.NewFieldErrors("contact_type", "contact_type is required when both channels are pending")
	}
}

func channelCode(user *domain.User, channel domain.ContactChannel) (*string, *time.Time) {
	if channel == domain.ChannelEmail {
		return user.EmailCode, user.EmailCodeSentAt
	}
	return user.PhoneCode, user.PhoneCodeSentAt
}
