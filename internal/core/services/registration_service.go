package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/utils"
)

const generatedPasswordLength = 12

type registrationService struct {
	userRepo     portsrepo.UserRepositoryFacade
	roleRepo     portsrepo.RoleReader
	verification portssvc.VerificationSvcFacade
	notifier     portssvc.Notifier

	roleMu    sync.RWMutex
	roleCache map[domain.RoleName]domain.Role
}

// NewRegistrationService creates the account-creation service. Roles are
// reference data and are cached after the first lookup.
func NewRegistrationService(userRepo portsrepo.UserRepositoryFacade, roleRepo portsrepo.RoleReader, verification portssvc.VerificationSvcFacade, notifier portssvc.Notifier) portssvc.RegistrationSvcFacade {
	return &registrationService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		verification: verification,
		notifier:     notifier,
		roleCache:    make(map[domain.RoleName]domain.Role),
	}
}

func (s *registrationService) role(ctx context.Context, name domain.RoleName) (domain.Role, error) {
	s.roleMu.RLock()
	role, ok := s.roleCache[name]
	s.roleMu.RUnlock()
	if ok {
		return role, nil
	}

	found, err := s.roleRepo.FindRoleByName(ctx, name)
	if err != nil {
		return domain.Role{}, fmt.Errorf("failed to resolve role %q: %w", name, err)
	}
	s.roleMu.Lock()
	s.roleCache[name] = *found
	s.roleMu.Unlock()
	return *found, nil
}

func (s *registrationService) RegisterSelf(ctx context.Context, req dto.RegisterSelfRequest) (*dto.RegistrationResult, error) {
	user, err := s.buildTopLevelUser(ctx, req, domain.RoleDataCollector)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, wrapDuplicateContact(err)
	}

	s.afterCreate(ctx, user)
	return registrationResult(user), nil
}

func (s *registrationService) RegisterPublic(ctx context.Context, req dto.RegisterPublicRequest, addBy *domain.User) (*dto.RegistrationResult, error) {
	user, err := s.buildTopLevelUser(ctx, req.User, domain.RolePublic)
	if err != nil {
		return nil, err
	}
	if addBy != nil {
		user.AddByID = &addBy.UserID
	}

	profile, err := buildProfile(user, req.Profile)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateUserWithProfile(ctx, user, profile); err != nil {
		return nil, wrapDuplicateContact(err)
	}

	s.afterCreate(ctx, user)
	return registrationResult(user), nil
}

func (s *registrationService) RegisterSubAccount(ctx context.Context, req dto.RegisterSubAccountRequest, addBy *domain.User) (*dto.RegistrationResult, error) {
	parent, err := s.userRepo.FindUserByID(ctx, req.ParentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldErrors("parent", "parent account not found")
		}
		return nil, err
	}
	if parent.Role.Name != domain.RolePublic {
		return nil, apperrors.NewFieldErrors("parent", "parent must be a public account")
	}

	parentProfile, err := s.userRepo.FindProfileByUserID(ctx, parent.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if parentProfile == nil || parentProfile.GuardianNID == nil || *parentProfile.GuardianNID != req.GuardianNID {
		return nil, apperrors.NewFieldErrors("guardian_nid", "guardian NID does not match the parent record")
	}

	username := fmt.Sprintf("%s-%s", req.FirstName, req.LastName)
	if username == "-" {
		return nil, apperrors.NewFieldErrors("username", "insufficient data to derive a username")
	}

	password, err := utils.GenerateRandomPassword(generatedPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash generated password: %w", err)
	}

	role, err := s.role(ctx, domain.RoleSubUser)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:      &username,
		PasswordHash:  hash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          role,
		ParentID:      &parent.UserID,
		Phone:         optional(req.Phone),
		Email:         optional(req.Email),
		PaymentStatus: domain.PaymentPending,
	}
	// A sub-account with no contact of its own inherits the parent's, so
	// verification codes and credentials reach the guardian.
	if user.Phone == nil && user.Email == nil {
		user.Phone = parent.Phone
		user.Email = parent.Email
	}
	if addBy != nil {
		user.AddByID = &addBy.UserID
	}

	profile := &domain.UserProfile{
		NameEn:      user.FullName(),
		GuardianNID: &req.GuardianNID,
	}

	if err := s.userRepo.CreateUserWithProfile(ctx, user, profile); err != nil {
		return nil, wrapDuplicateContact(err)
	}

	s.notifyCredentials(ctx, parent, user, password)
	s.afterCreate(ctx, user)
	return registrationResult(user), nil
}

// buildTopLevelUser runs the shared validations for self and public
// registrations and assembles the unsaved user row.
func (s *registrationService) buildTopLevelUser(ctx context.Context, req dto.RegisterSelfRequest, roleName domain.RoleName) (*domain.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.NewFieldErrors("password", "passwords do not match")
	}
	if req.Phone == "" && req.Email == "" {
		return nil, apperrors.NewFieldErrors("contact", "either phone or email is required")
	}

	username := req.Phone
	if username == "" {
		username = req.Email
	}

	if req.Phone != "" {
		taken, err := s.userRepo.TopLevelContactExists(ctx, domain.ChannelPhone, req.Phone)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewFieldErrors("phone", "phone number must be unique for main accounts")
		}
	}
	if req.Email != "" {
		taken, err := s.userRepo.TopLevelContactExists(ctx, domain.ChannelEmail, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewFieldErrors("email", "email must be unique for main accounts")
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role, err := s.role(ctx, roleName)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Username:      &username,
		PasswordHash:  hash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          role,
		Phone:         optional(req.Phone),
		Email:         optional(req.Email),
		PaymentStatus: domain.PaymentPending,
	}, nil
}

// afterCreate issues the first verification code on the account's preferred
// channel. Failures are logged, never surfaced; the account already exists.
func (s *registrationService) afterCreate(ctx context.Context, user *domain.User) {
	channel := domain.ChannelPhone
	contact := user.Phone
	if contact == nil {
		channel = domain.ChannelEmail
		contact = user.Email
	}
	if contact == nil {
		return
	}

	if err := s.verification.SendCode(ctx, user.UserID, channel, *contact); err != nil {
		slog.WarnContext(ctx, "post-registration code dispatch failed",
			"user_id", user.UserID, "channel", channel, "error", err)
	}
}

func (s *registrationService) notifyCredentials(ctx context.Context, parent, subUser *domain.User, password string) {
	channel := domain.ChannelPhone
	recipient := parent.Phone
	if recipient == nil {
		channel = domain.ChannelEmail
		recipient = parent.Email
	}
	if recipient == nil {
		return
	}

	n := portssvc.Notification{
		Channel:   channel,
		Recipient: *recipient,
		Subject:   "New dependent account",
		Body:      fmt.Sprintf("An account for %s was created under your registration. Username: %s, password: %s.", subUser.FullName(), *subUser.Username, password),
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		slog.WarnContext(ctx, "credential dispatch failed", "user_id", subUser.UserID, "error", err)
	}
}

func buildProfile(user *domain.User, p dto.ProfilePayload) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{
		NameEn:        user.FullName(),
		NameBn:        p.NameBn,
		Phone:         optional(p.Phone),
		Email:         optional(p.Email),
		NID:           optional(p.NID),
		GuardianNID:   optional(p.GuardianNID),
		GuardianPhone: optional(p.GuardianPhone),
		GuardianEmail: optional(p.GuardianEmail),
		Relationship:  optional(p.Relationship),
		FatherNameEn:  optional(p.FatherNameEn),
		FatherNameBn:  optional(p.FatherNameBn),
		MotherNameEn:  optional(p.MotherNameEn),
		MotherNameBn:  optional(p.MotherNameBn),
		SpouseNameEn:  optional(p.SpouseNameEn),
		SpouseNameBn:  optional(p.SpouseNameBn),
		Occupation:    optional(p.Occupation),
		BloodGroup:    optional(p.BloodGroup),
	}
	if p.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", p.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewFieldErrors("date_of_birth", "date of birth must be YYYY-MM-DD")
		}
		profile.DateOfBirth = &dob
	}
	return profile, nil
}

func registrationResult(user *domain.User) *dto.RegistrationResult {
	contact, contactType := "", ""
	if user.Phone != nil {
		contact, contactType = *user.Phone, string(domain.ChannelPhone)
	} else if user.Email != nil {
		contact, contactType = *user.Email, string(domain.ChannelEmail)
	}
	return &dto.RegistrationResult{
		UserID:        user.UserID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Name:          user.FullName(),
		ApplicationID: user.UserID,
		Contact:       contact,
		ContactType:   contactType,
	}
}

func wrapDuplicateContact(err error) error {
	if errors.Is(err, apperrors.ErrDuplicate) {
		return apperrors.NewFieldErrors("contact", "an account with this contact already exists")
	}
	return err
}
