package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/platform/config"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByContactAndRole(ctx context.Context, contact string, role domain.RoleName) (*domain.User, error) {
	args := m.Called(ctx, contact, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindSubUsersByParentContact(ctx context.Context, contact string) ([]domain.User, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) TopLevelContactExists(ctx context.Context, channel domain.ContactChannel, contact string) (bool, error) {
	args := m.Called(ctx, channel, contact)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindUsersByAddBy(ctx context.Context, addByID int64, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, addByID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CreateUserWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile) error {
	args := m.Called(ctx, user, profile)
	return args.Error(0)
}

func (m *MockUserRepository) SetChannelCode(ctx context.Context, userID int64, channel domain.ContactChannel, code string, sentAt time.Time) error {
	args := m.Called(ctx, userID, channel, code, sentAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkChannelVerified(ctx context.Context, userID int64, channel domain.ContactChannel) error {
	args := m.Called(ctx, userID, channel)
	return args.Error(0)
}

func (m *MockUserRepository) SetApproval(ctx context.Context, userID int64, approved bool, actorID int64, at time.Time) error {
	args := m.Called(ctx, userID, approved, actorID, at)
	return args.Error(0)
}

func (m *MockUserRepository) SetPostponed(ctx context.Context, userID int64, postponed bool) error {
	args := m.Called(ctx, userID, postponed)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateNames(ctx context.Context, userID int64, firstName, lastName, nameBn string) error {
	args := m.Called(ctx, userID, firstName, lastName, nameBn)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) FindProfileByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindSessionByAccessToken(ctx context.Context, accessToken, visitorID string) (*domain.Session, error) {
	args := m.Called(ctx, accessToken, visitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) FindSessionByRefreshToken(ctx context.Context, refreshToken, visitorID string) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken, visitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) UpsertSession(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateSessionTokens(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) ExpireSession(ctx context.Context, sessionID int64, now time.Time) error {
	args := m.Called(ctx, sessionID, now)
	return args.Error(0)
}

var _ portsrepo.SessionRepositoryFacade = (*MockSessionRepository)(nil)

// --- Mock RoleRepository ---
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

var _ portsrepo.RoleReader = (*MockRoleRepository)(nil)

// --- Mock FeeRepository ---
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) FindActiveFeesByRole(ctx context.Context, roleID int64) ([]domain.PaymentFee, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentFee), args.Error(1)
}

var _ portsrepo.FeeReader = (*MockFeeRepository)(nil)

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, n portssvc.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

// --- Mock VerificationService ---
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) IssueCode(ctx context.Context, userID int64, channel domain.ContactChannel) (string, error) {
	args := m.Called(ctx, userID, channel)
	return args.String(0), args.Error(1)
}

func (m *MockVerificationService) SendCode(ctx context.Context, userID int64, channel domain.ContactChannel, contact string) error {
	args := m.Called(ctx, userID, channel, contact)
	return args.Error(0)
}

func (m *MockVerificationService) VerifyCode(ctx context.Context, userID int64, channelHint domain.ContactChannel, code string) (*dto.VerificationReceipt, error) {
	args := m.Called(ctx, userID, channelHint, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VerificationReceipt), args.Error(1)
}

var _ portssvc.VerificationSvcFacade = (*MockVerificationService)(nil)

// --- Shared helpers ---

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenDuration:          5 * time.Minute,
		RefreshTokenDuration:         24 * time.Hour,
		RememberRefreshTokenDuration: 720 * time.Hour,
		OTPExpiryDuration:            5 * time.Minute,
	}
}

func roleOf(name domain.RoleName) domain.Role {
	ids := map[domain.RoleName]int64{
		domain.RoleAdmin:         1,
		domain.RoleDataCollector: 2,
		domain.RolePublic:        3,
		domain.RoleSubUser:       4,
	}
	return domain.Role{RoleID: ids[name], Name: name, Label: string(name)}
}
