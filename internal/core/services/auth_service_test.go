package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/core/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/utils"
)

// --- Mock SessionIssuer ---
type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) Issue(ctx context.Context, user *domain.User, visitorID string, remember bool, userAgent, ip string) (*domain.Session, error) {
	args := m.Called(ctx, user, visitorID, remember, userAgent, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionIssuer) RotateAccessToken(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

var _ portssvc.SessionIssuerSvc = (*MockSessionIssuer)(nil)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUsers  *MockUserRepository
	mockIssuer *MockSessionIssuer
	service    portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUsers = new(MockUserRepository)
	suite.mockIssuer = new(MockSessionIssuer)
	suite.service = services.NewAuthService(suite.mockUsers, suite.mockIssuer)
}

func (suite *AuthServiceTestSuite) loginParams(kind dto.LoginKind, contact, password string) portssvc.LoginParams {
	return portssvc.LoginParams{
		Kind:      kind,
		Contact:   contact,
		Channel:   domain.ChannelPhone,
		Password:  password,
		VisitorID: "visitor-1",
		UserAgent: "agent",
		IP:        "10.0.0.1",
	}
}

func hashOf(suite *AuthServiceTestSuite, password string) string {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return hash
}

func (suite *AuthServiceTestSuite) TestLogin_PublicSuccess() {
	ctx := context.Background()
	user := &domain.User{
		UserID:        1,
		Phone:         strPtr("01712345678"),
		PasswordHash:  hashOf(suite, "secret123"),
		PhoneVerified: true,
		Role:          roleOf(domain.RolePublic),
	}
	issued := &domain.Session{SessionID: 9, UserID: 1}

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01712345678", domain.RolePublic).Return(user, nil).Once()
	suite.mockIssuer.On("Issue", ctx, user, "visitor-1", false, "agent", "10.0.0.1").Return(issued, nil).Once()

	gotUser, gotSession, err := suite.service.Login(ctx, suite.loginParams(dto.LoginPublic, "01712345678", "secret123"))

	suite.Require().NoError(err)
	suite.Equal(user, gotUser)
	suite.Equal(issued, gotSession)
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockIssuer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_SubAccountViaParentContact() {
	ctx := context.Background()
	// Two siblings share the parent's contact; the password picks the right one
	sibling := domain.User{
		UserID:        10,
		PasswordHash:  hashOf(suite, "sibling-pass"),
		PhoneVerified: true,
		Role:          roleOf(domain.RoleSubUser),
	}
	target := domain.User{
		UserID:        11,
		PasswordHash:  hashOf(suite, "target-pass"),
		PhoneVerified: true,
		Role:          roleOf(domain.RoleSubUser),
	}

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01712345678", domain.RolePublic).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("FindSubUsersByParentContact", ctx, "01712345678").Return([]domain.User{sibling, target}, nil).Once()
	suite.mockIssuer.On("Issue", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.UserID == 11
	}), "visitor-1", false, "agent", "10.0.0.1").Return(&domain.Session{SessionID: 3, UserID: 11}, nil).Once()

	gotUser, _, err := suite.service.Login(ctx, suite.loginParams(dto.LoginPublic, "01712345678", "target-pass"))

	suite.Require().NoError(err)
	suite.Equal(int64(11), gotUser.UserID)
	suite.mockIssuer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_SubAccountWhenParentHoldsContact() {
	ctx := context.Background()
	// The parent is itself a public account on this contact. A dependent
	// logging in with its own password must still resolve, not fail on the
	// parent's hash.
	parent := &domain.User{
		UserID:        30,
		Phone:         strPtr("01712345678"),
		PasswordHash:  hashOf(suite, "parent-pass"),
		PhoneVerified: true,
		Role:          roleOf(domain.RolePublic),
	}
	target := domain.User{
		UserID:        31,
		Phone:         strPtr("01712345678"),
		PasswordHash:  hashOf(suite, "target-pass"),
		PhoneVerified: true,
		Role:          roleOf(domain.RoleSubUser),
	}

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01712345678", domain.RolePublic).Return(parent, nil).Once()
	suite.mockUsers.On("FindSubUsersByParentContact", ctx, "01712345678").Return([]domain.User{target}, nil).Once()
	suite.mockIssuer.On("Issue", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.UserID == 31
	}), "visitor-1", false, "agent", "10.0.0.1").Return(&domain.Session{SessionID: 4, UserID: 31}, nil).Once()

	gotUser, _, err := suite.service.Login(ctx, suite.loginParams(dto.LoginPublic, "01712345678", "target-pass"))

	suite.Require().NoError(err)
	suite.Equal(int64(31), gotUser.UserID)
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockIssuer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_PublicWrongPasswordNoDependents() {
	ctx := context.Background()
	parent := &domain.User{
		UserID:        30,
		Phone:         strPtr("01712345678"),
		PasswordHash:  hashOf(suite, "parent-pass"),
		PhoneVerified: true,
		Role:          roleOf(domain.RolePublic),
	}

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01712345678", domain.RolePublic).Return(parent, nil).Once()
	suite.mockUsers.On("FindSubUsersByParentContact", ctx, "01712345678").Return([]domain.User{}, nil).Once()

	_, _, err := suite.service.Login(ctx, suite.loginParams(dto.LoginPublic, "01712345678", "wrong"))

	// The account exists; a bad password is unauthorized, never not-found.
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.mockIssuer.AssertNotCalled(suite.T(), "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_SubAccountWrongPassword() {
	ctx := context.Background()
	sibling := domain.User{
		UserID:        10,
		PasswordHash:  hashOf(suite, "sibling-pass"),
		PhoneVerified: true,
		Role:          roleOf(domain.RoleSubUser),
	}

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01712345678", domain.RolePublic).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("FindSubUsersByParentContact", ctx, "01712345678").Return([]domain.User{sibling}, nil).Once()

	_, _, err := suite.service.Login(ctx, suite.loginParams(dto.LoginPublic, "01712345678", "wrong"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockIssuer.AssertNotCalled(suite.T(), "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_NoCandidateNotFound() {
	ctx := context.Background()

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01700000000", domain.RolePublic).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("FindSubUsersByParentContact", ctx, "01700000000").Return([]domain.User{}, nil).Once()

	_, _, err := suite.service.Login(ctx, suite.loginParams(dto.LoginPublic, "01700000000", "whatever"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AuthServiceTestSuite) TestLogin_DataCollectorWrongPassword() {
	ctx := context.Background()
	user := &domain.User{
		UserID:        2,
		PasswordHash:  hashOf(suite, "right-pass"),
		PhoneVerified: true,
		Role:          roleOf(domain.RoleDataCollector),
	}

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01712345678", domain.RoleDataCollector).Return(user, nil).Once()

	_, _, err := suite.service.Login(ctx, suite.loginParams(dto.LoginDataCollector, "01712345678", "wrong-pass"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_UnverifiedChannelRejected() {
	ctx := context.Background()
	user := &domain.User{
		UserID:        3,
		Phone:         strPtr("01712345678"),
		PasswordHash:  hashOf(suite, "secret123"),
		PhoneVerified: false,
		Role:          roleOf(domain.RoleDataCollector),
	}

	suite.mockUsers.On("FindUserByContactAndRole", ctx, "01712345678", domain.RoleDataCollector).Return(user, nil).Once()

	_, _, err := suite.service.Login(ctx, suite.loginParams(dto.LoginDataCollector, "01712345678", "secret123"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Contains(err.Error(), "phone")
	suite.mockIssuer.AssertNotCalled(suite.T(), "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_MissingVisitorID() {
	params := suite.loginParams(dto.LoginAdmin, "admin@example.com", "secret123")
	params.VisitorID = ""

	_, _, err := suite.service.Login(context.Background(), params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertNotCalled(suite.T(), "FindUserByContactAndRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
