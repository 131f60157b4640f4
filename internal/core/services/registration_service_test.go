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

type RegistrationServiceTestSuite struct {
	suite.Suite
	mockUsers        *MockUserRepository
	mockRoles        *MockRoleRepository
	mockVerification *MockVerificationService
	mockNotifier     *MockNotifier
	service          portssvc.RegistrationSvcFacade
}

func (suite *RegistrationServiceTestSuite) SetupTest() {
	suite.mockUsers = new(MockUserRepository)
	suite.mockRoles = new(MockRoleRepository)
	suite.mockVerification = new(MockVerificationService)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewRegistrationService(suite.mockUsers, suite.mockRoles, suite.mockVerification, suite.mockNotifier)
}

func (suite *RegistrationServiceTestSuite) selfRequest() dto.RegisterSelfRequest {
	return dto.RegisterSelfRequest{
		FirstName:       "Rahim",
		LastName:        "Uddin",
		Phone:           "01712345678",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func (suite *RegistrationServiceTestSuite) expectRole(name domain.RoleName) {
	role := roleOf(name)
	suite.mockRoles.On("FindRoleByName", mock.Anything, name).Return(&role, nil).Once()
}

func (suite *RegistrationServiceTestSuite) TestRegisterSelf_Success() {
	ctx := context.Background()
	req := suite.selfRequest()
	suite.expectRole(domain.RoleDataCollector)

	suite.mockUsers.On("TopLevelContactExists", ctx, domain.ChannelPhone, req.Phone).Return(false, nil).Once()
	suite.mockUsers.On("CreateUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username != nil && *u.Username == req.Phone &&
			u.Role.Name == domain.RoleDataCollector &&
			u.ParentID == nil &&
			u.PaymentStatus == domain.PaymentPending &&
			utils.CheckPasswordHash("secret123", u.PasswordHash)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).UserID = 77
	}).Return(nil).Once()
	suite.mockVerification.On("SendCode", ctx, int64(77), domain.ChannelPhone, req.Phone).Return(nil).Once()

	result, err := suite.service.RegisterSelf(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(int64(77), result.UserID)
	suite.Equal(int64(77), result.ApplicationID)
	suite.Equal("Rahim Uddin", result.Name)
	suite.Equal("phone", result.ContactType)
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockVerification.AssertExpectations(suite.T())
}

func (suite *RegistrationServiceTestSuite) TestRegisterSelf_PasswordMismatch() {
	req := suite.selfRequest()
	req.ConfirmPassword = "different"

	result, err := suite.service.RegisterSelf(context.Background(), req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestRegisterSelf_NoContact() {
	req := suite.selfRequest()
	req.Phone = ""
	req.Email = ""

	result, err := suite.service.RegisterSelf(context.Background(), req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RegistrationServiceTestSuite) TestRegisterSelf_DuplicateTopLevelPhone() {
	ctx := context.Background()
	req := suite.selfRequest()

	suite.mockUsers.On("TopLevelContactExists", ctx, domain.ChannelPhone, req.Phone).Return(true, nil).Once()

	result, err := suite.service.RegisterSelf(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestRegisterPublic_CreatesUserAndProfile() {
	ctx := context.Background()
	addBy := &domain.User{UserID: 50, Role: roleOf(domain.RoleDataCollector)}
	req := dto.RegisterPublicRequest{
		User: suite.selfRequest(),
		Profile: dto.ProfilePayload{
			NameBn:      "রহিম উদ্দিন",
			NID:         "1234567890",
			GuardianNID: "9876543210",
			DateOfBirth: "1990-01-15",
		},
	}
	suite.expectRole(domain.RolePublic)

	suite.mockUsers.On("TopLevelContactExists", ctx, domain.ChannelPhone, req.User.Phone).Return(false, nil).Once()
	suite.mockUsers.On("CreateUserWithProfile", ctx,
		mock.MatchedBy(func(u *domain.User) bool {
			return u.Role.Name == domain.RolePublic && u.AddByID != nil && *u.AddByID == 50 &&
				u.PaymentStatus == domain.PaymentPending
		}),
		mock.MatchedBy(func(p *domain.UserProfile) bool {
			return p.NameEn == "Rahim Uddin" && p.NameBn == "রহিম উদ্দিন" &&
				p.GuardianNID != nil && *p.GuardianNID == "9876543210" &&
				p.DateOfBirth != nil
		}),
	).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).UserID = 88
	}).Return(nil).Once()
	suite.mockVerification.On("SendCode", ctx, int64(88), domain.ChannelPhone, req.User.Phone).Return(nil).Once()

	result, err := suite.service.RegisterPublic(ctx, req, addBy)

	suite.Require().NoError(err)
	suite.Equal(int64(88), result.ApplicationID)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *RegistrationServiceTestSuite) TestRegisterPublic_BadDateOfBirth() {
	ctx := context.Background()
	req := dto.RegisterPublicRequest{
		User:    suite.selfRequest(),
		Profile: dto.ProfilePayload{DateOfBirth: "15/01/1990"},
	}
	suite.expectRole(domain.RolePublic)
	suite.mockUsers.On("TopLevelContactExists", ctx, domain.ChannelPhone, req.User.Phone).Return(false, nil).Once()

	result, err := suite.service.RegisterPublic(ctx, req, nil)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RegistrationServiceTestSuite) subAccountRequest() dto.RegisterSubAccountRequest {
	return dto.RegisterSubAccountRequest{
		FirstName:   "Karim",
		LastName:    "Uddin",
		ParentID:    30,
		GuardianNID: "9876543210",
	}
}

func (suite *RegistrationServiceTestSuite) parentFixture() (*domain.User, *domain.UserProfile) {
	parent := &domain.User{
		UserID: 30,
		Phone:  strPtr("01712345678"),
		Role:   roleOf(domain.RolePublic),
	}
	profile := &domain.UserProfile{
		UserID:      30,
		GuardianNID: strPtr("9876543210"),
	}
	return parent, profile
}

func (suite *RegistrationServiceTestSuite) TestRegisterSubAccount_Success() {
	ctx := context.Background()
	req := suite.subAccountRequest()
	parent, profile := suite.parentFixture()
	suite.expectRole(domain.RoleSubUser)

	suite.mockUsers.On("FindUserByID", ctx, int64(30)).Return(parent, nil).Once()
	suite.mockUsers.On("FindProfileByUserID", ctx, int64(30)).Return(profile, nil).Once()
	suite.mockUsers.On("CreateUserWithProfile", ctx,
		mock.MatchedBy(func(u *domain.User) bool {
			// Derived username, inherited parent contact, parent linkage
			return u.Username != nil && *u.Username == "Karim-Uddin" &&
				u.ParentID != nil && *u.ParentID == 30 &&
				u.Phone != nil && *u.Phone == "01712345678" &&
				u.Role.Name == domain.RoleSubUser &&
				u.PaymentStatus == domain.PaymentPending
		}),
		mock.AnythingOfType("*domain.UserProfile"),
	).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).UserID = 99
	}).Return(nil).Once()
	// Generated credentials go to the parent's contact
	suite.mockNotifier.On("Send", ctx, mock.MatchedBy(func(n portssvc.Notification) bool {
		return n.Channel == domain.ChannelPhone && n.Recipient == "01712345678" && n.Body != ""
	})).Return(nil).Once()
	suite.mockVerification.On("SendCode", ctx, int64(99), domain.ChannelPhone, "01712345678").Return(nil).Once()

	result, err := suite.service.RegisterSubAccount(ctx, req, nil)

	suite.Require().NoError(err)
	suite.Equal(int64(99), result.UserID)
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *RegistrationServiceTestSuite) TestRegisterSubAccount_GuardianNIDMismatch() {
	ctx := context.Background()
	req := suite.subAccountRequest()
	req.GuardianNID = "0000000000"
	parent, profile := suite.parentFixture()

	suite.mockUsers.On("FindUserByID", ctx, int64(30)).Return(parent, nil).Once()
	suite.mockUsers.On("FindProfileByUserID", ctx, int64(30)).Return(profile, nil).Once()

	result, err := suite.service.RegisterSubAccount(ctx, req, nil)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertNotCalled(suite.T(), "CreateUserWithProfile", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestRegisterSubAccount_ParentMissingIsValidationError() {
	ctx := context.Background()
	req := suite.subAccountRequest()

	suite.mockUsers.On("FindUserByID", ctx, int64(30)).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.RegisterSubAccount(ctx, req, nil)

	suite.Require().Error(err)
	suite.Nil(result)
	// A bad parent reference is the caller's mistake, not a missing resource
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RegistrationServiceTestSuite) TestRoleLookupIsCached() {
	ctx := context.Background()
	req := suite.selfRequest()

	// Single role fetch despite two registrations
	suite.expectRole(domain.RoleDataCollector)
	suite.mockUsers.On("TopLevelContactExists", ctx, domain.ChannelPhone, mock.Anything).Return(false, nil).Twice()
	suite.mockUsers.On("CreateUser", ctx, mock.Anything).Return(nil).Twice()
	suite.mockVerification.On("SendCode", ctx, mock.Anything, domain.ChannelPhone, mock.Anything).Return(nil).Twice()

	_, err := suite.service.RegisterSelf(ctx, req)
	suite.Require().NoError(err)

	req.Phone = "01787654321"
	_, err = suite.service.RegisterSelf(ctx, req)
	suite.Require().NoError(err)

	suite.mockRoles.AssertExpectations(suite.T())
}

func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceTestSuite))
}
