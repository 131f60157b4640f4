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

type UserServiceTestSuite struct {
	suite.Suite
	mockUsers *MockUserRepository
	service   portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUsers = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUsers)
}

func (suite *UserServiceTestSuite) TestGetUserByID() {
	ctx := context.Background()
	user := &domain.User{UserID: 5, Role: roleOf(domain.RolePublic)}

	suite.mockUsers.On("FindUserByID", ctx, int64(5)).Return(user, nil).Once()

	found, err := suite.service.GetUserByID(ctx, 5)

	suite.Require().NoError(err)
	suite.Equal(user, found)
}

func (suite *UserServiceTestSuite) TestListUsersAddedBy_ClampsPaging() {
	ctx := context.Background()

	// Out-of-range values fall back to the defaults.
	suite.mockUsers.On("FindUsersByAddBy", ctx, int64(5), 20, 0).Return([]domain.User{}, nil).Twice()

	_, err := suite.service.ListUsersAddedBy(ctx, 5, 500, -3)
	suite.Require().NoError(err)

	_, err = suite.service.ListUsersAddedBy(ctx, 5, 0, 0)
	suite.Require().NoError(err)

	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateNames_MutatesUser() {
	ctx := context.Background()
	user := &domain.User{UserID: 5, FirstName: "Old", LastName: "Name"}
	req := dto.UpdateUserRequest{FirstName: "Rahim", LastName: "Uddin", NameBn: "রহিম"}

	suite.mockUsers.On("UpdateNames", ctx, int64(5), "Rahim", "Uddin", "রহিম").Return(nil).Once()

	err := suite.service.UpdateNames(ctx, user, req)

	suite.Require().NoError(err)
	suite.Equal("Rahim", user.FirstName)
	suite.Equal("Uddin", user.LastName)
}

func (suite *UserServiceTestSuite) TestChangePassword_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("oldpass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: 5, PasswordHash: hash}

	suite.mockUsers.On("UpdatePasswordHash", ctx, int64(5), mock.MatchedBy(func(h string) bool {
		return utils.CheckPasswordHash("newpass", h)
	})).Return(nil).Once()

	err = suite.service.ChangePassword(ctx, user, dto.ChangePasswordRequest{
		CurrentPassword: "oldpass",
		NewPassword:     "newpass",
	})

	suite.Require().NoError(err)
	suite.True(utils.CheckPasswordHash("newpass", user.PasswordHash), "in-memory hash should track the stored one")
}

func (suite *UserServiceTestSuite) TestChangePassword_WrongCurrent() {
	hash, err := utils.HashPassword("oldpass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: 5, PasswordHash: hash}

	err = suite.service.ChangePassword(context.Background(), user, dto.ChangePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "newpass",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUsers.AssertNotCalled(suite.T(), "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
