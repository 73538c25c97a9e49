package services_test

import (
	"context"
	"testing"

	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/core/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockMailer   *MockMailer
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockMailer = new(MockMailer)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockMailer, testConfig())
}

func (suite *UserServiceTestSuite) storedUser() *domain.User {
	return &domain.User{
		UserID:        "u1",
		Email:         "member@example.com",
		EmailVerified: true,
		Name:          "Ana Souza",
		Role:          domain.RoleStudent,
		City:          "London",
		Country:       "UK",
		IsActive:      true,
	}
}

func (suite *UserServiceTestSuite) TestListUsers_NormalizesPagination() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, mock.MatchedBy(func(f portsrepo.ListUsersFilter) bool {
		return f.Limit == 12 && f.Offset == 0 && f.Search == "ana"
	})).Return([]domain.User{*suite.storedUser()}, int64(25), nil).Once()

	users, meta, err := suite.service.ListUsers(ctx, dto.ListUsersParams{Search: "ana", Page: 0, Limit: 0})

	suite.Require().NoError(err)
	suite.Len(users, 1)
	suite.Equal(1, meta.Page)
	suite.Equal(12, meta.Limit)
	suite.Equal(int64(25), meta.Total)
	suite.Equal(3, meta.TotalPages)
}

func (suite *UserServiceTestSuite) TestListUsers_CapsOversizedLimit() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, mock.MatchedBy(func(f portsrepo.ListUsersFilter) bool {
		return f.Limit == 50 && f.Offset == 50
	})).Return([]domain.User{}, int64(0), nil).Once()

	_, meta, err := suite.service.ListUsers(ctx, dto.ListUsersParams{Page: 2, Limit: 500})

	suite.Require().NoError(err)
	suite.Equal(50, meta.Limit)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_PartialUpdate() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(suite.storedUser(), nil).Once()
	suite.mockUserRepo.On("UpdateUserProfile", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.City == "Manchester" && u.Name == "Ana Souza" && u.EmailVerified
	})).Return(nil).Once()

	city := "Manchester"
	user, emailChanged, err := suite.service.UpdateUserProfile(ctx, "u1", dto.UpdateUserRequest{City: &city})

	suite.Require().NoError(err)
	suite.False(emailChanged)
	suite.Equal("Manchester", user.City)
	suite.mockMailer.AssertNotCalled(suite.T(), "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_EmailChangeTriggersReverification() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(suite.storedUser(), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("UpdateUserProfile", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "new@example.com" &&
			!u.EmailVerified &&
			u.VerificationToken != "" &&
			u.VerificationTokenExpires != nil
	})).Return(nil).Once()
	suite.mockMailer.On("SendVerificationEmail", ctx, "new@example.com", mock.AnythingOfType("string")).Return(nil).Once()

	email := "New@Example.com"
	user, emailChanged, err := suite.service.UpdateUserProfile(ctx, "u1", dto.UpdateUserRequest{Email: &email})

	suite.Require().NoError(err)
	suite.True(emailChanged)
	suite.Equal("new@example.com", user.Email)
	suite.False(user.EmailVerified)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateProfile_SameEmailIsNotAChange() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(suite.storedUser(), nil).Once()
	suite.mockUserRepo.On("UpdateUserProfile", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.EmailVerified
	})).Return(nil).Once()

	email := "Member@Example.com" // same address, different case
	_, emailChanged, err := suite.service.UpdateUserProfile(ctx, "u1", dto.UpdateUserRequest{Email: &email})

	suite.Require().NoError(err)
	suite.False(emailChanged)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByEmail", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_EmailTaken() {
	ctx := context.Background()
	other := &domain.User{UserID: "u2", Email: "new@example.com"}
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(suite.storedUser(), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(other, nil).Once()

	email := "new@example.com"
	_, _, err := suite.service.UpdateUserProfile(ctx, "u1", dto.UpdateUserRequest{Email: &email})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUserProfile", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_InvalidRole() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(suite.storedUser(), nil).Once()

	role := "emperor"
	_, _, err := suite.service.UpdateUserProfile(ctx, "u1", dto.UpdateUserRequest{Role: &role})

	suite.Require().Error(err)
}

func (suite *UserServiceTestSuite) TestDeactivateUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("DeactivateUser", ctx, "u1").Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, "u1")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
