package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/core/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PhotoServiceTestSuite struct {
	suite.Suite
	mockPhotoRepo *MockPhotoRepository
	mockImages    *MockImageStorage
	service       portssvc.PhotoSvcFacade
}

func (suite *PhotoServiceTestSuite) SetupTest() {
	suite.mockPhotoRepo = new(MockPhotoRepository)
	suite.mockImages = new(MockImageStorage)
	suite.service = services.NewPhotoService(suite.mockPhotoRepo, suite.mockImages)
}

func (suite *PhotoServiceTestSuite) galleryPhoto(likedBy ...string) *domain.Photo {
	return &domain.Photo{
		PhotoID:    "p1",
		UploadedBy: "owner",
		URL:        "https://img.example.com/p1",
		PublicID:   "gallery/p1",
		IsPublic:   true,
		LikedByIDs: likedBy,
	}
}

func (suite *PhotoServiceTestSuite) TestCreatePhoto_RejectsBadTimestamp() {
	ctx := context.Background()

	photo, err := suite.service.CreatePhoto(ctx, "owner", dto.CreatePhotoRequest{
		URL: "https://img.example.com/p1", PublicID: "gallery/p1", TakenAt: "last tuesday",
	})

	suite.Require().Error(err)
	suite.Nil(photo)
	suite.mockPhotoRepo.AssertNotCalled(suite.T(), "CreatePhoto", mock.Anything, mock.Anything)
}

func (suite *PhotoServiceTestSuite) TestCreatePhoto_Success() {
	ctx := context.Background()
	suite.mockPhotoRepo.On("CreatePhoto", ctx, mock.MatchedBy(func(p domain.Photo) bool {
		return p.UploadedBy == "owner" && p.IsPublic && p.PhotoID != ""
	})).Return(nil).Once()
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, mock.AnythingOfType("string")).Return(suite.galleryPhoto(), nil).Once()

	photo, err := suite.service.CreatePhoto(ctx, "owner", dto.CreatePhotoRequest{
		URL: "https://img.example.com/p1", PublicID: "gallery/p1", Title: "Graduation day",
	})

	suite.Require().NoError(err)
	suite.NotNil(photo)
	suite.mockPhotoRepo.AssertExpectations(suite.T())
}

func (suite *PhotoServiceTestSuite) TestToggleLike_AddsWhenAbsent() {
	ctx := context.Background()
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()
	suite.mockPhotoRepo.On("AddLike", ctx, "p1", "viewer").Return(nil).Once()
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto("viewer"), nil).Once()

	photo, liked, err := suite.service.ToggleLike(ctx, "p1", "viewer")

	suite.Require().NoError(err)
	suite.True(liked)
	suite.True(photo.LikedByUser("viewer"))
	suite.mockPhotoRepo.AssertNotCalled(suite.T(), "RemoveLike", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PhotoServiceTestSuite) TestToggleLike_RemovesWhenPresent() {
	ctx := context.Background()
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto("viewer"), nil).Once()
	suite.mockPhotoRepo.On("RemoveLike", ctx, "p1", "viewer").Return(nil).Once()
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()

	photo, liked, err := suite.service.ToggleLike(ctx, "p1", "viewer")

	suite.Require().NoError(err)
	suite.False(liked)
	suite.False(photo.LikedByUser("viewer"))
	suite.mockPhotoRepo.AssertNotCalled(suite.T(), "AddLike", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PhotoServiceTestSuite) TestToggleLike_UnknownPhoto() {
	ctx := context.Background()
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.ToggleLike(ctx, "ghost", "viewer")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PhotoServiceTestSuite) TestDeletePhoto_OwnerDestroysAssetThenRecord() {
	ctx := context.Background()
	actor := &domain.SessionClaims{UserID: "owner", Role: domain.RoleStudent}
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()
	suite.mockImages.On("DeleteImage", ctx, "gallery/p1").Return(nil).Once()
	suite.mockPhotoRepo.On("DeletePhoto", ctx, "p1").Return(nil).Once()

	err := suite.service.DeletePhoto(ctx, "p1", actor)

	suite.Require().NoError(err)
	suite.mockImages.AssertExpectations(suite.T())
	suite.mockPhotoRepo.AssertExpectations(suite.T())
}

func (suite *PhotoServiceTestSuite) TestDeletePhoto_CoordinatorMayDeleteAny() {
	ctx := context.Background()
	actor := &domain.SessionClaims{UserID: "someone-else", Role: domain.RoleCoordinator}
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()
	suite.mockImages.On("DeleteImage", ctx, "gallery/p1").Return(nil).Once()
	suite.mockPhotoRepo.On("DeletePhoto", ctx, "p1").Return(nil).Once()

	err := suite.service.DeletePhoto(ctx, "p1", actor)

	suite.Require().NoError(err)
}

func (suite *PhotoServiceTestSuite) TestDeletePhoto_StrangerForbidden() {
	ctx := context.Background()
	actor := &domain.SessionClaims{UserID: "stranger", Role: domain.RoleStudent}
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()

	err := suite.service.DeletePhoto(ctx, "p1", actor)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockImages.AssertNotCalled(suite.T(), "DeleteImage", mock.Anything, mock.Anything)
	suite.mockPhotoRepo.AssertNotCalled(suite.T(), "DeletePhoto", mock.Anything, mock.Anything)
}

func (suite *PhotoServiceTestSuite) TestDeletePhoto_AssetFailureKeepsRecord() {
	ctx := context.Background()
	actor := &domain.SessionClaims{UserID: "owner", Role: domain.RoleStudent}
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()
	suite.mockImages.On("DeleteImage", ctx, "gallery/p1").Return(errors.New("cloudinary unavailable")).Once()

	err := suite.service.DeletePhoto(ctx, "p1", actor)

	suite.Require().Error(err)
	suite.mockPhotoRepo.AssertNotCalled(suite.T(), "DeletePhoto", mock.Anything, mock.Anything)
}

func (suite *PhotoServiceTestSuite) TestUpdateTags_OwnerReplaces() {
	ctx := context.Background()
	actor := &domain.SessionClaims{UserID: "owner", Role: domain.RoleStudent}
	tagged := suite.galleryPhoto()
	tagged.TaggedUserIDs = []string{"u2", "u3"}
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()
	suite.mockPhotoRepo.On("ReplaceTags", ctx, "p1", []string{"u2", "u3"}).Return(nil).Once()
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(tagged, nil).Once()

	photo, err := suite.service.UpdateTags(ctx, "p1", actor, []string{"u2", "u3"})

	suite.Require().NoError(err)
	suite.Equal([]string{"u2", "u3"}, photo.TaggedUserIDs)
}

func (suite *PhotoServiceTestSuite) TestUpdateTags_StrangerForbidden() {
	ctx := context.Background()
	actor := &domain.SessionClaims{UserID: "stranger", Role: domain.RoleStudent}
	suite.mockPhotoRepo.On("FindPhotoByID", ctx, "p1").Return(suite.galleryPhoto(), nil).Once()

	_, err := suite.service.UpdateTags(ctx, "p1", actor, []string{"u2"})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPhotoRepo.AssertNotCalled(suite.T(), "ReplaceTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestPhotoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PhotoServiceTestSuite))
}
