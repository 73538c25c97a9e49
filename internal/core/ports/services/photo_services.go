package services

import (
	"context"

	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/utils/pagination"
)

// PhotoSvcFacade covers the gallery: uploads metadata, paginated reads, the
// like toggle, tag updates and deletion.
type PhotoSvcFacade interface {
	CreatePhoto(ctx context.Context, uploaderID string, req dto.CreatePhotoRequest) (*domain.Photo, error)
	GetPhoto(ctx context.Context, photoID string) (*domain.Photo, error)
	ListPhotos(ctx context.Context, params dto.ListPhotosParams) ([]domain.Photo, pagination.Meta, error)

	// ToggleLike flips the caller's membership in the like set and returns
	// the reloaded photo plus the new state.
	ToggleLike(ctx context.Context, photoID, userID string) (*domain.Photo, bool, error)

	UpdateTags(ctx context.Context, photoID string, actor *domain.SessionClaims, taggedUserIDs []string) (*domain.Photo, error)

	// DeletePhoto removes the record and destroys the backing hosted asset.
	// Only the owner or a coordinator may delete.
	DeletePhoto(ctx context.Context, photoID string, actor *domain.SessionClaims) error
}

// CourseSvcFacade reads the course catalog.
type CourseSvcFacade interface {
	ListCourses(ctx context.Context) ([]domain.Course, error)
}
