package repositories

import (
	"context"

	"github.com/julianojcs/ibs/internal/core/domain"
)

// ListPhotosFilter narrows gallery queries. Only public photos are listed.
type ListPhotosFilter struct {
	UploadedBy string
	Search     string // free-text over title/description/location
	Limit      int
	Offset     int
}

// PhotoRepository persists photos and their like/tag sets. Like membership
// is a set at the store (primary key on photo_id+user_id): AddLike is a
// no-op when the row exists, RemoveLike when it doesn't, so racing toggles
// from the same user cannot produce duplicate state.
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo domain.Photo) error
	FindPhotoByID(ctx context.Context, photoID string) (*domain.Photo, error)
	FindPhotos(ctx context.Context, filter ListPhotosFilter) ([]domain.Photo, int64, error)

	AddLike(ctx context.Context, photoID string, userID string) error
	RemoveLike(ctx context.Context, photoID string, userID string) error
	ReplaceTags(ctx context.Context, photoID string, userIDs []string) error

	DeletePhoto(ctx context.Context, photoID string) error
}
