package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/utils/pagination"
)

const (
	defaultPhotoPageSize = 20
	maxPhotoPageSize     = 100
)

type photoService struct {
	BaseService
	photoRepo portsrepo.PhotoRepository
	images    portssvc.ImageStorageSvc
}

// NewPhotoService creates the gallery service.
func NewPhotoService(photoRepo portsrepo.PhotoRepository, images portssvc.ImageStorageSvc) portssvc.PhotoSvcFacade {
	return &photoService{
		photoRepo: photoRepo,
		images:    images,
	}
}

func (s *photoService) CreatePhoto(ctx context.Context, uploaderID string, req dto.CreatePhotoRequest) (*domain.Photo, error) {
	var takenAt *time.Time
	if req.TakenAt != "" {
		t, err := time.Parse(time.RFC3339, req.TakenAt)
		if err != nil {
			return nil, apperrors.NewValidationError("takenAt must be an RFC 3339 timestamp")
		}
		takenAt = &t
	}

	now := time.Now()
	photo := domain.Photo{
		PhotoID:       uuid.NewString(),
		UploadedBy:    uploaderID,
		URL:           req.URL,
		PublicID:      req.PublicID,
		ThumbnailURL:  req.ThumbnailURL,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		TakenAt:       takenAt,
		TaggedUserIDs: req.TaggedUserIDs,
		IsPublic:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.photoRepo.CreatePhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	created, err := s.photoRepo.FindPhotoByID(ctx, photo.PhotoID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload created photo: %w", err)
	}
	s.LogInfo(ctx, "photo created",
		slog.String("photo_id", photo.PhotoID), slog.String("uploaded_by", uploaderID))
	return created, nil
}

func (s *photoService) GetPhoto(ctx context.Context, photoID string) (*domain.Photo, error) {
	photo, err := s.photoRepo.FindPhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, nil
}

func (s *photoService) ListPhotos(ctx context.Context, params dto.ListPhotosParams) ([]domain.Photo, pagination.Meta, error) {
	page, limit := pagination.Normalize(params.Page, params.Limit, defaultPhotoPageSize, maxPhotoPageSize)

	filter := portsrepo.ListPhotosFilter{
		UploadedBy: params.UserID,
		Search:     params.Search,
		Limit:      limit,
		Offset:     pagination.Offset(page, limit),
	}

	photos, total, err := s.photoRepo.FindPhotos(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, pagination.NewMeta(page, limit, total), nil
}

// ToggleLike flips the caller's like. The store's set semantics make the
// add/remove safe to race; the read only decides the direction.
func (s *photoService) ToggleLike(ctx context.Context, photoID, userID string) (*domain.Photo, bool, error) {
	photo, err := s.photoRepo.FindPhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to find photo for like toggle: %w", err)
	}

	liked := !photo.LikedByUser(userID)
	if liked {
		err = s.photoRepo.AddLike(ctx, photoID, userID)
	} else {
		err = s.photoRepo.RemoveLike(ctx, photoID, userID)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to toggle like: %w", err)
	}

	updated, err := s.photoRepo.FindPhotoByID(ctx, photoID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload photo after like toggle: %w", err)
	}
	return updated, liked, nil
}

func (s *photoService) UpdateTags(ctx context.Context, photoID string, actor *domain.SessionClaims, taggedUserIDs []string) (*domain.Photo, error) {
	photo, err := s.photoRepo.FindPhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find photo for tag update: %w", err)
	}

	if photo.UploadedBy != actor.UserID && !actor.IsCoordinator() {
		return nil, apperrors.ErrForbidden
	}

	if err := s.photoRepo.ReplaceTags(ctx, photoID, taggedUserIDs); err != nil {
		return nil, fmt.Errorf("failed to replace tags: %w", err)
	}

	updated, err := s.photoRepo.FindPhotoByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload photo after tag update: %w", err)
	}
	return updated, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, photoID string, actor *domain.SessionClaims) error {
	photo, err := s.photoRepo.FindPhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to find photo for deletion: %w", err)
	}

	if photo.UploadedBy != actor.UserID && !actor.IsCoordinator() {
		return apperrors.ErrForbidden
	}

	// Destroy the hosted asset first; the record is only removed once the
	// asset is gone so a failure never strands an unreachable image.
	if err := s.images.DeleteImage(ctx, photo.PublicID); err != nil {
		return fmt.Errorf("failed to delete hosted asset: %w", err)
	}
	if err := s.photoRepo.DeletePhoto(ctx, photoID); err != nil {
		return fmt.Errorf("failed to delete photo record: %w", err)
	}

	s.LogInfo(ctx, "photo deleted",
		slog.String("photo_id", photoID), slog.String("deleted_by", actor.UserID))
	return nil
}
