package images

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/platform/config"
)

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates the Cloudinary-backed image store from the
// CLOUDINARY_URL credential string.
func NewCloudinaryStorage(cfg *config.Config) (portssvc.ImageStorageSvc, error) {
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &cloudinaryStorage{cld: cld, folder: cfg.CloudinaryFolder}, nil
}

var _ portssvc.ImageStorageSvc = (*cloudinaryStorage)(nil)

// UploadGalleryImage stores a gallery image capped to 1920x1080.
func (s *cloudinaryStorage) UploadGalleryImage(ctx context.Context, file io.Reader) (*portssvc.UploadResult, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         s.folder + "/gallery",
		Transformation: "c_limit,w_1920,h_1080,q_auto",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload gallery image: %w", err)
	}
	return &portssvc.UploadResult{
		URL:          resp.SecureURL,
		PublicID:     resp.PublicID,
		ThumbnailURL: s.thumbnailURL(resp.PublicID),
	}, nil
}

// UploadAvatar stores under a deterministic per-user public id so a
// re-upload replaces the previous avatar in place.
func (s *cloudinaryStorage) UploadAvatar(ctx context.Context, file io.Reader, userID string) (*portssvc.UploadResult, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         s.folder + "/avatars",
		PublicID:       userID,
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
		Transformation: "c_fill,g_face,w_400,h_400,q_auto",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}
	return &portssvc.UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

func (s *cloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to destroy asset %s: %w", publicID, err)
	}
	return nil
}

func (s *cloudinaryStorage) thumbnailURL(publicID string) string {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return ""
	}
	img.Transformation = "c_fill,w_400,h_300,q_auto"
	url, err := img.String()
	if err != nil {
		return ""
	}
	return url
}
