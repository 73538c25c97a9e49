package services

import (
	"context"
	"io"
)

// MailerSvc sends transactional mail. Implementations are best-effort from
// the caller's point of view: registration succeeds even when the
// verification mail fails.
type MailerSvc interface {
	SendVerificationEmail(ctx context.Context, to string, token string) error
	SendPasswordResetEmail(ctx context.Context, to string, token string) error
}

// UploadResult is the hosted asset's addressable locations.
type UploadResult struct {
	URL          string
	PublicID     string
	ThumbnailURL string
}

// ImageStorageSvc talks to the external image host.
type ImageStorageSvc interface {
	UploadGalleryImage(ctx context.Context, file io.Reader) (*UploadResult, error)
	// UploadAvatar stores under a deterministic per-user public id so
	// re-uploads overwrite.
	UploadAvatar(ctx context.Context, file io.Reader, userID string) (*UploadResult, error)
	DeleteImage(ctx context.Context, publicID string) error
}
