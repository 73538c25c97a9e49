package dto

import (
	"time"

	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/utils/pagination"
)

// UserSummaryResponse is the embedded uploader/tagged-user shape.
type UserSummaryResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// CreatePhotoRequest is the body of POST /api/photos. The image itself is
// uploaded first via POST /api/upload, which yields url and publicId.
type CreatePhotoRequest struct {
	URL           string   `json:"url" binding:"required"`
	PublicID      string   `json:"publicId" binding:"required"`
	ThumbnailURL  string   `json:"thumbnailUrl"`
	Title         string   `json:"title" binding:"max=100"`
	Description   string   `json:"description" binding:"max=500"`
	Location      string   `json:"location" binding:"max=100"`
	TakenAt       string   `json:"takenAt"` // RFC 3339, optional
	TaggedUserIDs []string `json:"taggedUserIDs"`
}

// PhotoResponse is the public shape of a gallery photo.
type PhotoResponse struct {
	PhotoID      string                `json:"photoID"`
	URL          string                `json:"url"`
	ThumbnailURL string                `json:"thumbnailUrl,omitempty"`
	Title        string                `json:"title,omitempty"`
	Description  string                `json:"description,omitempty"`
	Location     string                `json:"location,omitempty"`
	TakenAt      *time.Time            `json:"takenAt,omitempty"`
	IsPublic     bool                  `json:"isPublic"`
	Uploader     *UserSummaryResponse  `json:"uploadedBy,omitempty"`
	TaggedUsers  []UserSummaryResponse `json:"taggedUsers"`
	LikedBy      []UserSummaryResponse `json:"likes"`
	LikeCount    int                   `json:"likeCount"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ToPhotoResponse converts a domain.Photo to its response DTO.
func ToPhotoResponse(p *domain.Photo) PhotoResponse {
	resp := PhotoResponse{
		PhotoID:      p.PhotoID,
		URL:          p.URL,
		ThumbnailURL: p.ThumbnailURL,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		TakenAt:      p.TakenAt,
		IsPublic:     p.IsPublic,
		TaggedUsers:  toSummaries(p.TaggedUsers),
		LikedBy:      toSummaries(p.LikedBy),
		LikeCount:    len(p.LikedByIDs),
		CreatedAt:    p.CreatedAt,
	}
	if p.Uploader != nil {
		resp.Uploader = &UserSummaryResponse{UserID: p.Uploader.UserID, Name: p.Uploader.Name, Avatar: p.Uploader.Avatar}
	}
	return resp
}

func toSummaries(in []domain.UserSummary) []UserSummaryResponse {
	out := make([]UserSummaryResponse, len(in))
	for i, s := range in {
		out[i] = UserSummaryResponse{UserID: s.UserID, Name: s.Name, Avatar: s.Avatar}
	}
	return out
}

// ListPhotosParams are the query parameters of GET /api/photos.
type ListPhotosParams struct {
	UserID string `form:"userId"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// ListPhotosResponse wraps a gallery page.
type ListPhotosResponse struct {
	Photos     []PhotoResponse `json:"photos"`
	Pagination pagination.Meta `json:"pagination"`
}

// ToListPhotosResponse converts a page of domain photos.
func ToListPhotosResponse(photos []domain.Photo, meta pagination.Meta) ListPhotosResponse {
	photoResponses := make([]PhotoResponse, len(photos))
	for i := range photos {
		photoResponses[i] = ToPhotoResponse(&photos[i])
	}
	return ListPhotosResponse{Photos: photoResponses, Pagination: meta}
}

// LikeResponse reports the new like state after a toggle.
type LikeResponse struct {
	Photo   PhotoResponse `json:"photo"`
	Liked   bool          `json:"liked"`
	Message string        `json:"message"`
}

// UpdateTagsRequest replaces a photo's tagged-user set.
type UpdateTagsRequest struct {
	TaggedUserIDs []string `json:"taggedUserIDs" binding:"required"`
}

// CreatePhotoResponse wraps the stored photo.
type CreatePhotoResponse struct {
	Photo   PhotoResponse `json:"photo"`
	Message string        `json:"message"`
}
