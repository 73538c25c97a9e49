package dto

// UploadResponse returns the hosted asset locations after POST /api/upload.
type UploadResponse struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Message      string `json:"message,omitempty"`
}
