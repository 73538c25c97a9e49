package domain

import "time"

// Photo is an uploaded gallery image backed by an asset on the image host.
//
// Likes are a set: a user reference appears at most once. Deleting a photo
// also destroys the backing hosted asset.
type Photo struct {
	PhotoID      string `json:"photoID"`
	UploadedBy   string `json:"uploadedBy"`
	URL          string `json:"url"`
	PublicID     string `json:"publicID"` // image host storage identifier
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`

	TaggedUserIDs []string `json:"taggedUserIDs"`
	LikedByIDs    []string `json:"likedByIDs"`
	IsPublic      bool     `json:"isPublic"`

	// Denormalized summaries, populated on reads only.
	Uploader    *UserSummary  `json:"uploader,omitempty"`
	TaggedUsers []UserSummary `json:"taggedUsers,omitempty"`
	LikedBy     []UserSummary `json:"likedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikedByUser reports whether userID is in the photo's like set.
func (p *Photo) LikedByUser(userID string) bool {
	for _, id := range p.LikedByIDs {
		if id == userID {
			return true
		}
	}
	return false
}
