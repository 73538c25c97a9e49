package models

import (
	"database/sql"
	"time"
)

// Photo is the photos table row. Like and tag memberships live in the
// photo_likes and photo_tags join tables.
type Photo struct {
	PhotoID      string         `db:"photo_id"`
	UploadedBy   string         `db:"uploaded_by"`
	URL          string         `db:"url"`
	PublicID     string         `db:"public_id"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`

	Title       sql.NullString `db:"title"`
	Description sql.NullString `db:"description"`
	Location    sql.NullString `db:"location"`
	TakenAt     sql.NullTime   `db:"taken_at"`

	IsPublic  bool      `db:"is_public"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
