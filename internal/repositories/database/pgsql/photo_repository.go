package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	"github.com/julianojcs/ibs/internal/models"
)

type PgxPhotoRepository struct {
	db *pgxpool.Pool
}

func NewPhotoRepository(db *pgxpool.Pool) portsrepo.PhotoRepository {
	return &PgxPhotoRepository{db: db}
}

var _ portsrepo.PhotoRepository = (*PgxPhotoRepository)(nil)

const photoColumns = `photo_id, uploaded_by, url, public_id, thumbnail_url,
	title, description, location, taken_at, is_public, created_at, updated_at`

func toDomainPhoto(m models.Photo) domain.Photo {
	d := domain.Photo{
		PhotoID:      m.PhotoID,
		UploadedBy:   m.UploadedBy,
		URL:          m.URL,
		PublicID:     m.PublicID,
		ThumbnailURL: m.ThumbnailURL.String,
		Title:        m.Title.String,
		Description:  m.Description.String,
		Location:     m.Location.String,
		IsPublic:     m.IsPublic,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.TakenAt.Valid {
		t := m.TakenAt.Time
		d.TakenAt = &t
	}
	return d
}

func scanPhoto(row pgx.Row) (*domain.Photo, error) {
	var m models.Photo
	err := row.Scan(
		&m.PhotoID, &m.UploadedBy, &m.URL, &m.PublicID, &m.ThumbnailURL,
		&m.Title, &m.Description, &m.Location, &m.TakenAt, &m.IsPublic,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	d := toDomainPhoto(m)
	return &d, nil
}

func (r *PgxPhotoRepository) CreatePhoto(ctx context.Context, photo domain.Photo) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var takenAt sql.NullTime
	if photo.TakenAt != nil {
		takenAt = sql.NullTime{Time: *photo.TakenAt, Valid: true}
	}

	query := `
        INSERT INTO photos (` + photoColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, query,
		photo.PhotoID, photo.UploadedBy, photo.URL, photo.PublicID, nullString(photo.ThumbnailURL),
		nullString(photo.Title), nullString(photo.Description), nullString(photo.Location),
		takenAt, photo.IsPublic, photo.CreatedAt, photo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create photo: %w", err)
	}

	if err := replaceTagsTx(ctx, tx, photo.PhotoID, photo.TaggedUserIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PgxPhotoRepository) FindPhotoByID(ctx context.Context, photoID string) (*domain.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE photo_id = $1;`
	photo, err := scanPhoto(r.db.QueryRow(ctx, query, photoID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find photo by ID %s: %w", photoID, err)
	}
	if err := r.populatePhotos(ctx, []*domain.Photo{photo}); err != nil {
		return nil, err
	}
	return photo, nil
}

func (r *PgxPhotoRepository) FindPhotos(ctx context.Context, filter portsrepo.ListPhotosFilter) ([]domain.Photo, int64, error) {
	conditions := []string{"is_public = TRUE"}
	args := []any{}

	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UploadedBy != "" {
		conditions = append(conditions, "uploaded_by = "+addArg(filter.UploadedBy))
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"to_tsvector('simple', coalesce(title, '') || ' ' || coalesce(description, '') || ' ' || coalesce(location, '')) @@ plainto_tsquery('simple', %s)",
			addArg(filter.Search)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT count(*) FROM photos WHERE " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count photos: %w", err)
	}

	query := "SELECT " + photoColumns + " FROM photos WHERE " + where +
		" ORDER BY created_at DESC LIMIT " + addArg(filter.Limit) + " OFFSET " + addArg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan photo row: %w", err)
		}
		photos = append(photos, *photo)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating photo rows: %w", rows.Err())
	}

	refs := make([]*domain.Photo, len(photos))
	for i := range photos {
		refs[i] = &photos[i]
	}
	if err := r.populatePhotos(ctx, refs); err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

// populatePhotos hydrates like and tag memberships plus the denormalized user
// summaries for a batch of photos with three queries total.
func (r *PgxPhotoRepository) populatePhotos(ctx context.Context, photos []*domain.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Photo, len(photos))
	photoIDs := make([]string, 0, len(photos))
	userIDSet := map[string]struct{}{}
	for _, p := range photos {
		p.TaggedUserIDs = []string{}
		p.LikedByIDs = []string{}
		byID[p.PhotoID] = p
		photoIDs = append(photoIDs, p.PhotoID)
		userIDSet[p.UploadedBy] = struct{}{}
	}

	likeRows, err := r.db.Query(ctx,
		`SELECT photo_id, user_id FROM photo_likes WHERE photo_id = ANY($1) ORDER BY liked_at ASC;`, photoIDs)
	if err != nil {
		return fmt.Errorf("failed to query photo likes: %w", err)
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var photoID, userID string
		if err := likeRows.Scan(&photoID, &userID); err != nil {
			return fmt.Errorf("failed to scan like row: %w", err)
		}
		if p, ok := byID[photoID]; ok {
			p.LikedByIDs = append(p.LikedByIDs, userID)
			userIDSet[userID] = struct{}{}
		}
	}
	if likeRows.Err() != nil {
		return fmt.Errorf("error iterating like rows: %w", likeRows.Err())
	}

	tagRows, err := r.db.Query(ctx,
		`SELECT photo_id, user_id FROM photo_tags WHERE photo_id = ANY($1);`, photoIDs)
	if err != nil {
		return fmt.Errorf("failed to query photo tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var photoID, userID string
		if err := tagRows.Scan(&photoID, &userID); err != nil {
			return fmt.Errorf("failed to scan tag row: %w", err)
		}
		if p, ok := byID[photoID]; ok {
			p.TaggedUserIDs = append(p.TaggedUserIDs, userID)
			userIDSet[userID] = struct{}{}
		}
	}
	if tagRows.Err() != nil {
		return fmt.Errorf("error iterating tag rows: %w", tagRows.Err())
	}

	userIDs := make([]string, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	summaries, err := r.findUserSummaries(ctx, userIDs)
	if err != nil {
		return err
	}

	for _, p := range photos {
		if s, ok := summaries[p.UploadedBy]; ok {
			uploader := s
			p.Uploader = &uploader
		}
		p.TaggedUsers = summariesFor(p.TaggedUserIDs, summaries)
		p.LikedBy = summariesFor(p.LikedByIDs, summaries)
	}
	return nil
}

func (r *PgxPhotoRepository) findUserSummaries(ctx context.Context, userIDs []string) (map[string]domain.UserSummary, error) {
	summaries := map[string]domain.UserSummary{}
	if len(userIDs) == 0 {
		return summaries, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT user_id, name, avatar FROM users WHERE user_id = ANY($1);`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query user summaries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.UserSummary
		var avatar sql.NullString
		if err := rows.Scan(&s.UserID, &s.Name, &avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		s.Avatar = avatar.String
		summaries[s.UserID] = s
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", rows.Err())
	}
	return summaries, nil
}

func summariesFor(ids []string, summaries map[string]domain.UserSummary) []domain.UserSummary {
	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := summaries[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *PgxPhotoRepository) AddLike(ctx context.Context, photoID string, userID string) error {
	query := `
        INSERT INTO photo_likes (photo_id, user_id, liked_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (photo_id, user_id) DO NOTHING;
    `
	_, err := r.db.Exec(ctx, query, photoID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (r *PgxPhotoRepository) RemoveLike(ctx context.Context, photoID string, userID string) error {
	query := `DELETE FROM photo_likes WHERE photo_id = $1 AND user_id = $2;`
	_, err := r.db.Exec(ctx, query, photoID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (r *PgxPhotoRepository) ReplaceTags(ctx context.Context, photoID string, userIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM photo_tags WHERE photo_id = $1;`, photoID); err != nil {
		return fmt.Errorf("failed to clear photo tags: %w", err)
	}
	if err := replaceTagsTx(ctx, tx, photoID, userIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func replaceTagsTx(ctx context.Context, tx pgx.Tx, photoID string, userIDs []string) error {
	for _, userID := range userIDs {
		_, err := tx.Exec(ctx, `
            INSERT INTO photo_tags (photo_id, user_id)
            VALUES ($1, $2)
            ON CONFLICT (photo_id, user_id) DO NOTHING;
        `, photoID, userID)
		if err != nil {
			return fmt.Errorf("failed to tag user %s: %w", userID, err)
		}
	}
	return nil
}

func (r *PgxPhotoRepository) DeletePhoto(ctx context.Context, photoID string) error {
	// photo_likes and photo_tags rows go with it via ON DELETE CASCADE.
	query := `DELETE FROM photos WHERE photo_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, photoID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
