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

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, password_hash, email_verified,
	verification_token, verification_token_expires, reset_token, reset_token_expires,
	name, avatar, role, course_name, city, country,
	whatsapp, linkedin, instagram, github, twitter, bio, company,
	google_id, is_active, profile_completed, created_at, updated_at`

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:                   d.UserID,
		Email:                    strings.ToLower(d.Email),
		PasswordHash:             nullString(d.PasswordHash),
		EmailVerified:            d.EmailVerified,
		VerificationToken:        nullString(d.VerificationToken),
		VerificationTokenExpires: nullTime(d.VerificationTokenExpires),
		ResetToken:               nullString(d.ResetToken),
		ResetTokenExpires:        nullTime(d.ResetTokenExpires),
		Name:                     d.Name,
		Avatar:                   nullString(d.Avatar),
		Role:                     string(d.Role),
		CourseName:               nullString(d.CourseName),
		City:                     nullString(d.City),
		Country:                  nullString(d.Country),
		WhatsApp:                 nullString(d.WhatsApp),
		LinkedIn:                 nullString(d.LinkedIn),
		Instagram:                nullString(d.Instagram),
		GitHub:                   nullString(d.GitHub),
		Twitter:                  nullString(d.Twitter),
		Bio:                      nullString(d.Bio),
		Company:                  nullString(d.Company),
		GoogleID:                 nullString(d.GoogleID),
		IsActive:                 d.IsActive,
		ProfileCompleted:         d.ProfileCompleted,
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:           m.UserID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash.String,
		EmailVerified:    m.EmailVerified,
		Name:             m.Name,
		Avatar:           m.Avatar.String,
		Role:             domain.UserRole(m.Role),
		CourseName:       m.CourseName.String,
		City:             m.City.String,
		Country:          m.Country.String,
		WhatsApp:         m.WhatsApp.String,
		LinkedIn:         m.LinkedIn.String,
		Instagram:        m.Instagram.String,
		GitHub:           m.GitHub.String,
		Twitter:          m.Twitter.String,
		Bio:              m.Bio.String,
		Company:          m.Company.String,
		GoogleID:         m.GoogleID.String,
		IsActive:         m.IsActive,
		ProfileCompleted: m.ProfileCompleted,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	d.VerificationToken = m.VerificationToken.String
	if m.VerificationTokenExpires.Valid {
		t := m.VerificationTokenExpires.Time
		d.VerificationTokenExpires = &t
	}
	d.ResetToken = m.ResetToken.String
	if m.ResetTokenExpires.Valid {
		t := m.ResetTokenExpires.Time
		d.ResetTokenExpires = &t
	}
	return d
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Email, &m.PasswordHash, &m.EmailVerified,
		&m.VerificationToken, &m.VerificationTokenExpires, &m.ResetToken, &m.ResetTokenExpires,
		&m.Name, &m.Avatar, &m.Role, &m.CourseName, &m.City, &m.Country,
		&m.WhatsApp, &m.LinkedIn, &m.Instagram, &m.GitHub, &m.Twitter, &m.Bio, &m.Company,
		&m.GoogleID, &m.IsActive, &m.ProfileCompleted, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	d := toDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
                $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID, m.Email, m.PasswordHash, m.EmailVerified,
		m.VerificationToken, m.VerificationTokenExpires, m.ResetToken, m.ResetTokenExpires,
		m.Name, m.Avatar, m.Role, m.CourseName, m.City, m.Country,
		m.WhatsApp, m.LinkedIn, m.Instagram, m.GitHub, m.Twitter, m.Bio, m.Company,
		m.GoogleID, m.IsActive, m.ProfileCompleted, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1);`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by google ID: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, filter portsrepo.ListUsersFilter) ([]domain.User, int64, error) {
	conditions := []string{"is_active = TRUE"}
	args := []any{}

	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"to_tsvector('simple', name) @@ plainto_tsquery('simple', %s)", addArg(filter.Search)))
	}
	if filter.CourseName != "" {
		conditions = append(conditions, "course_name = "+addArg(filter.CourseName))
	}
	if filter.Country != "" {
		conditions = append(conditions, "country = "+addArg(filter.Country))
	}
	if filter.Role != "" {
		conditions = append(conditions, "role = "+addArg(filter.Role))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT count(*) FROM users WHERE " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := "SELECT " + userColumns + " FROM users WHERE " + where +
		" ORDER BY name ASC LIMIT " + addArg(filter.Limit) + " OFFSET " + addArg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return users, total, nil
}

func (r *PgxUserRepository) UpdateUserProfile(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        UPDATE users
        SET email = $1, email_verified = $2,
            verification_token = $3, verification_token_expires = $4,
            name = $5, role = $6, course_name = $7, city = $8, country = $9,
            whatsapp = $10, linkedin = $11, instagram = $12, github = $13, twitter = $14,
            bio = $15, company = $16, profile_completed = $17, updated_at = $18
        WHERE user_id = $19;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Email, m.EmailVerified,
		m.VerificationToken, m.VerificationTokenExpires,
		m.Name, m.Role, m.CourseName, m.City, m.Country,
		m.WhatsApp, m.LinkedIn, m.Instagram, m.GitHub, m.Twitter,
		m.Bio, m.Company, m.ProfileCompleted, time.Now(),
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string) error {
	query := `UPDATE users SET avatar = $1, updated_at = now() WHERE user_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeactivateUser(ctx context.Context, userID string) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = now() WHERE user_id = $1 AND is_active = TRUE;`
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetVerificationToken(ctx context.Context, userID string, token string, expires time.Time) error {
	// Overwrites any prior pending token for this purpose.
	query := `
        UPDATE users
        SET verification_token = $1, verification_token_expires = $2, updated_at = now()
        WHERE user_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, token, expires, userID)
	if err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ConsumeVerificationToken validates and consumes in one conditional update,
// so a token can never be accepted twice even under concurrent presentation.
func (r *PgxUserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
        UPDATE users
        SET email_verified = TRUE,
            verification_token = NULL, verification_token_expires = NULL,
            updated_at = now()
        WHERE verification_token = $1 AND verification_token_expires > now()
        RETURNING ` + userColumns + `;
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) SetResetToken(ctx context.Context, userID string, token string, expires time.Time) error {
	query := `
        UPDATE users
        SET reset_token = $1, reset_token_expires = $2, updated_at = now()
        WHERE user_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, token, expires, userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ConsumeResetToken(ctx context.Context, token string, newPasswordHash string) (*domain.User, error) {
	query := `
        UPDATE users
        SET password_hash = $2,
            reset_token = NULL, reset_token_expires = NULL,
            updated_at = now()
        WHERE reset_token = $1 AND reset_token_expires > now()
        RETURNING ` + userColumns + `;
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, token, newPasswordHash))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) LinkGoogleAccount(ctx context.Context, userID string, googleID string) error {
	query := `
        UPDATE users
        SET google_id = $1, email_verified = TRUE, updated_at = now()
        WHERE user_id = $2 AND google_id IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, googleID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to link google account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
