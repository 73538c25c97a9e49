package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`

	EmailVerified            bool           `db:"email_verified"`
	VerificationToken        sql.NullString `db:"verification_token"`
	VerificationTokenExpires sql.NullTime   `db:"verification_token_expires"`
	ResetToken               sql.NullString `db:"reset_token"`
	ResetTokenExpires        sql.NullTime   `db:"reset_token_expires"`

	Name       string         `db:"name"`
	Avatar     sql.NullString `db:"avatar"`
	Role       string         `db:"role"`
	CourseName sql.NullString `db:"course_name"`
	City       sql.NullString `db:"city"`
	Country    sql.NullString `db:"country"`

	WhatsApp  sql.NullString `db:"whatsapp"`
	LinkedIn  sql.NullString `db:"linkedin"`
	Instagram sql.NullString `db:"instagram"`
	GitHub    sql.NullString `db:"github"`
	Twitter   sql.NullString `db:"twitter"`
	Bio       sql.NullString `db:"bio"`
	Company   sql.NullString `db:"company"`

	GoogleID         sql.NullString `db:"google_id"`
	IsActive         bool           `db:"is_active"`
	ProfileCompleted bool           `db:"profile_completed"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
