package repositories

import (
	"context"
	"time"

	"github.com/julianojcs/ibs/internal/core/domain"
)

// ListUsersFilter narrows directory queries.
type ListUsersFilter struct {
	Search     string // free-text over name
	CourseName string
	Country    string
	Role       string
	Limit      int
	Offset     int
}

// UserRepository persists user records.
//
// Token consumption is atomic at the store: a conditional update matches the
// stored token and a future expiry, clears both fields and returns the owner
// in one statement, which is what makes tokens single-use without any
// application-level locking.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error // apperrors.ErrDuplicate on email/google_id collision
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error) // email compared lowercase
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	FindUsers(ctx context.Context, filter ListUsersFilter) ([]domain.User, int64, error)

	UpdateUserProfile(ctx context.Context, user domain.User) error
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) error
	DeactivateUser(ctx context.Context, userID string) error

	SetVerificationToken(ctx context.Context, userID string, token string, expires time.Time) error
	// ConsumeVerificationToken flips email_verified and clears the token
	// iff the token matches and has not expired. apperrors.ErrNotFound for
	// unknown and expired tokens alike.
	ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error)

	SetResetToken(ctx context.Context, userID string, token string, expires time.Time) error
	// ConsumeResetToken installs the new password hash and clears the token
	// under the same match-and-not-expired condition.
	ConsumeResetToken(ctx context.Context, token string, newPasswordHash string) (*domain.User, error)

	LinkGoogleAccount(ctx context.Context, userID string, googleID string) error
}
