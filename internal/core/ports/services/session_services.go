package services

import (
	"context"
	"time"

	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/dto"
)

// SessionSvcFacade mints, refreshes and rehydrates signed session artifacts.
// Sessions have a fixed absolute lifetime; there is no sliding renewal.
type SessionSvcFacade interface {
	Mint(ctx context.Context, user *domain.User) (string, time.Time, error)

	// Refresh merges a partial profile update into the existing claims and
	// re-signs, without re-authentication. Every write path that touches a
	// denormalized field must push the same fields through here or the
	// session silently diverges from storage.
	Refresh(ctx context.Context, claims *domain.SessionClaims, update dto.UpdateUserRequest) (string, time.Time, error)

	// Rehydrate turns a presented artifact back into request-scoped claims.
	// Missing, malformed and expired artifacts all yield
	// apperrors.ErrUnauthorized.
	Rehydrate(ctx context.Context, token string) (*domain.SessionClaims, error)
}
