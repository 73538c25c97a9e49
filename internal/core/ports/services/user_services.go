package services

import (
	"context"

	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/utils/pagination"
)

// UserSvcFacade covers directory reads and profile writes.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, pagination.Meta, error)

	// UpdateUserProfile applies a partial update. Changing the email resets
	// email_verified, issues a fresh verification token and sends the
	// verification mail; emailChanged reports that this happened.
	UpdateUserProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (user *domain.User, emailChanged bool, err error)

	UpdateAvatar(ctx context.Context, userID string, avatarURL string) error

	// DeactivateUser flips is_active off. Accounts are never hard-deleted.
	DeactivateUser(ctx context.Context, userID string) error
}
