package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
)

type accountLinkerService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewAccountLinkerService creates the external-identity reconciliation
// service.
func NewAccountLinkerService(userRepo portsrepo.UserRepository) portssvc.AccountLinkerSvcFacade {
	return &accountLinkerService{userRepo: userRepo}
}

// LinkGoogleIdentity resolves a verified Google identity against the local
// account base:
//   - already linked by subject id: sign in
//   - email matches an unlinked account: attach the subject id and mark the
//     address verified, then sign in
//   - no account: profile completion is required before one is created
func (s *accountLinkerService) LinkGoogleIdentity(ctx context.Context, info domain.GoogleUserInfo) (*portssvc.LinkResult, error) {
	user, err := s.userRepo.FindUserByGoogleID(ctx, info.ID)
	if err == nil {
		return &portssvc.LinkResult{User: user}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by google ID: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &portssvc.LinkResult{PendingCompletion: true}, nil
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if user.GoogleID != "" && user.GoogleID != info.ID {
		// The address belongs to an account already bound to a different
		// Google identity.
		return nil, apperrors.NewConflictError("email already linked to another google account")
	}

	if err := s.userRepo.LinkGoogleAccount(ctx, user.UserID, info.ID); err != nil {
		return nil, fmt.Errorf("failed to link google account: %w", err)
	}
	user.GoogleID = info.ID
	user.EmailVerified = true

	s.LogInfo(ctx, "linked google identity to existing account", slog.String("user_id", user.UserID))
	return &portssvc.LinkResult{User: user}, nil
}
