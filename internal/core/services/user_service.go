package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/platform/config"
	"github.com/julianojcs/ibs/internal/utils"
	"github.com/julianojcs/ibs/internal/utils/pagination"
)

const (
	defaultUserPageSize = 12
	maxUserPageSize     = 50
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
	mailer   portssvc.MailerSvc
	cfg      *config.Config
}

// NewUserService creates the directory and profile service.
func NewUserService(userRepo portsrepo.UserRepository, mailer portssvc.MailerSvc, cfg *config.Config) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, pagination.Meta, error) {
	page, limit := pagination.Normalize(params.Page, params.Limit, defaultUserPageSize, maxUserPageSize)

	filter := portsrepo.ListUsersFilter{
		Search:     params.Search,
		CourseName: params.CourseName,
		Country:    params.Country,
		Role:       params.Role,
		Limit:      limit,
		Offset:     pagination.Offset(page, limit),
	}

	users, total, err := s.userRepo.FindUsers(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, pagination.NewMeta(page, limit, total), nil
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to find user for update: %w", err)
	}

	emailChanged := false
	var verificationToken string
	if req.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*req.Email))
		if newEmail != user.Email {
			if _, err := s.userRepo.FindUserByEmail(ctx, newEmail); err == nil {
				return nil, false, apperrors.ErrDuplicate
			} else if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, false, fmt.Errorf("failed to check email availability: %w", err)
			}

			verificationToken, err = utils.GenerateSecureRandomString(opaqueTokenBytes)
			if err != nil {
				return nil, false, fmt.Errorf("failed to generate verification token: %w", err)
			}
			expires := time.Now().Add(s.cfg.VerificationTokenTTL)

			// The new address must be proven before it counts as verified.
			user.Email = newEmail
			user.EmailVerified = false
			user.VerificationToken = verificationToken
			user.VerificationTokenExpires = &expires
			emailChanged = true
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.IsValid() {
			return nil, false, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", *req.Role))
		}
		user.Role = role
	}
	if req.CourseName != nil {
		user.CourseName = *req.CourseName
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.WhatsApp != nil {
		user.WhatsApp = *req.WhatsApp
	}
	if req.LinkedIn != nil {
		user.LinkedIn = *req.LinkedIn
	}
	if req.Instagram != nil {
		user.Instagram = *req.Instagram
	}
	if req.GitHub != nil {
		user.GitHub = *req.GitHub
	}
	if req.Twitter != nil {
		user.Twitter = *req.Twitter
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUserProfile(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, false, apperrors.ErrDuplicate
		}
		return nil, false, fmt.Errorf("failed to update user profile: %w", err)
	}

	if emailChanged {
		if err := s.mailer.SendVerificationEmail(ctx, user.Email, verificationToken); err != nil {
			s.LogError(ctx, err, "failed to send verification email after address change",
				slog.String("user_id", user.UserID))
		}
	}

	return user, emailChanged, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, avatarURL string) error {
	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeactivateUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	s.LogInfo(ctx, "user deactivated", slog.String("user_id", userID))
	return nil
}
