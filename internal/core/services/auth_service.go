package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/platform/config"
	"github.com/julianojcs/ibs/internal/utils"
)

// opaque verification/reset tokens: 32 bytes -> 64 char hex string
const opaqueTokenBytes = 32

type authService struct {
	BaseService
	userRepo portsrepo.UserRepository
	mailer   portssvc.MailerSvc
	cfg      *config.Config
}

// NewAuthService creates the registration / credential / token-lifecycle
// service.
func NewAuthService(userRepo portsrepo.UserRepository, mailer portssvc.MailerSvc, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicate
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := utils.GenerateSecureRandomString(opaqueTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	now := time.Now()
	expires := now.Add(s.cfg.VerificationTokenTTL)
	user := domain.User{
		UserID:                   uuid.NewString(),
		Email:                    email,
		PasswordHash:             hash,
		EmailVerified:            false,
		VerificationToken:        token,
		VerificationTokenExpires: &expires,
		Name:                     req.Name,
		Role:                     domain.RoleStudent,
		CourseName:               req.CourseName,
		City:                     req.City,
		Country:                  req.Country,
		Company:                  req.Company,
		Bio:                      req.Bio,
		Twitter:                  req.Twitter,
		IsActive:                 true,
		ProfileCompleted:         true,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Registration succeeds even when the mail does not go out; the user can
	// request a resend.
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, token); err != nil {
		s.LogError(ctx, err, "failed to send verification email", slog.String("user_id", user.UserID))
	}

	s.LogInfo(ctx, "user registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *authService) CheckCredentials(ctx context.Context, email, password string) (portssvc.CredentialStatus, *domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return portssvc.CredentialInvalid, nil, nil
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasPassword() {
		if user.GoogleID != "" {
			return portssvc.CredentialExternalAccount, nil, nil
		}
		return portssvc.CredentialInvalid, nil, nil
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return portssvc.CredentialInvalid, nil, nil
	}
	if !user.EmailVerified {
		return portssvc.CredentialEmailNotVerified, nil, nil
	}
	if !user.IsActive {
		return portssvc.CredentialAccountDeactivated, nil, nil
	}

	return portssvc.CredentialOK, user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}
	s.LogInfo(ctx, "email verified", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same outward response whether or not the account exists.
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.EmailVerified {
		return nil
	}

	token, err := utils.GenerateSecureRandomString(opaqueTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	expires := time.Now().Add(s.cfg.VerificationTokenTTL)
	if err := s.userRepo.SetVerificationToken(ctx, user.UserID, token, expires); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, token); err != nil {
		s.LogError(ctx, err, "failed to send verification email", slog.String("user_id", user.UserID))
	}
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.HasPassword() {
		// Google-only account, nothing to reset.
		return nil
	}

	token, err := utils.GenerateSecureRandomString(opaqueTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expires := time.Now().Add(s.cfg.ResetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.UserID, token, expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		s.LogError(ctx, err, "failed to send password reset email", slog.String("user_id", user.UserID))
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	user, err := s.userRepo.ConsumeResetToken(ctx, token, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	s.LogInfo(ctx, "password reset", slog.String("user_id", user.UserID))
	return nil
}

func (s *authService) CompleteProfile(ctx context.Context, req dto.CompleteProfileRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicate
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	role := domain.RoleStudent
	if req.Role != "" {
		role = domain.UserRole(req.Role)
		if !role.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", req.Role))
		}
	}

	now := time.Now()
	// Google already verified the address; the account starts verified and
	// without a password.
	user := domain.User{
		UserID:           uuid.NewString(),
		Email:            email,
		EmailVerified:    true,
		Name:             req.Name,
		Avatar:           req.Avatar,
		Role:             role,
		CourseName:       req.CourseName,
		City:             req.City,
		Country:          req.Country,
		GoogleID:         req.GoogleID,
		IsActive:         true,
		ProfileCompleted: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "profile completed for external identity", slog.String("user_id", user.UserID))
	return &user, nil
}
