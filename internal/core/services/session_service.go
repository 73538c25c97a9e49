package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/platform/config"
)

// sessionTokenClaims is the JWT payload. Profile fields are denormalized
// into the token so authenticated pages render without a store round-trip.
type sessionTokenClaims struct {
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar,omitempty"`
	CourseName    string `json:"courseName,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	WhatsApp      string `json:"whatsapp,omitempty"`
	LinkedIn      string `json:"linkedin,omitempty"`
	Instagram     string `json:"instagram,omitempty"`
	GitHub        string `json:"github,omitempty"`
	Twitter       string `json:"twitter,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Company       string `json:"company,omitempty"`
	jwt.RegisteredClaims
}

type sessionService struct {
	BaseService
	cfg *config.Config
}

// NewSessionService creates the signed-session service.
func NewSessionService(cfg *config.Config) portssvc.SessionSvcFacade {
	return &sessionService{cfg: cfg}
}

func (s *sessionService) Mint(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.SessionExpiry)

	claims := sessionTokenClaims{
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		Email:         user.Email,
		Name:          user.Name,
		Avatar:        user.Avatar,
		CourseName:    user.CourseName,
		City:          user.City,
		Country:       user.Country,
		WhatsApp:      user.WhatsApp,
		LinkedIn:      user.LinkedIn,
		Instagram:     user.Instagram,
		GitHub:        user.GitHub,
		Twitter:       user.Twitter,
		Bio:           user.Bio,
		Company:       user.Company,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.cfg.SessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := s.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Refresh re-signs the current claims with the update merged in. The
// absolute expiry is preserved: a profile edit must not extend the session.
func (s *sessionService) Refresh(ctx context.Context, claims *domain.SessionClaims, update dto.UpdateUserRequest) (string, time.Time, error) {
	merged := *claims
	applyClaimsUpdate(&merged, update)

	tokenClaims := sessionTokenClaims{
		Role:          string(merged.Role),
		EmailVerified: merged.EmailVerified,
		Email:         merged.Email,
		Name:          merged.Name,
		Avatar:        merged.Avatar,
		CourseName:    merged.CourseName,
		City:          merged.City,
		Country:       merged.Country,
		WhatsApp:      merged.WhatsApp,
		LinkedIn:      merged.LinkedIn,
		Instagram:     merged.Instagram,
		GitHub:        merged.GitHub,
		Twitter:       merged.Twitter,
		Bio:           merged.Bio,
		Company:       merged.Company,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   merged.UserID,
			Issuer:    s.cfg.SessionIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(merged.ExpiresAt),
		},
	}

	token, err := s.sign(tokenClaims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, merged.ExpiresAt, nil
}

func (s *sessionService) Rehydrate(ctx context.Context, tokenString string) (*domain.SessionClaims, error) {
	claims := &sessionTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		// Expired, malformed and wrongly-signed tokens all look the same to
		// the caller.
		return nil, apperrors.ErrUnauthorized
	}

	out := &domain.SessionClaims{
		UserID:        claims.Subject,
		Role:          domain.UserRole(claims.Role),
		EmailVerified: claims.EmailVerified,
		Email:         claims.Email,
		Name:          claims.Name,
		Avatar:        claims.Avatar,
		CourseName:    claims.CourseName,
		City:          claims.City,
		Country:       claims.Country,
		WhatsApp:      claims.WhatsApp,
		LinkedIn:      claims.LinkedIn,
		Instagram:     claims.Instagram,
		GitHub:        claims.GitHub,
		Twitter:       claims.Twitter,
		Bio:           claims.Bio,
		Company:       claims.Company,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (s *sessionService) sign(claims sessionTokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func applyClaimsUpdate(claims *domain.SessionClaims, update dto.UpdateUserRequest) {
	if update.Name != nil {
		claims.Name = *update.Name
	}
	if update.Email != nil && *update.Email != claims.Email {
		// A changed address needs re-verification.
		claims.Email = *update.Email
		claims.EmailVerified = false
	}
	if update.Role != nil {
		claims.Role = domain.UserRole(*update.Role)
	}
	if update.CourseName != nil {
		claims.CourseName = *update.CourseName
	}
	if update.City != nil {
		claims.City = *update.City
	}
	if update.Country != nil {
		claims.Country = *update.Country
	}
	if update.WhatsApp != nil {
		claims.WhatsApp = *update.WhatsApp
	}
	if update.LinkedIn != nil {
		claims.LinkedIn = *update.LinkedIn
	}
	if update.Instagram != nil {
		claims.Instagram = *update.Instagram
	}
	if update.GitHub != nil {
		claims.GitHub = *update.GitHub
	}
	if update.Twitter != nil {
		claims.Twitter = *update.Twitter
	}
	if update.Bio != nil {
		claims.Bio = *update.Bio
	}
	if update.Company != nil {
		claims.Company = *update.Company
	}
}
