package services

import (
	"context"

	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/dto"
)

// CredentialStatus is the outcome of a credential check. Absence of the
// account and a wrong password are reported identically to avoid account
// enumeration.
type CredentialStatus string

const (
	CredentialOK                 CredentialStatus = "ok"
	CredentialInvalid            CredentialStatus = "invalid_credentials"
	CredentialEmailNotVerified   CredentialStatus = "email_not_verified"
	CredentialAccountDeactivated CredentialStatus = "account_deactivated"
	CredentialExternalAccount    CredentialStatus = "external_account_required"
)

// AuthSvcFacade covers registration, the credential verifier and the opaque
// token lifecycle (email verification, password reset).
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CheckCredentials is read-only. The user is returned only for
	// CredentialOK. A non-nil error means the check itself failed and is
	// distinct from every enumerated status.
	CheckCredentials(ctx context.Context, email, password string) (CredentialStatus, *domain.User, error)

	// VerifyEmail consumes a verification token: single-use, expired and
	// unknown tokens are indistinguishable (apperrors.ErrNotFound).
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)
	ResendVerification(ctx context.Context, email string) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	// CompleteProfile creates the local account for a new external identity
	// (active, verified, no password).
	CompleteProfile(ctx context.Context, req dto.CompleteProfileRequest) (*domain.User, error)
}

// AuthRequest is the provider-agnostic sign-in input: either credentials or
// an external authorization code.
type AuthRequest struct {
	Email    string
	Password string
	Code     string
}

// AuthProvider abstracts the supported sign-in mechanisms so the session
// layer depends on one contract. Implementations exist for credentials and
// for the Google external identity.
type AuthProvider interface {
	Authenticate(ctx context.Context, req AuthRequest) (*domain.User, error)
}
