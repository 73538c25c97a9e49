package services

import (
	"context"

	"github.com/julianojcs/ibs/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthSvcFacade wraps the Google OAuth code-exchange and ID-token
// validation flow.
type GoogleOAuthSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// PendingCompletionError is returned by the Google provider when the
// identity verified fine but no local account exists yet. It carries the
// asserted identity so the profile-completion form can be prefilled.
type PendingCompletionError struct {
	Info domain.GoogleUserInfo
}

func (e *PendingCompletionError) Error() string {
	return "profile completion required for new external identity"
}

// LinkResult is the outcome of reconciling an external identity with the
// local account base.
type LinkResult struct {
	// User is set when the identity resolved to a local account (linked now
	// or previously).
	User *domain.User
	// PendingCompletion signals that no local account exists yet and the
	// profile-completion step must run before one is created.
	PendingCompletion bool
}

// AccountLinkerSvcFacade reconciles a verified external identity with an
// existing or new local account.
type AccountLinkerSvcFacade interface {
	LinkGoogleIdentity(ctx context.Context, info domain.GoogleUserInfo) (*LinkResult, error)
}
