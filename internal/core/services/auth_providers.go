package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
)

// credentialsProvider authenticates with email and password.
type credentialsProvider struct {
	auth portssvc.AuthSvcFacade
}

func NewCredentialsProvider(auth portssvc.AuthSvcFacade) portssvc.AuthProvider {
	return &credentialsProvider{auth: auth}
}

func (p *credentialsProvider) Authenticate(ctx context.Context, req portssvc.AuthRequest) (*domain.User, error) {
	status, user, err := p.auth.CheckCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("credential check failed: %w", err)
	}

	switch status {
	case portssvc.CredentialOK:
		return user, nil
	case portssvc.CredentialEmailNotVerified:
		return nil, &apperrors.AppError{
			Code: http.StatusUnauthorized, AppCode: apperrors.CodeEmailNotVerified,
			Message: "please verify your email before logging in", Err: apperrors.ErrUnauthorized,
		}
	case portssvc.CredentialAccountDeactivated:
		return nil, &apperrors.AppError{
			Code: http.StatusUnauthorized, AppCode: apperrors.CodeAccountDeactivated,
			Message: "this account has been deactivated", Err: apperrors.ErrUnauthorized,
		}
	case portssvc.CredentialExternalAccount:
		return nil, &apperrors.AppError{
			Code: http.StatusUnauthorized, AppCode: apperrors.CodeGoogleSignInRequired,
			Message: "this account uses google sign-in", Err: apperrors.ErrUnauthorized,
		}
	default:
		return nil, &apperrors.AppError{
			Code: http.StatusUnauthorized, AppCode: apperrors.CodeInvalidCredentials,
			Message: "invalid email or password", Err: apperrors.ErrUnauthorized,
		}
	}
}

// googleProvider authenticates with an OAuth authorization code. When the
// identity has no local account yet it fails with PendingCompletionError so
// the handler can start the profile-completion flow.
type googleProvider struct {
	oauth  portssvc.GoogleOAuthSvcFacade
	linker portssvc.AccountLinkerSvcFacade
}

func NewGoogleProvider(oauth portssvc.GoogleOAuthSvcFacade, linker portssvc.AccountLinkerSvcFacade) portssvc.AuthProvider {
	return &googleProvider{oauth: oauth, linker: linker}
}

func (p *googleProvider) Authenticate(ctx context.Context, req portssvc.AuthRequest) (*domain.User, error) {
	token, err := p.oauth.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid authorization code")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperrors.NewUnauthorizedError("google response did not include an ID token")
	}

	payload, err := p.oauth.ValidateGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid google ID token")
	}

	info := domain.GoogleUserInfo{
		ID:            payload.Subject,
		VerifiedEmail: true,
	}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}
	if !info.VerifiedEmail {
		return nil, apperrors.NewUnauthorizedError("google account email is not verified")
	}

	result, err := p.linker.LinkGoogleIdentity(ctx, info)
	if err != nil {
		return nil, err
	}
	if result.PendingCompletion {
		return nil, &portssvc.PendingCompletionError{Info: info}
	}
	if !result.User.IsActive {
		return nil, &apperrors.AppError{
			Code: http.StatusUnauthorized, AppCode: apperrors.CodeAccountDeactivated,
			Message: "this account has been deactivated", Err: apperrors.ErrUnauthorized,
		}
	}
	return result.User, nil
}
