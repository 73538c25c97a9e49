package services_test

import (
	"context"
	"testing"

	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func googleInfo() domain.GoogleUserInfo {
	return domain.GoogleUserInfo{
		ID:            "sub-42",
		Email:         "Member@Example.com",
		VerifiedEmail: true,
		Name:          "Ana Souza",
		Picture:       "https://lh3.example.com/pic",
	}
}

func TestLinkGoogleIdentity_AlreadyLinked(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewAccountLinkerService(repo)

	linked := &domain.User{UserID: "u1", GoogleID: "sub-42", Email: "member@example.com"}
	repo.On("FindUserByGoogleID", ctx, "sub-42").Return(linked, nil).Once()

	result, err := svc.LinkGoogleIdentity(ctx, googleInfo())

	require.NoError(t, err)
	assert.False(t, result.PendingCompletion)
	assert.Equal(t, "u1", result.User.UserID)
	repo.AssertNotCalled(t, "FindUserByEmail", mock.Anything, mock.Anything)
}

func TestLinkGoogleIdentity_AttachesToExistingEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewAccountLinkerService(repo)

	existing := &domain.User{UserID: "u1", Email: "member@example.com", EmailVerified: false}
	repo.On("FindUserByGoogleID", ctx, "sub-42").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindUserByEmail", ctx, "member@example.com").Return(existing, nil).Once()
	repo.On("LinkGoogleAccount", ctx, "u1", "sub-42").Return(nil).Once()

	result, err := svc.LinkGoogleIdentity(ctx, googleInfo())

	require.NoError(t, err)
	assert.False(t, result.PendingCompletion)
	assert.Equal(t, "sub-42", result.User.GoogleID)
	// Google vouched for the address, so linking also verifies it.
	assert.True(t, result.User.EmailVerified)
	repo.AssertExpectations(t)
}

func TestLinkGoogleIdentity_NewIdentityPendsCompletion(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewAccountLinkerService(repo)

	repo.On("FindUserByGoogleID", ctx, "sub-42").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindUserByEmail", ctx, "member@example.com").Return(nil, apperrors.ErrNotFound).Once()

	result, err := svc.LinkGoogleIdentity(ctx, googleInfo())

	require.NoError(t, err)
	assert.True(t, result.PendingCompletion)
	assert.Nil(t, result.User)
	repo.AssertNotCalled(t, "LinkGoogleAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinkGoogleIdentity_ConflictingSubject(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewAccountLinkerService(repo)

	boundElsewhere := &domain.User{UserID: "u1", Email: "member@example.com", GoogleID: "other-sub"}
	repo.On("FindUserByGoogleID", ctx, "sub-42").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindUserByEmail", ctx, "member@example.com").Return(boundElsewhere, nil).Once()

	result, err := svc.LinkGoogleIdentity(ctx, googleInfo())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Nil(t, result)
}
