package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/core/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		UserID:        "u1",
		Email:         "member@example.com",
		EmailVerified: true,
		Name:          "Ana Souza",
		Avatar:        "https://img.example.com/u1",
		Role:          domain.RoleStudent,
		CourseName:    "International Business Summer School 2025",
		City:          "London",
		Country:       "UK",
		Bio:           "Hello!",
		IsActive:      true,
	}
}

func TestSessionMintAndRehydrate(t *testing.T) {
	svc := services.NewSessionService(testConfig())
	ctx := context.Background()

	token, expiresAt, err := svc.Mint(ctx, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiresAt, time.Minute)

	claims, err := svc.Rehydrate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleStudent, claims.Role)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "member@example.com", claims.Email)
	assert.Equal(t, "Ana Souza", claims.Name)
	assert.Equal(t, "London", claims.City)
	assert.Equal(t, "Hello!", claims.Bio)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestSessionRehydrateRejectsGarbage(t *testing.T) {
	svc := services.NewSessionService(testConfig())

	_, err := svc.Rehydrate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionRehydrateRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSessionService(testConfig())
	token, _, err := svc.Mint(ctx, testUser())
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.SessionSecret = "a-different-secret-entirely"
	other := services.NewSessionService(otherCfg)

	_, err = other.Rehydrate(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionRehydrateRejectsExpired(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.SessionExpiry = -time.Minute // already expired when minted
	svc := services.NewSessionService(cfg)

	token, _, err := svc.Mint(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.Rehydrate(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionRefreshMergesUpdateAndKeepsExpiry(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSessionService(testConfig())

	token, expiresAt, err := svc.Mint(ctx, testUser())
	require.NoError(t, err)
	claims, err := svc.Rehydrate(ctx, token)
	require.NoError(t, err)

	newCity := "Manchester"
	newBio := "Updated bio"
	refreshed, refreshedExpiry, err := svc.Refresh(ctx, claims, dto.UpdateUserRequest{
		City: &newCity,
		Bio:  &newBio,
	})
	require.NoError(t, err)

	// Refresh never extends the session.
	assert.WithinDuration(t, expiresAt, refreshedExpiry, time.Second)

	merged, err := svc.Rehydrate(ctx, refreshed)
	require.NoError(t, err)
	assert.Equal(t, "Manchester", merged.City)
	assert.Equal(t, "Updated bio", merged.Bio)
	assert.Equal(t, "Ana Souza", merged.Name) // untouched fields survive
	assert.True(t, merged.EmailVerified)
}

func TestSessionRefreshEmailChangeDropsVerified(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSessionService(testConfig())

	token, _, err := svc.Mint(ctx, testUser())
	require.NoError(t, err)
	claims, err := svc.Rehydrate(ctx, token)
	require.NoError(t, err)

	newEmail := "new.address@example.com"
	refreshed, _, err := svc.Refresh(ctx, claims, dto.UpdateUserRequest{Email: &newEmail})
	require.NoError(t, err)

	merged, err := svc.Rehydrate(ctx, refreshed)
	require.NoError(t, err)
	assert.Equal(t, "new.address@example.com", merged.Email)
	assert.False(t, merged.EmailVerified)
}
