package services

import (
	"context"
	"testing"
	"time"

	"moimcheck/internal/adapters/persistence/models"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeSessionRepo) {
	t.Helper()

	hash, err := password.Hash("correct horse")
	require.NoError(t, err)

	adminRepo := &fakeAdminRepo{}
	require.NoError(t, adminRepo.Create(context.Background(), &models.Admin{
		Username:     "admin",
		PasswordHash: hash,
		IsActive:     true,
	}))

	sessionRepo := newFakeSessionRepo(adminRepo)
	return NewAuthService(adminRepo, sessionRepo, 20*time.Minute), sessionRepo
}

func TestLoginIssuesSessionToken(t *testing.T) {
	svc, sessionRepo := newAuthFixture(t)

	token, info, err := svc.Login(context.Background(), "admin", "correct horse")
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, "admin", info.Username)
	assert.WithinDuration(t, time.Now().Add(20*time.Minute), info.ExpiresAt, 5*time.Second)

	// Only the hash is persisted
	_, plaintextStored := sessionRepo.sessions[token]
	assert.False(t, plaintextStored)
	_, hashStored := sessionRepo.sessions[password.HashToken(token)]
	assert.True(t, hashStored)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "correct horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAdmin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	adminRepo := svc.adminRepo.(*fakeAdminRepo)
	adminRepo.admins[0].IsActive = false

	_, _, err := svc.Login(context.Background(), "admin", "correct horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyResolvesLiveSession(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin", "correct horse")
	require.NoError(t, err)

	info, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", info.Username)

	_, err = svc.Verify(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, err = svc.Verify(ctx, "deadbeef")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestVerifyPurgesExpiredSession(t *testing.T) {
	svc, sessionRepo := newAuthFixture(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin", "correct horse")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(30 * time.Minute) }

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	// The expired row is gone, so even a rewound clock cannot revive it
	assert.Empty(t, sessionRepo.sessions)
	svc.now = time.Now
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestVerifyRejectsDeactivatedAdmin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin", "correct horse")
	require.NoError(t, err)

	svc.adminRepo.(*fakeAdminRepo).admins[0].IsActive = false

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestRefreshSlidesExpiry(t *testing.T) {
	svc, sessionRepo := newAuthFixture(t)
	ctx := context.Background()

	token, first, err := svc.Login(ctx, "admin", "correct horse")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	info, err := svc.Refresh(ctx, token)
	require.NoError(t, err)
	assert.True(t, info.ExpiresAt.After(first.ExpiresAt))

	stored := sessionRepo.sessions[password.HashToken(token)]
	assert.Equal(t, info.ExpiresAt, stored.ExpiresAt)
}

func TestLogoutPurgesSession(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	// Logging out without a session is fine
	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, token))
}
