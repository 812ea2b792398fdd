package services

import (
	"context"
	"errors"
	"log"
	"time"

	"moimcheck/internal/adapters/persistence/models"
	"moimcheck/internal/adapters/persistence/repositories"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService owns the admin session policy: short-lived bearer tokens whose
// SHA-256 digest is the only thing persisted, with a sliding expiry window.
// Expiry is observed lazily at lookup; there is no background sweeper.
type AuthService struct {
	adminRepo   repositories.AdminRepository
	sessionRepo repositories.AdminSessionRepository
	ttl         time.Duration

	// now is swappable in tests to force expiry
	now func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repositories.AdminRepository,
	sessionRepo repositories.AdminSessionRepository,
	ttl time.Duration,
) *AuthService {
	if ttl <= 0 {
		ttl = 20 * time.Minute
	}
	return &AuthService{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		ttl:         ttl,
		now:         time.Now,
	}
}

// TTL returns the session lifetime (used for cookie max-age)
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// SessionInfo describes a verified admin session
type SessionInfo struct {
	AdminID   string    `json:"admin_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies an admin credential and mints a session token. The caller
// receives the plaintext token exactly once; the store only ever sees its
// hash. Failure is always ErrInvalidCredentials, whether the username is
// unknown, the password wrong, or the admin deactivated.
func (s *AuthService) Login(ctx context.Context, username, secret string) (string, *SessionInfo, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !admin.IsActive {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(secret, admin.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := password.GenerateSessionToken()
	if err != nil {
		return "", nil, err
	}

	expiresAt := s.now().Add(s.ttl)
	session := &models.AdminSession{
		TokenHash: password.HashToken(token),
		AdminID:   admin.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return "", nil, err
	}

	log.Printf("✅ Admin logged in: %s", admin.Username)

	return token, &SessionInfo{
		AdminID:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify resolves a presented token to a session. Expired rows are purged on
// detection; a deactivated owning admin invalidates the session. Every
// failure mode collapses to ErrNoSession; the caller never learns which.
func (s *AuthService) Verify(ctx context.Context, token string) (*SessionInfo, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	tokenHash := password.HashToken(token)
	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoSession
		}
		return nil, err
	}

	if session.ExpiresAt.Before(s.now()) {
		// Lazy purge; best effort
		_ = s.sessionRepo.DeleteByTokenHash(ctx, tokenHash)
		return nil, domain.ErrNoSession
	}

	if session.Admin == nil || !session.Admin.IsActive {
		return nil, domain.ErrNoSession
	}

	return &SessionInfo{
		AdminID:   session.AdminID,
		Username:  session.Admin.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Refresh verifies a token and re-arms its expiry to now + TTL (sliding
// window). Called by the admin middleware on every authenticated operation.
func (s *AuthService) Refresh(ctx context.Context, token string) (*SessionInfo, error) {
	info, err := s.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	newExpiry := s.now().Add(s.ttl)
	if err := s.sessionRepo.UpdateExpiry(ctx, password.HashToken(token), newExpiry); err != nil {
		return nil, err
	}

	info.ExpiresAt = newExpiry
	return info, nil
}

// Logout purges the session immediately regardless of remaining TTL.
// Logging out with no live session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByTokenHash(ctx, password.HashToken(token)); err != nil {
		return err
	}
	log.Printf("✅ Admin logged out")
	return nil
}
