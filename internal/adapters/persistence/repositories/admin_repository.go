package repositories

import (
	"context"
	"time"

	"moimcheck/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// adminRepository implements AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin credential
func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// GetByUsername gets an admin by username
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Count counts all admin credentials
func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

// adminSessionRepository implements AdminSessionRepository interface
type adminSessionRepository struct {
	db *gorm.DB
}

// NewAdminSessionRepository creates a new admin session repository
func NewAdminSessionRepository(db *gorm.DB) AdminSessionRepository {
	return &adminSessionRepository{db: db}
}

// Upsert creates or re-arms a session keyed by token hash
func (r *adminSessionRepository) Upsert(ctx context.Context, session *models.AdminSession) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"admin_id", "expires_at"}),
		}).
		Create(session).Error
}

// GetByTokenHash gets a session by its token hash, with the owning admin
func (r *adminSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.AdminSession, error) {
	var session models.AdminSession
	err := r.db.WithContext(ctx).
		Preload("Admin").
		Where("token_hash = ?", tokenHash).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateExpiry pushes a session's expiry forward (sliding window)
func (r *adminSessionRepository) UpdateExpiry(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ?", tokenHash).
		Update("expires_at", expiresAt).Error
}

// DeleteByTokenHash purges a session; no-op when the row is already gone
func (r *adminSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&models.AdminSession{}).Error
}
