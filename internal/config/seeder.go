package config

import (
	"fmt"
	"log"

	"moimcheck/internal/adapters/persistence/models"
	"moimcheck/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedAdmin creates the initial admin credential when none exists yet.
// Username and password come from ADMIN_USERNAME / ADMIN_PASSWORD; when they
// are unset the seeder is skipped (the deployment manages admins itself).
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.Seed.AdminUsername == "" || cfg.Seed.AdminPassword == "" {
		log.Println("⚠️ Admin seeder skipped: ADMIN_USERNAME / ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil // an admin already exists
	}

	hash, err := password.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &models.Admin{
		Username:     cfg.Seed.AdminUsername,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Printf("✅ Seeded initial admin: %s", admin.Username)
	return nil
}
