// Package seed provides database seeding utilities for development and
// bootstrap.
package seed

import (
	"fmt"
	"log"

	"earshot/internal/config"
	"earshot/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin guarantees the configured admin account exists. The lookup and
// create run as a single FirstOrCreate so concurrent boots cannot race into
// duplicate accounts. An existing account is never modified.
func EnsureAdmin(db *gorm.DB, cfg *config.Config) (*models.User, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}

	username := cfg.AdminUsername
	if username == "" {
		username = "admin"
	}

	var admin models.User
	result := db.Where(models.User{Email: cfg.AdminEmail}).
		Attrs(models.User{
			Username: username,
			Password: string(hashed),
			IsAdmin:  true,
		}).
		FirstOrCreate(&admin)
	if result.Error != nil {
		return nil, fmt.Errorf("ensuring admin account: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Printf("Created admin account %s", cfg.AdminEmail)
	}
	return &admin, nil
}
