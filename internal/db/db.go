package db

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shoplite/internal/models"
)

// Open connects to PostgreSQL using the configured DSN.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.Admin{}, &models.SiteSetting{})
}

// EnsureAdmin seeds the first super admin account when the admins table is
// empty. Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD.
func EnsureAdmin(db *gorm.DB, log *logrus.Logger, username, password string) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}
	if username == "" || password == "" {
		log.Warn("admins table is empty and ADMIN_USERNAME/ADMIN_PASSWORD are not set; the admin panel will be unreachable")
		return nil
	}
	hash, err := models.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.Admin{Username: username, PasswordHash: hash, Role: models.RoleSuperAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create initial admin: %w", err)
	}
	log.Infof("created initial super admin %q", username)
	return nil
}
