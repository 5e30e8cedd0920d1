package config

import (
	"fmt"

	"github.com/nkust-web/campus/models"
	"gorm.io/gorm"
)

// MigrateDB runs database migrations
func MigrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.News{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
