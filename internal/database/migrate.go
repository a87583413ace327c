package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/mworley/recipebox/backend/internal/models"
)

// Migrate brings the schema up to date for all application models.
func Migrate(db *gorm.DB) error {
	log.Printf("Running auto-migration (%s)", db.Dialector.Name())
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Tag{},
		&models.Ingredient{},
	)
}
