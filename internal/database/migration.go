package database

import (
	"fmt"

	"github.com/Attila01/DebtTracker/internal/models"
	"github.com/Attila01/DebtTracker/internal/schema"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Debt{},
		&models.Account{},
		&models.Payment{},
		&models.Goal{},
		&models.Asset{},
		&models.Revenue{},
		&models.Category{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedCategories inserts the predefined category list when the table is
// empty. Re-running is a no-op.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range schema.PredefinedCategories {
		if err := db.Create(&models.Category{CategoryName: name}).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}
