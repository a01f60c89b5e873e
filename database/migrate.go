package database

import (
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/models"
)

// Migrate creates or updates the schema for the full model set. Order
// matters: owners before owned, products before orders.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Bar{},
		&models.Person{},
		&models.Category{},
		&models.Product{},
		&models.Session{},
		&models.Bill{},
		&models.Order{},
	)
}
