package database

import (
	"gorm.io/gorm"

	"sharebox/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	// Order matters for foreign keys: items reference users and requests,
	// bookings and comments reference users and items.
	return db.AutoMigrate(
		&models.User{},
		&models.ItemRequest{},
		&models.Item{},
		&models.Booking{},
		&models.Comment{},
	)
}
