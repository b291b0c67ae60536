package database

import (
	"log"

	"propman-backend/internal/config"
	"propman-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Use(db); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration complete.")
}

// Use installs db as the package-wide handle and migrates the schema.
// Tests point this at an in-memory sqlite database.
func Use(db *gorm.DB) error {
	DB = db
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Tenant{},
		&models.RentalAgreement{},
		&models.Document{},
		&models.Notification{},
	)
}
