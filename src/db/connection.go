package db

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	// Load environment variables from .env file (optional in deployments
	// that inject real env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Get DB_DSN from environment
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Println("DB_DSN is not set, store features will be disabled")
		return nil, gorm.ErrInvalidDB
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Println("Error connecting to the database:", err)
		return nil, err
	}

	log.Println("ArchePal DB connected successfully!")

	return db, nil
}
