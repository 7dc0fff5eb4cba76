package main

import (
	"log"
	"os"

	"github.com/ArchePal/ArchePal-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Migrate schema if not exists
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		log.Fatalf("failed to migrate user model: %v", err)
	}

	var user models.UserModel
	result := db.Where("username = ?", "archepal").First(&user)
	if result.Error == nil {
		log.Println("User 'archepal' already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("archepal"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	newUser := models.UserModel{
		Username:    "archepal",
		Password:    string(hashedPassword),
		DisplayName: "ArchePal Admin",
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	log.Println("User 'archepal' created")
}
