package seed

import (
	"log"

	"github.com/ArchePal/ArchePal-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB) {
	// Users
	var user models.UserModel
	result := db.Where("username = ?", "archepal").First(&user)
	if result.Error == nil {
		log.Println("User 'archepal' already exists")
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("archepal"), bcrypt.DefaultCost)

		newUser := models.UserModel{
			Username:    "archepal",
			Password:    string(hashedPassword),
			DisplayName: "ArchePal Admin",
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("Failed to create user: %v\n", err)
		} else {
			log.Println("User 'archepal' created")
		}
	}

	// Dropdown options registry - single row holding the select input values
	log.Println("Checking dropdown options registry...")
	var options models.DropdownOptionsModel
	checkResult := db.First(&options)
	if checkResult.Error == nil {
		log.Println("Dropdown options registry already exists")
	} else {
		options = models.DropdownOptionsModel{
			ArtifactTypes:      []string{"Pottery", "Tool", "Weapon", "Jewelry", "Coin", "Sculpture"},
			Periods:            []string{"Paleolithic", "Neolithic", "Bronze Age", "Iron Age", "Classical", "Medieval"},
			Materials:          []string{"Ceramic", "Stone", "Bronze", "Iron", "Gold", "Bone", "Glass"},
			Conditions:         []string{"Excellent", "Good", "Fair", "Poor", "Fragmentary"},
			SignificanceLevels: []string{"Low", "Medium", "High", "Exceptional"},
		}
		if err := db.Create(&options).Error; err != nil {
			log.Printf("Failed to create dropdown options registry: %v\n", err)
		} else {
			log.Println("Dropdown options registry created")
		}
	}
}
