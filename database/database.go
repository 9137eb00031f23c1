package database

import (
	"fmt"
	"log"
	"os"

	"fruitdist-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=fruitdist port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.Country{},
		&models.City{},
		&models.Location{},
		&models.Staff{},
		&models.Fruit{},
		&models.Inventory{},
		&models.Delivery{},
		&models.Borrow{},
	)
}

// CreateDefaultManager seeds a manager account so the console is reachable on
// a fresh database.
func CreateDefaultManager(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" {
		email = "manager@fruitdist.local"
	}
	if password == "" {
		password = "manager123"
	}

	var existing models.Staff
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		// Manager already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	manager := models.Staff{
		Email:    email,
		Password: string(hashedPassword),
		Job:      models.JobManager,
		Name:     "Default Manager",
		Active:   true,
	}

	if err := db.Create(&manager).Error; err != nil {
		return err
	}

	log.Printf("Default manager created: %s", email)
	return nil
}

// SeedGeo inserts the base country/city reference rows if they are missing.
// Safe to run on every startup.
func SeedGeo(db *gorm.DB) error {
	seed := map[string][]string{
		"Thailand":    {"Bangkok", "Chiang Mai"},
		"Vietnam":     {"Ho Chi Minh City", "Hanoi"},
		"Philippines": {"Manila", "Cebu"},
	}

	for countryName, cities := range seed {
		var country models.Country
		if err := db.Where("name = ?", countryName).First(&country).Error; err != nil {
			country = models.Country{Name: countryName}
			if err := db.Create(&country).Error; err != nil {
				return fmt.Errorf("failed to seed country %s: %w", countryName, err)
			}
		}
		for _, cityName := range cities {
			var city models.City
			if err := db.Where("name = ? AND country_id = ?", cityName, country.ID).First(&city).Error; err != nil {
				city = models.City{Name: cityName, CountryID: &country.ID}
				if err := db.Create(&city).Error; err != nil {
					return fmt.Errorf("failed to seed city %s: %w", cityName, err)
				}
			}
		}
	}

	return nil
}
