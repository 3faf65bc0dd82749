// Package database opens the storefront database, migrates the schema and
// seeds the reference data the shop needs on first boot.
package database

import (
	"fmt"
	"time"

	"cafe45/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Open connects to Postgres when a URL is configured, otherwise to the local
// SQLite file.
func Open(databaseURL, sqlitePath string) (*gorm.DB, error) {
	dialect, source := "sqlite3", sqlitePath
	if databaseURL != "" {
		dialect, source = "postgres", databaseURL
	}

	db, err := gorm.Open(dialect, source)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates and updates all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CakeInquiry{},
		&models.Order{},
		&models.OrderItem{},
		&models.StandardCake{},
		&models.Meal{},
		&models.Profile{},
	).Error
}

// Seed ensures the reference data exists: the admin profile the gate checks,
// the premade cakes, and the meal boxes. Existing rows are left alone.
func Seed(db *gorm.DB, adminUserID string) error {
	var profileCount int64
	db.Model(&models.Profile{}).Where("user_id = ?", adminUserID).Count(&profileCount)
	if profileCount == 0 {
		profile := models.Profile{UserID: adminUserID, Name: "Café 45", IsAdmin: true}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("seed admin profile: %w", err)
		}
	}

	var cakeCount int64
	db.Model(&models.StandardCake{}).Count(&cakeCount)
	if cakeCount == 0 {
		defaultCakes := []models.StandardCake{
			{Name: "Chokladtårta", Description: "Mörk chokladbotten med chokladganache", Price: 350, Ingredients: "ägg, vetemjöl, socker, mörk choklad, grädde"},
			{Name: "Hallontårta", Description: "Ljus botten med hallonmousse", Price: 350, Ingredients: "ägg, vetemjöl, socker, hallon, grädde, gelatin"},
			{Name: "Citrontårta", Description: "Citronkräm och maräng", Price: 325, Ingredients: "ägg, vetemjöl, socker, citron, smör"},
		}
		for _, cake := range defaultCakes {
			if err := db.Create(&cake).Error; err != nil {
				return fmt.Errorf("seed standard cakes: %w", err)
			}
		}
	}

	var mealCount int64
	db.Model(&models.Meal{}).Count(&mealCount)
	if mealCount == 0 {
		defaultMeals := []models.Meal{
			{Name: "Pasta Carbonara", Description: "Krämig pasta med bacon och parmesan", Price: 75},
			{Name: "Kycklinggryta", Description: "Mild kycklinggryta med ris", Price: 75},
			{Name: "Vegetarisk Lasagne", Description: "Lasagne med zucchini och linser", Price: 75},
			{Name: "Köttbullar med Potatismos", Description: "Klassiska köttbullar med gräddsås", Price: 75},
		}
		for _, meal := range defaultMeals {
			if err := db.Create(&meal).Error; err != nil {
				return fmt.Errorf("seed meals: %w", err)
			}
		}
	}

	return nil
}
