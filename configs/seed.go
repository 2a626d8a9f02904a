package configs

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"canteen/entity"
)

// SeedStaff creates the kitchen staff account on first run.
func SeedStaff(db *gorm.DB, cfg *Config) error {
	if cfg.StaffEmail == "" || cfg.StaffPassword == "" {
		log.Warn().Msg("skip seeding staff: missing STAFF_EMAIL/STAFF_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.StaffEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.StaffPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	staff := entity.User{
		Email:     cfg.StaffEmail,
		Password:  string(hash),
		FirstName: "Canteen",
		LastName:  "Staff",
		Role:      "staff",
	}
	return db.Create(&staff).Error
}

// SeedMenu loads a starter menu so a fresh database is usable right away.
func SeedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []entity.MenuItem{
		{Name: "Fried Rice", Detail: "Egg fried rice with vegetables", Price: decimal.RequireFromString("5.00"), Available: true},
		{Name: "Iced Tea", Detail: "Sweet iced tea", Price: decimal.RequireFromString("1.50"), Available: true},
		{Name: "Noodle Soup", Detail: "Chicken noodle soup", Price: decimal.RequireFromString("3.50"), Available: true},
		{Name: "Fruit Salad", Detail: "Seasonal fruit", Price: decimal.RequireFromString("2.75"), Available: true},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	log.Info().Int("items", len(items)).Msg("seeded starter menu")
	return nil
}
