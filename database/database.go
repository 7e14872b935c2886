// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"motorestore-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Motor{},
		&models.RestoreCost{},
		&models.InventoryItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Cost entries are always listed per motor, newest incurred first
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_restore_costs_motor_date ON restore_costs(motor_id, date DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for restore_costs: %v\n", err)
	}

	// The motor list is ordered by creation time
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_motors_created ON motors(created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for motors: %v\n", err)
	}

	return nil
}

// SeedData populates the database with a sample motor for development.
// The seeded aggregate matches the seeded cost entries.
func SeedData(db *gorm.DB) error {
	var motorCount int64
	db.Model(&models.Motor{}).Count(&motorCount)

	if motorCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	boughtIn := decimal.NewFromInt(10000)
	boughtInDate := time.Now().AddDate(0, -3, 0)

	motor := models.Motor{
		ID:            uuid.New().String(),
		CarPlate:      "WXY1234",
		Name:          "Yamaha RXZ 135",
		PreviousOwner: "Ah Seng",
		PaidBy:        models.PaidByDH,
		BoughtInDate:  &boughtInDate,
		BoughtInCost:  &boughtIn,
		RestoreCost:   decimal.RequireFromString("225.50"),
		Images:        models.StringSliceType{},
		Videos:        models.StringSliceType{},
	}

	if err := db.Create(&motor).Error; err != nil {
		fmt.Printf("Warning: Could not create sample motor: %v\n", err)
		return nil
	}

	sampleCosts := []models.RestoreCost{
		{
			ID:          uuid.New().String(),
			MotorID:     motor.ID,
			Description: "Carburetor rebuild kit",
			Amount:      decimal.NewFromInt(150),
			PaidBy:      models.PaidByDH,
			Date:        time.Now().AddDate(0, -2, 0),
		},
		{
			ID:          uuid.New().String(),
			MotorID:     motor.ID,
			Description: "Respray - candy red",
			Amount:      decimal.RequireFromString("75.50"),
			PaidBy:      models.PaidByKS,
			Date:        time.Now().AddDate(0, -1, 0),
		},
	}

	for _, cost := range sampleCosts {
		if err := db.Create(&cost).Error; err != nil {
			fmt.Printf("Warning: Could not create sample cost %s: %v\n", cost.Description, err)
		}
	}

	fmt.Println("Database seeded with a sample motor and cost entries")
	return nil
}
