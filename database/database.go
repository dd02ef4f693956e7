// File: /database/database.go
package database

import (
	"fmt"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.Notification{},
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
	// Event listing filters on is_active + start_date ordering
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_active_start ON events(is_active, start_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events: %v\n", err)
	}

	// Registration lookups by event for stats and management views
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_registrations_event ON registrations(event_id)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for registrations: %v\n", err)
	}

	// Notification inbox ordering
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for notifications: %v\n", err)
	}

	return nil
}

// SeedData creates a default admin account when the database is empty, so a
// fresh deployment is immediately manageable.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := models.User{
		ID:       uuid.New().String(),
		Username: "admin",
		Email:    "admin@eventhub.edu",
		Password: string(hashed),
		Role:     models.RoleAdmin,
		FullName: "System Administrator",
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Println("Database seeded with default admin account")
	return nil
}
