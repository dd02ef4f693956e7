// File: /services/service_test.go
package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/ChakradarReddy/event-management/repositories"
	"github.com/ChakradarReddy/event-management/storage"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?cache=shared", dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Registration{}, &models.Notification{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, role models.Role, fullName string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New().String(),
		Username: "user_" + uuid.New().String()[:8],
		Email:    uuid.New().String()[:8] + "@example.com",
		Password: "hashed",
		Role:     role,
		FullName: fullName,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func createEvent(t *testing.T, db *gorm.DB, creatorID string, maxParticipants int) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:              uuid.New().String(),
		Title:           "Robotics Workshop",
		Description:     "Hands-on robotics workshop",
		EventType:       models.EventTypeWorkshop,
		StartDate:       time.Now().Add(48 * time.Hour),
		EndDate:         time.Now().Add(52 * time.Hour),
		Venue:           "Lab Block B",
		MaxParticipants: maxParticipants,
		IsActive:        true,
		CreatorID:       creatorID,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	return event
}

// newTestService wires a RegistrationService over a temp-dir local store and
// the plain-text renderer. Email is disabled in tests.
func newTestService(t *testing.T, db *gorm.DB) (*RegistrationService, storage.Storage) {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create local storage: %v", err)
	}

	repo := repositories.NewRegistrationRepository(db)
	notifier := NewNotificationService(db)
	certificates := NewCertificateService(&TextRenderer{}, store)

	return NewRegistrationService(db, repo, certificates, notifier, nil), store
}
