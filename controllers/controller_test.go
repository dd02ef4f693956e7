// File: /controllers/controller_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
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

// asUser injects an authenticated user the way AuthMiddleware does.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("current_user", user)
		c.Next()
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRegisterAndLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	ac := NewAuthController(db, "test-secret", nil)
	router := gin.New()
	router.POST("/auth/register", ac.Register)
	router.POST("/auth/login", ac.Login)

	register := RegisterRequest{
		Username: "sam_student",
		Email:    "sam@college.edu",
		Password: "Secur3pass",
		FullName: "Sam Student",
		Role:     "student",
	}

	w := postJSON(t, router, "/auth/register", register)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate username conflicts
	dup := register
	dup.Email = "other@college.edu"
	w = postJSON(t, router, "/auth/register", dup)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate username, got %d", w.Code)
	}

	// Duplicate email conflicts
	dup = register
	dup.Username = "sam_other"
	w = postJSON(t, router, "/auth/register", dup)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d", w.Code)
	}

	// Admin role cannot be self-assigned
	admin := register
	admin.Username = "wannabe_admin"
	admin.Email = "admin@college.edu"
	admin.Role = "admin"
	w = postJSON(t, router, "/auth/register", admin)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for self-assigned admin role, got %d", w.Code)
	}

	// Login with the right password
	w = postJSON(t, router, "/auth/login", LoginRequest{Username: "sam_student", Password: "Secur3pass"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on login, got %d: %s", w.Code, w.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a token")
	}
	if resp.User.Role != models.RoleStudent {
		t.Errorf("Expected student role, got %s", resp.User.Role)
	}

	// And refused with the wrong one
	w = postJSON(t, router, "/auth/login", LoginRequest{Username: "sam_student", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad password, got %d", w.Code)
	}
}

func TestCreateEventForbiddenForStudents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	student := &models.User{
		ID:       uuid.New().String(),
		Username: "sam_student",
		Email:    "sam@college.edu",
		Password: string(hashed),
		Role:     models.RoleStudent,
		FullName: "Sam Student",
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	ec := NewEventController(db)
	router := gin.New()
	router.POST("/events", asUser(student), ec.CreateEvent)

	body := CreateEventRequest{
		Title:           "Rogue Fest",
		Description:     "Should not be allowed",
		EventType:       "fest",
		StartDate:       time.Now().Add(24 * time.Hour),
		EndDate:         time.Now().Add(30 * time.Hour),
		MaxParticipants: 50,
	}

	w := postJSON(t, router, "/events", body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for student, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no event rows, got %d", count)
	}
}

func TestCreateEventAsOrganizer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	organizer := &models.User{
		ID:       uuid.New().String(),
		Username: "olivia_org",
		Email:    "olivia@college.edu",
		Password: "hashed",
		Role:     models.RoleOrganizer,
		FullName: "Olivia Organizer",
	}
	if err := db.Create(organizer).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	ec := NewEventController(db)
	router := gin.New()
	router.POST("/events", asUser(organizer), ec.CreateEvent)

	start := time.Now().Add(24 * time.Hour)
	deadline := start.Add(-2 * time.Hour)
	body := CreateEventRequest{
		Title:                "Spring Fest",
		Description:          "Annual spring festival",
		EventType:            "fest",
		StartDate:            start,
		EndDate:              start.Add(6 * time.Hour),
		Venue:                "Open Grounds",
		MaxParticipants:      200,
		RegistrationDeadline: &deadline,
	}

	w := postJSON(t, router, "/events", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var event models.Event
	if err := db.First(&event, "creator_id = ?", organizer.ID).Error; err != nil {
		t.Fatalf("Event not persisted: %v", err)
	}
	if !event.IsActive {
		t.Error("New event should be active")
	}
	if event.CurrentParticipants != 0 {
		t.Errorf("New event should start with 0 participants, got %d", event.CurrentParticipants)
	}

	// Rejects an end before the start
	bad := body
	bad.EndDate = start.Add(-time.Hour)
	w = postJSON(t, router, "/events", bad)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for end before start, got %d", w.Code)
	}
}
