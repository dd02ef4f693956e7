// File: /services/certificate_service_test.go
package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/ChakradarReddy/event-management/repositories"
	"github.com/ChakradarReddy/event-management/storage"
)

// failingRenderer simulates an unavailable rendering backend.
type failingRenderer struct{}

func (f *failingRenderer) Render(data CertificateData) ([]byte, error) {
	return nil, errors.New("rendering engine unavailable")
}
func (f *failingRenderer) Extension() string   { return "pdf" }
func (f *failingRenderer) ContentType() string { return "application/pdf" }

func TestIssueCertificateRequiresAttendance(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(t, db)
	ctx := context.Background()

	organizer := createUser(t, db, models.RoleOrganizer, "Olivia Organizer")
	event := createEvent(t, db, organizer.ID, 10)
	student := createUser(t, db, models.RoleStudent, "Sam Student")

	registration, err := svc.Register(ctx, student.ID, event.ID)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err = svc.IssueCertificate(ctx, registration.ID, organizer)
	if !errors.Is(err, models.ErrAttendanceNotConfirmed) {
		t.Fatalf("Expected ErrAttendanceNotConfirmed, got %v", err)
	}

	var stored models.Registration
	db.First(&stored, "id = ?", registration.ID)
	if stored.CertificateIssued {
		t.Error("Certificate must not be issued without attendance")
	}
}

func TestIssueCertificateFlow(t *testing.T) {
	db := setupTestDB(t)
	svc, store := newTestService(t, db)
	ctx := context.Background()

	organizer := createUser(t, db, models.RoleOrganizer, "Olivia Organizer")
	event := createEvent(t, db, organizer.ID, 10)
	student := createUser(t, db, models.RoleStudent, "Sam Student")

	registration, err := svc.Register(ctx, student.ID, event.ID)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.MarkAttendance(ctx, registration.ID, organizer); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}

	issued, err := svc.IssueCertificate(ctx, registration.ID, organizer)
	if err != nil {
		t.Fatalf("IssueCertificate failed: %v", err)
	}
	if !issued.CertificateIssued {
		t.Error("Expected certificate_issued true")
	}
	if issued.CertificateURL == "" {
		t.Fatal("Expected non-empty artifact reference")
	}

	// Artifact is durably stored under the recorded key
	exists, err := store.Exists(ctx, issued.CertificateURL)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("Artifact missing from storage")
	}

	// The plain-format artifact carries the full contract fields
	data, err := store.Get(ctx, issued.CertificateURL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	content := string(data)
	for _, want := range []string{"CERTIFICATE OF PARTICIPATION", "Sam Student", "Robotics Workshop", "workshop", "Lab Block B"} {
		if !strings.Contains(content, want) {
			t.Errorf("Artifact missing %q", want)
		}
	}

	// Certificate notification was emitted
	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND notification_type = ?", student.ID, models.NotificationTypeCertificate).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 certificate notification, got %d", count)
	}

	// Re-issuance is rejected
	_, err = svc.IssueCertificate(ctx, registration.ID, organizer)
	if !errors.Is(err, models.ErrCertificateAlreadyIssued) {
		t.Errorf("Expected ErrCertificateAlreadyIssued, got %v", err)
	}
}

func TestIssueCertificateRenderFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	repo := repositories.NewRegistrationRepository(db)
	notifier := NewNotificationService(db)
	certificates := NewCertificateService(&failingRenderer{}, store)
	svc := NewRegistrationService(db, repo, certificates, notifier, nil)

	organizer := createUser(t, db, models.RoleOrganizer, "Olivia Organizer")
	event := createEvent(t, db, organizer.ID, 10)
	student := createUser(t, db, models.RoleStudent, "Sam Student")

	registration, err := svc.Register(ctx, student.ID, event.ID)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.MarkAttendance(ctx, registration.ID, organizer); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}

	_, err = svc.IssueCertificate(ctx, registration.ID, organizer)
	if !errors.Is(err, models.ErrCertificateGeneration) {
		t.Fatalf("Expected ErrCertificateGeneration, got %v", err)
	}

	// No partial commit: registration untouched, no certificate notification
	var stored models.Registration
	db.First(&stored, "id = ?", registration.ID)
	if stored.CertificateIssued || stored.CertificateURL != "" {
		t.Errorf("State changed despite generation failure: %+v", stored)
	}
	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND notification_type = ?", student.ID, models.NotificationTypeCertificate).
		Count(&count)
	if count != 0 {
		t.Errorf("Expected no certificate notification, got %d", count)
	}
}

func TestIssueCertificateAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(t, db)
	ctx := context.Background()

	organizer := createUser(t, db, models.RoleOrganizer, "Olivia Organizer")
	event := createEvent(t, db, organizer.ID, 10)
	student := createUser(t, db, models.RoleStudent, "Sam Student")

	registration, err := svc.Register(ctx, student.ID, event.ID)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.MarkAttendance(ctx, registration.ID, organizer); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}

	_, err = svc.IssueCertificate(ctx, registration.ID, student)
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestDownloadCertificate(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(t, db)
	ctx := context.Background()

	organizer := createUser(t, db, models.RoleOrganizer, "Olivia Organizer")
	event := createEvent(t, db, organizer.ID, 10)
	student := createUser(t, db, models.RoleStudent, "Sam Student")
	other := createUser(t, db, models.RoleStudent, "Nina Nosy")

	registration, err := svc.Register(ctx, student.ID, event.ID)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Not yet issued
	if _, _, err := svc.DownloadCertificate(ctx, registration.ID, student); !errors.Is(err, models.ErrCertificateNotIssued) {
		t.Errorf("Expected ErrCertificateNotIssued, got %v", err)
	}

	if _, err := svc.MarkAttendance(ctx, registration.ID, organizer); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}
	if _, err := svc.IssueCertificate(ctx, registration.ID, organizer); err != nil {
		t.Fatalf("IssueCertificate failed: %v", err)
	}

	// Only the owner may download; even the event creator is refused
	if _, _, err := svc.DownloadCertificate(ctx, registration.ID, other); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Other student: expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := svc.DownloadCertificate(ctx, registration.ID, organizer); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Creator: expected ErrUnauthorized, got %v", err)
	}

	data, filename, err := svc.DownloadCertificate(ctx, registration.ID, student)
	if err != nil {
		t.Fatalf("Owner download failed: %v", err)
	}
	if len(data) == 0 || filename == "" {
		t.Error("Expected artifact bytes and filename")
	}
}

func TestDownloadCertificateArtifactMissing(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(t, db)
	ctx := context.Background()

	organizer := createUser(t, db, models.RoleOrganizer, "Olivia Organizer")
	event := createEvent(t, db, organizer.ID, 10)
	student := createUser(t, db, models.RoleStudent, "Sam Student")

	registration, err := svc.Register(ctx, student.ID, event.ID)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.MarkAttendance(ctx, registration.ID, organizer); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}
	if _, err := svc.IssueCertificate(ctx, registration.ID, organizer); err != nil {
		t.Fatalf("IssueCertificate failed: %v", err)
	}

	// Point the registration at a key that was never written
	db.Model(&models.Registration{}).Where("id = ?", registration.ID).
		Update("certificate_url", "certificate_gone_deadbeef.txt")

	_, _, err = svc.DownloadCertificate(ctx, registration.ID, student)
	if !errors.Is(err, models.ErrCertificateArtifactMissing) {
		t.Fatalf("Expected ErrCertificateArtifactMissing, got %v", err)
	}
}

func TestPDFRendererOutput(t *testing.T) {
	renderer := &PDFRenderer{}

	data, err := renderer.Render(CertificateData{
		CertificateNumber: "CERT-abc12345",
		ParticipantName:   "Sam Student",
		EventTitle:        "Robotics Workshop",
		EventType:         "workshop",
		EventDate:         "March 1, 2026",
		EventVenue:        "Lab Block B",
		IssueDate:         "March 2, 2026",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected PDF output")
	}
	if renderer.Extension() != "pdf" || renderer.ContentType() != "application/pdf" {
		t.Error("Unexpected PDF renderer metadata")
	}
}

func TestNewRendererSelection(t *testing.T) {
	if _, ok := NewRenderer("pdf").(*PDFRenderer); !ok {
		t.Error("Expected PDF renderer for pdf format")
	}
	if _, ok := NewRenderer("text").(*TextRenderer); !ok {
		t.Error("Expected text renderer for text format")
	}
	if _, ok := NewRenderer("anything-else").(*TextRenderer); !ok {
		t.Error("Expected text fallback for unknown format")
	}
}
