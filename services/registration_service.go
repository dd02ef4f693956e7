// File: /services/registration_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/ChakradarReddy/event-management/repositories"
	"gorm.io/gorm"
)

// RegistrationService drives the registration lifecycle: register, confirm
// attendance, issue and download certificates, and the per-event stats rollup.
// The actor is always passed in explicitly; nothing here reads ambient session
// state.
type RegistrationService struct {
	db           *gorm.DB
	repo         *repositories.RegistrationRepository
	certificates *CertificateService
	notifier     *NotificationService
	email        *EmailService
}

func NewRegistrationService(db *gorm.DB, repo *repositories.RegistrationRepository,
	certificates *CertificateService, notifier *NotificationService, email *EmailService) *RegistrationService {
	return &RegistrationService{
		db:           db,
		repo:         repo,
		certificates: certificates,
		notifier:     notifier,
		email:        email,
	}
}

// Register attempts to register the user for the event. Preconditions are
// checked in order (deadline, capacity, duplicate); the first failure wins and
// leaves no trace. On success a confirmation notification is emitted.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID string) (*models.Registration, error) {
	registration, err := s.repo.Register(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(userID,
		"Event Registration Confirmed",
		fmt.Sprintf("You have successfully registered for %q", registration.Event.Title),
		models.NotificationTypeRegistration); err != nil {
		// The registration itself is committed; a lost notification is
		// logged, not surfaced.
		log.Printf("Failed to create registration notification: %v", err)
	}

	return registration, nil
}

// CancelRegistration is not supported yet. The cancelled status exists in the
// data model but the counter handling and re-registration rules are still
// undecided, so the operation is explicitly unimplemented. Implementing it
// also means revisiting the (user_id, event_id) unique index: it covers all
// statuses, so re-registering after a cancel would trip the constraint before
// the duplicate check ever sees the cancelled row.
func (s *RegistrationService) CancelRegistration(ctx context.Context, registrationID string, actor *models.User) error {
	return models.ErrNotImplemented
}

// MarkAttendance confirms attendance on a registration. Only the event creator
// or an admin may confirm. Calling it again on a confirmed registration is a
// harmless no-op.
func (s *RegistrationService) MarkAttendance(ctx context.Context, registrationID string, actor *models.User) (*models.Registration, error) {
	registration, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if !actor.CanManageEvent(&registration.Event) {
		return nil, models.ErrUnauthorized
	}

	if err := s.repo.MarkAttendance(ctx, registrationID); err != nil {
		return nil, err
	}

	registration.AttendanceConfirmed = true
	registration.Status = models.RegistrationStatusAttended
	return registration, nil
}

// IssueCertificate generates the certificate artifact for a registration and
// records it. The artifact is written to durable storage before any database
// state changes; a rendering or storage failure leaves the registration
// untouched. Re-issuing over an existing certificate is rejected.
func (s *RegistrationService) IssueCertificate(ctx context.Context, registrationID string, actor *models.User) (*models.Registration, error) {
	registration, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if !actor.CanManageEvent(&registration.Event) {
		return nil, models.ErrUnauthorized
	}

	if !registration.AttendanceConfirmed {
		return nil, models.ErrAttendanceNotConfirmed
	}

	if registration.CertificateIssued {
		return nil, models.ErrCertificateAlreadyIssued
	}

	key, err := s.certificates.Generate(ctx, registration)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RecordCertificate(ctx, registrationID, key); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(registration.UserID,
		"Certificate Issued",
		fmt.Sprintf("Your certificate for %q has been issued!", registration.Event.Title),
		models.NotificationTypeCertificate); err != nil {
		log.Printf("Failed to create certificate notification: %v", err)
	}

	if s.email != nil {
		go func() {
			if err := s.email.SendCertificateEmail(registration.User.Email,
				registration.User.FullName, registration.Event.Title); err != nil {
				log.Printf("Failed to send certificate email: %v", err)
			}
		}()
	}

	registration.CertificateIssued = true
	registration.CertificateURL = key
	return registration, nil
}

// DownloadCertificate returns the certificate artifact for the registration's
// owner. Anyone else gets ErrUnauthorized, even event managers.
func (s *RegistrationService) DownloadCertificate(ctx context.Context, registrationID string, requester *models.User) ([]byte, string, error) {
	registration, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return nil, "", err
	}

	if registration.UserID != requester.ID {
		return nil, "", models.ErrUnauthorized
	}

	if !registration.CertificateIssued {
		return nil, "", models.ErrCertificateNotIssued
	}

	data, err := s.certificates.Fetch(ctx, registration.CertificateURL)
	if err != nil {
		return nil, "", err
	}

	return data, registration.CertificateURL, nil
}

// EventStats returns the registration rollup for one event. Restricted to the
// event creator and admins. Pure read.
func (s *RegistrationService) EventStats(ctx context.Context, eventID string, actor *models.User) (*models.EventStats, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if !actor.CanManageEvent(&event) {
		return nil, models.ErrUnauthorized
	}

	return s.repo.StatsForEvent(ctx, eventID)
}

// ListForUser returns the requester's own registrations with their events.
func (s *RegistrationService) ListForUser(ctx context.Context, userID string) ([]models.Registration, error) {
	return s.repo.FindByUser(ctx, userID)
}

// ListForEvent returns every registration of an event for its manager.
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID string, actor *models.User) ([]models.Registration, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if !actor.CanManageEvent(&event) {
		return nil, models.ErrUnauthorized
	}

	var registrations []models.Registration
	if err := s.db.WithContext(ctx).Preload("User").
		Where("event_id = ?", eventID).
		Order("registration_date ASC").
		Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}
