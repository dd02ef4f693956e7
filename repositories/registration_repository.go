// File: /repositories/registration_repository.go
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register creates a registration and bumps the event participant counter as a
// single transaction. Precondition order: deadline, capacity, duplicate. The
// guarded UPDATE on the counter is what makes two racing registrations for the
// last slot impossible: only one of them finds current_participants below
// max_participants.
func (r *RegistrationRepository) Register(ctx context.Context, userID, eventID string) (*models.Registration, error) {
	var registration *models.Registration

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ? AND is_active = ?", eventID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		if !event.RegistrationOpen(time.Now()) {
			return models.ErrDeadlinePassed
		}

		if event.IsFull() {
			return models.ErrEventFull
		}

		// Cancelled rows are skipped here, but the (user_id, event_id)
		// unique index is status-blind; cancellation support will need the
		// index scoped or the cancelled row reused.
		var existing models.Registration
		err := tx.Where("user_id = ? AND event_id = ? AND status <> ?",
			userID, eventID, models.RegistrationStatusCancelled).First(&existing).Error
		if err == nil {
			return models.ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// The capacity check above is advisory; this guarded update is the
		// authoritative one under concurrent writers.
		res := tx.Model(&models.Event{}).
			Where("id = ? AND current_participants < max_participants", eventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrEventFull
		}

		registration = &models.Registration{
			ID:               uuid.New().String(),
			UserID:           userID,
			EventID:          eventID,
			RegistrationDate: time.Now(),
			Status:           models.RegistrationStatusRegistered,
		}

		if err := tx.Create(registration).Error; err != nil {
			return err
		}

		// The event was loaded in this transaction; hand it back so callers
		// do not need a second fetch for the title.
		registration.Event = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	return registration, nil
}

// FindByID loads a registration with its user and event.
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).Preload("User").Preload("Event").
		First(&registration, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &registration, nil
}

// FindByUser lists a user's registrations with their events, newest first.
func (r *RegistrationRepository) FindByUser(ctx context.Context, userID string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.WithContext(ctx).Preload("Event").
		Where("user_id = ?", userID).
		Order("registration_date DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

// MarkAttendance confirms attendance. Safe to call repeatedly.
func (r *RegistrationRepository) MarkAttendance(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attendance_confirmed": true,
			"status":               models.RegistrationStatusAttended,
		}).Error
}

// RecordCertificate marks the registration as certified and stores the
// artifact key. Called only after the artifact is durably written. The guard
// on certificate_issued makes the record single-shot: of two racing issuers
// only one lands, the other gets ErrCertificateAlreadyIssued and its artifact
// is left orphaned in storage.
func (r *RegistrationRepository) RecordCertificate(ctx context.Context, id, certificateURL string) error {
	res := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ? AND certificate_issued = ?", id, false).
		Updates(map[string]interface{}{
			"certificate_issued": true,
			"certificate_url":    certificateURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrCertificateAlreadyIssued
	}
	return nil
}

// StatsForEvent computes the read-side rollup for one event.
func (r *RegistrationRepository) StatsForEvent(ctx context.Context, eventID string) (*models.EventStats, error) {
	var stats models.EventStats
	if err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&stats.TotalRegistrations).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("event_id = ? AND attendance_confirmed = ?", eventID, true).
		Count(&stats.Attended).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("event_id = ? AND certificate_issued = ?", eventID, true).
		Count(&stats.CertificatesIssued).Error; err != nil {
		return nil, err
	}

	if stats.TotalRegistrations > 0 {
		stats.AttendanceRate = float64(stats.Attended) / float64(stats.TotalRegistrations) * 100
	}

	return &stats, nil
}
