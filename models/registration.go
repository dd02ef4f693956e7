// File: /models/registration.go
package models

import (
	"time"
)

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusAttended   RegistrationStatus = "attended"

	// RegistrationStatusCancelled exists in the data model but no cancellation
	// operation is exposed yet; see RegistrationService.CancelRegistration.
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

type Registration struct {
	ID      string `json:"id" gorm:"primaryKey;size:191"`
	UserID  string `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_registrations_user_event"`
	EventID string `json:"event_id" gorm:"not null;size:191;uniqueIndex:uk_registrations_user_event"`

	RegistrationDate    time.Time          `json:"registration_date"`
	Status              RegistrationStatus `json:"status" gorm:"not null;default:'registered';size:20"`
	AttendanceConfirmed bool               `json:"attendance_confirmed" gorm:"default:false"`
	CertificateIssued   bool               `json:"certificate_issued" gorm:"default:false"`
	CertificateURL      string             `json:"certificate_url" gorm:"size:200"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`

	// Relationships
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Event Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

// CertificateNumber derives the deterministic certificate number for this
// registration. The same registration always yields the same number.
func (r *Registration) CertificateNumber() string {
	return "CERT-" + r.ID[:8]
}
