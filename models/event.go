// File: /models/event.go
package models

import (
	"time"
)

type EventType string

const (
	EventTypeFest     EventType = "fest"
	EventTypeSeminar  EventType = "seminar"
	EventTypeWebinar  EventType = "webinar"
	EventTypeWorkshop EventType = "workshop"
)

// IsValid reports whether t is one of the known event types.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeFest, EventTypeSeminar, EventTypeWebinar, EventTypeWorkshop:
		return true
	}
	return false
}

type Event struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"not null;type:text"`
	EventType   EventType `json:"event_type" gorm:"not null;size:50"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	Venue       string    `json:"venue" gorm:"size:200"`

	// CurrentParticipants caches count(registrations) and is only ever moved
	// inside the same transaction that inserts the matching registration row.
	MaxParticipants     int `json:"max_participants" gorm:"not null"`
	CurrentParticipants int `json:"current_participants" gorm:"default:0"`

	RegistrationDeadline *time.Time `json:"registration_deadline"`
	IsActive             bool       `json:"is_active" gorm:"default:true"`
	ImageURL             string     `json:"image_url" gorm:"size:200"`
	CreatorID            string     `json:"creator_id" gorm:"not null;size:191;index"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Relationships
	Creator       User           `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Registrations []Registration `json:"registrations,omitempty" gorm:"foreignKey:EventID"`
}

// RegistrationOpen reports whether the registration deadline allows new
// registrations at time now. A missing deadline never closes registration.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.RegistrationDeadline == nil {
		return true
	}
	return !now.After(*e.RegistrationDeadline)
}

// IsFull reports whether the cached participant counter has reached capacity.
func (e *Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

// EventStats is the read-side rollup returned to event managers.
type EventStats struct {
	TotalRegistrations int64   `json:"total_registrations"`
	Attended           int64   `json:"attended"`
	CertificatesIssued int64   `json:"certificates_issued"`
	AttendanceRate     float64 `json:"attendance_rate"`
}
