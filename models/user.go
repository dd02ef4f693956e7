// File: /models/user.go
package models

import (
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// Capability names an operation a role may perform.
type Capability string

const (
	CapCreateEvents     Capability = "create_events"
	CapManageOwnEvents  Capability = "manage_own_events"
	CapManageAllEvents  Capability = "manage_all_events"
	CapRegisterForEvent Capability = "register_for_event"
	CapViewAdminStats   Capability = "view_admin_stats"
)

// roleCapabilities is the single source of truth for role checks. Controllers
// and services go through Role.Can instead of comparing role strings inline.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleStudent: {
		CapRegisterForEvent: true,
	},
	RoleOrganizer: {
		CapCreateEvents:     true,
		CapManageOwnEvents:  true,
		CapRegisterForEvent: true,
	},
	RoleAdmin: {
		CapCreateEvents:     true,
		CapManageOwnEvents:  true,
		CapManageAllEvents:  true,
		CapRegisterForEvent: true,
		CapViewAdminStats:   true,
	},
}

// Can reports whether the role grants the capability. Unknown roles grant nothing.
func (r Role) Can(c Capability) bool {
	caps, ok := roleCapabilities[r]
	if !ok {
		return false
	}
	return caps[c]
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:191"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null;size:80"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null;size:120"`
	Password       string    `json:"-" gorm:"not null;size:255"`
	Role           Role      `json:"role" gorm:"not null;default:'student';size:20"`
	FullName       string    `json:"full_name" gorm:"not null;size:100"`
	Department     string    `json:"department" gorm:"size:100"`
	StudentID      string    `json:"student_id" gorm:"size:20"`
	Phone          string    `json:"phone" gorm:"size:15"`
	ProfilePicture string    `json:"profile_picture" gorm:"size:200"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	CreatedEvents []Event        `json:"created_events,omitempty" gorm:"foreignKey:CreatorID"`
	Registrations []Registration `json:"registrations,omitempty" gorm:"foreignKey:UserID"`
}

// CanManageEvent reports whether the user may manage (update, mark attendance,
// issue certificates for) the given event.
func (u *User) CanManageEvent(e *Event) bool {
	if u.Role.Can(CapManageAllEvents) {
		return true
	}
	return u.Role.Can(CapManageOwnEvents) && e.CreatorID == u.ID
}
