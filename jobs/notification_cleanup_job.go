// File: /jobs/notification_cleanup_job.go
package jobs

import (
	"fmt"
	"time"

	"github.com/ChakradarReddy/event-management/models"
	"gorm.io/gorm"
)

// NotificationCleanupJob periodically deletes read notifications older than
// the retention window so the inbox table does not grow without bound.
type NotificationCleanupJob struct {
	db        *gorm.DB
	retention time.Duration
	ticker    *time.Ticker
	done      chan bool
}

// NewNotificationCleanupJob creates a new notification cleanup job
func NewNotificationCleanupJob(db *gorm.DB, interval, retention time.Duration) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		db:        db,
		retention: retention,
		ticker:    time.NewTicker(interval),
		done:      make(chan bool),
	}
}

// Start begins the cleanup job
func (j *NotificationCleanupJob) Start() {
	fmt.Println("Notification cleanup job started")

	go func() {
		// Run immediately on start
		j.cleanup()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				fmt.Println("Notification cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup job
func (j *NotificationCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *NotificationCleanupJob) cleanup() {
	cutoff := time.Now().Add(-j.retention)

	result := j.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		fmt.Printf("Notification cleanup failed: %v\n", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		fmt.Printf("Notification cleanup removed %d read notifications\n", result.RowsAffected)
	}
}
