// File: /services/notification_service.go
package services

import (
	"errors"
	"math"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService appends and manages the per-user notification inbox.
// Durable persistence is the only delivery guarantee.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify appends an unread notification for the user.
func (s *NotificationService) Notify(userID, title, message string, notificationType models.NotificationType) error {
	notification := models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
		IsRead:  false,
	}
	return s.db.Create(&notification).Error
}

// MarkRead marks one notification as read. Only the owner may do so; marking
// an already-read notification is a no-op success.
func (s *NotificationService) MarkRead(notificationID, requesterID string) error {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	if notification.UserID != requesterID {
		return models.ErrUnauthorized
	}

	if notification.IsRead {
		return nil
	}

	return s.db.Model(&notification).Update("is_read", true).Error
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// Delete removes one notification owned by the requester.
func (s *NotificationService) Delete(notificationID, requesterID string) error {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	if notification.UserID != requesterID {
		return models.ErrUnauthorized
	}

	return s.db.Delete(&notification).Error
}

// List returns a page of the user's notifications, newest first.
func (s *NotificationService) List(userID string, page, limit int) (*models.PaginatedNotifications, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.PaginatedNotifications{
		Notifications: responses,
		Page:          page,
		Limit:         limit,
		Total:         total,
		HasMore:       page < totalPages,
		TotalPages:    totalPages,
	}, nil
}

// Stats returns unread and total counts for the user's inbox badge.
func (s *NotificationService) Stats(userID string) (*models.NotificationStats, error) {
	var unread, total int64

	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	return &models.NotificationStats{
		UnreadCount: int(unread),
		TotalCount:  int(total),
	}, nil
}
