// File: /controllers/notification_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/ChakradarReddy/event-management/middleware"
	"github.com/ChakradarReddy/event-management/services"
	"github.com/ChakradarReddy/event-management/utils"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// GetNotifications gets paginated notifications for the current user
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := nc.notifications.List(user.ID, page, limit)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetNotificationStats gets notification statistics (unread count, etc.)
func (nc *NotificationController) GetNotificationStats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := nc.notifications.Stats(user.ID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notification stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// MarkAsRead marks a notification as read
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	notificationID := c.Param("id")

	if err := nc.notifications.MarkRead(notificationID, user.ID); err != nil {
		utils.MapError(c, err)
		return
	}

	utils.SendSuccess(c, "Notification marked as read", nil)
}

// MarkAllAsRead marks all notifications as read for the current user
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := nc.notifications.MarkAllRead(user.ID); err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}

	utils.SendSuccess(c, "All notifications marked as read", nil)
}

// DeleteNotification deletes a notification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	user := middleware.CurrentUser(c)
	notificationID := c.Param("id")

	if err := nc.notifications.Delete(notificationID, user.ID); err != nil {
		utils.MapError(c, err)
		return
	}

	utils.SendSuccess(c, "Notification deleted successfully", nil)
}
