// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/ChakradarReddy/event-management/middleware"
	"github.com/ChakradarReddy/event-management/models"
	"github.com/ChakradarReddy/event-management/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.SendError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// UpdateProfile edits the caller's own profile fields. Role is deliberately
// not updatable here; there is no self-promotion path.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.Email != user.Email {
		var existing models.User
		if err := uc.db.Where("email = ? AND id <> ?", req.Email, user.ID).First(&existing).Error; err == nil {
			utils.MapError(c, models.ErrEmailTaken)
			return
		}
	}

	updates := map[string]interface{}{
		"full_name":  req.FullName,
		"email":      req.Email,
		"department": req.Department,
		"phone":      req.Phone,
	}

	if err := uc.db.Model(user).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.SendSuccess(c, "Profile updated successfully", nil)
}

// Dashboard returns a role-shaped summary: admins get system totals,
// organizers their events, students their registrations.
func (uc *UserController) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)

	switch {
	case user.Role.Can(models.CapViewAdminStats):
		var totalEvents, totalUsers, totalRegistrations int64
		uc.db.Model(&models.Event{}).Count(&totalEvents)
		uc.db.Model(&models.User{}).Count(&totalUsers)
		uc.db.Model(&models.Registration{}).Count(&totalRegistrations)

		var recentEvents []models.Event
		uc.db.Order("created_at DESC").Limit(5).Find(&recentEvents)

		c.JSON(http.StatusOK, gin.H{
			"role":                user.Role,
			"total_events":        totalEvents,
			"total_users":         totalUsers,
			"total_registrations": totalRegistrations,
			"recent_events":       recentEvents,
		})

	case user.Role.Can(models.CapCreateEvents):
		var myEvents []models.Event
		uc.db.Where("creator_id = ?", user.ID).Find(&myEvents)

		var upcoming []models.Event
		uc.db.Where("creator_id = ? AND start_date >= ?", user.ID, time.Now()).
			Order("start_date ASC").Find(&upcoming)

		c.JSON(http.StatusOK, gin.H{
			"role":            user.Role,
			"my_events":       myEvents,
			"upcoming_events": upcoming,
		})

	default:
		var registrations []models.Registration
		uc.db.Preload("Event").Where("user_id = ?", user.ID).Find(&registrations)

		upcoming := make([]models.Event, 0)
		for i := range registrations {
			if registrations[i].Event.StartDate.After(time.Now()) {
				upcoming = append(upcoming, registrations[i].Event)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"role":                user.Role,
			"my_registrations":    registrations,
			"upcoming_registered": upcoming,
		})
	}
}
