// File: /controllers/event_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ChakradarReddy/event-management/middleware"
	"github.com/ChakradarReddy/event-management/models"
	"github.com/ChakradarReddy/event-management/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventController struct {
	db *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{db: db}
}

type CreateEventRequest struct {
	Title                string     `json:"title" binding:"required"`
	Description          string     `json:"description" binding:"required"`
	EventType            string     `json:"event_type" binding:"required"`
	StartDate            time.Time  `json:"start_date" binding:"required"`
	EndDate              time.Time  `json:"end_date" binding:"required"`
	Venue                string     `json:"venue"`
	MaxParticipants      int        `json:"max_participants" binding:"required,min=1"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	ImageURL             string     `json:"image_url"`
}

// GetEvents lists active events ordered by start date with type/search
// filters. A store failure here degrades to an empty page with a warning
// instead of failing the whole listing.
func (ec *EventController) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "9"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 9
	}
	offset := (page - 1) * limit

	query := ec.db.Model(&models.Event{}).Where("is_active = ?", true)

	if eventType := c.Query("type"); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Event listing degraded, store unreachable: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"data":    []models.Event{},
			"page":    page,
			"limit":   limit,
			"total":   0,
			"warning": "Event listing temporarily unavailable",
		})
		return
	}

	var events []models.Event
	if err := query.Order("start_date ASC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		log.Printf("Event listing degraded, store unreachable: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"data":    []models.Event{},
			"page":    page,
			"limit":   limit,
			"total":   0,
			"warning": "Event listing temporarily unavailable",
		})
		return
	}

	utils.SendPaginated(c, events, page, limit, total)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.Preload("Creator").First(&event, "id = ?", eventID).Error; err != nil {
		utils.MapError(c, models.ErrNotFound)
		return
	}
	event.Creator.Password = ""

	isRegistered := false
	if user := middleware.CurrentUser(c); user != nil {
		var registration models.Registration
		if err := ec.db.Where("user_id = ? AND event_id = ? AND status <> ?",
			user.ID, eventID, models.RegistrationStatusCancelled).
			First(&registration).Error; err == nil {
			isRegistered = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"event":         event,
		"is_registered": isRegistered,
	})
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if !user.Role.Can(models.CapCreateEvents) {
		utils.SendError(c, http.StatusForbidden, "Only organizers can create events")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	eventType := models.EventType(req.EventType)
	if !eventType.IsValid() {
		utils.SendValidationError(c, "Event type must be fest, seminar, webinar or workshop")
		return
	}

	if !req.EndDate.After(req.StartDate) {
		utils.SendValidationError(c, "End date must be after start date")
		return
	}

	if req.RegistrationDeadline != nil && req.RegistrationDeadline.After(req.StartDate) {
		utils.SendValidationError(c, "Registration deadline must not be after the event start")
		return
	}

	event := models.Event{
		ID:                   uuid.New().String(),
		Title:                req.Title,
		Description:          req.Description,
		EventType:            eventType,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Venue:                req.Venue,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		IsActive:             true,
		ImageURL:             req.ImageURL,
		CreatorID:            user.ID,
	}

	if err := ec.db.Create(&event).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.MapError(c, models.ErrNotFound)
		return
	}

	if !user.CanManageEvent(&event) {
		utils.SendError(c, http.StatusForbidden, "You can only manage your own events")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	eventType := models.EventType(req.EventType)
	if !eventType.IsValid() {
		utils.SendValidationError(c, "Event type must be fest, seminar, webinar or workshop")
		return
	}

	if req.MaxParticipants < event.CurrentParticipants {
		utils.SendValidationError(c, "Cannot reduce max participants below current count")
		return
	}

	updates := map[string]interface{}{
		"title":                 req.Title,
		"description":           req.Description,
		"event_type":            eventType,
		"start_date":            req.StartDate,
		"end_date":              req.EndDate,
		"venue":                 req.Venue,
		"max_participants":      req.MaxParticipants,
		"registration_deadline": req.RegistrationDeadline,
		"image_url":             req.ImageURL,
	}

	if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	utils.SendSuccess(c, "Event updated successfully", nil)
}

// DeleteEvent deactivates an event rather than removing the row, so existing
// registrations and issued certificates stay intact.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.MapError(c, models.ErrNotFound)
		return
	}

	if !user.CanManageEvent(&event) {
		utils.SendError(c, http.StatusForbidden, "You can only manage your own events")
		return
	}

	if err := ec.db.Model(&event).Update("is_active", false).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	utils.SendSuccess(c, "Event deleted successfully", nil)
}
