// File: /controllers/registration_controller.go
package controllers

import (
	"fmt"
	"net/http"

	"github.com/ChakradarReddy/event-management/middleware"
	"github.com/ChakradarReddy/event-management/services"
	"github.com/ChakradarReddy/event-management/utils"
	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	registrations *services.RegistrationService
}

func NewRegistrationController(registrations *services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrations: registrations}
}

// RegisterForEvent registers the caller for the event in the URL.
func (rc *RegistrationController) RegisterForEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)
	eventID := c.Param("id")

	registration, err := rc.registrations.Register(c.Request.Context(), user.ID, eventID)
	if err != nil {
		utils.MapError(c, err)
		return
	}

	utils.SendCreated(c, "Registration successful!", registration)
}

// GetMyRegistrations lists the caller's registrations.
func (rc *RegistrationController) GetMyRegistrations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	registrations, err := rc.registrations.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		utils.MapError(c, err)
		return
	}

	c.JSON(http.StatusOK, registrations)
}

// GetEventRegistrations lists every registration of an event for its manager.
func (rc *RegistrationController) GetEventRegistrations(c *gin.Context) {
	user := middleware.CurrentUser(c)
	eventID := c.Param("id")

	registrations, err := rc.registrations.ListForEvent(c.Request.Context(), eventID, user)
	if err != nil {
		utils.MapError(c, err)
		return
	}

	c.JSON(http.StatusOK, registrations)
}

// CancelRegistration is reserved; cancellation semantics are not defined yet.
func (rc *RegistrationController) CancelRegistration(c *gin.Context) {
	user := middleware.CurrentUser(c)
	registrationID := c.Param("id")

	if err := rc.registrations.CancelRegistration(c.Request.Context(), registrationID, user); err != nil {
		utils.MapError(c, err)
		return
	}

	utils.SendSuccess(c, "Registration cancelled", nil)
}

// MarkAttendance confirms attendance on a registration.
func (rc *RegistrationController) MarkAttendance(c *gin.Context) {
	user := middleware.CurrentUser(c)
	registrationID := c.Param("id")

	registration, err := rc.registrations.MarkAttendance(c.Request.Context(), registrationID, user)
	if err != nil {
		utils.MapError(c, err)
		return
	}

	utils.SendSuccess(c, "Attendance marked successfully", registration)
}

// IssueCertificate generates and records the participation certificate.
func (rc *RegistrationController) IssueCertificate(c *gin.Context) {
	user := middleware.CurrentUser(c)
	registrationID := c.Param("id")

	registration, err := rc.registrations.IssueCertificate(c.Request.Context(), registrationID, user)
	if err != nil {
		utils.MapError(c, err)
		return
	}

	utils.SendSuccess(c, "Certificate issued successfully", registration)
}

// DownloadCertificate streams the certificate artifact to its owner.
func (rc *RegistrationController) DownloadCertificate(c *gin.Context) {
	user := middleware.CurrentUser(c)
	registrationID := c.Param("id")

	data, filename, err := rc.registrations.DownloadCertificate(c.Request.Context(), registrationID, user)
	if err != nil {
		utils.MapError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// GetEventStats returns the registration rollup for an event.
func (rc *RegistrationController) GetEventStats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	eventID := c.Param("id")

	stats, err := rc.registrations.EventStats(c.Request.Context(), eventID, user)
	if err != nil {
		utils.MapError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
