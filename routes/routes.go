// File: /routes/routes.go
package routes

import (
	"net/http"

	"github.com/ChakradarReddy/event-management/config"
	"github.com/ChakradarReddy/event-management/controllers"
	"github.com/ChakradarReddy/event-management/middleware"
	"github.com/ChakradarReddy/event-management/repositories"
	"github.com/ChakradarReddy/event-management/services"
	"github.com/ChakradarReddy/event-management/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCORS returns a permissive CORS handler for the API.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, store storage.Storage, emailService *services.EmailService) {
	// Services
	registrationRepo := repositories.NewRegistrationRepository(db)
	notificationService := services.NewNotificationService(db)
	certificateService := services.NewCertificateService(services.NewRenderer(cfg.CertificateFormat), store)
	registrationService := services.NewRegistrationService(db, registrationRepo, certificateService, notificationService, emailService)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	eventController := controllers.NewEventController(db)
	registrationController := controllers.NewRegistrationController(registrationService)
	notificationController := controllers.NewNotificationController(notificationService)

	// Health check: confirms the datastore is reachable.
	r.GET("/ping", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"message": "pong",
				"status":  "degraded",
				"error":   "datastore unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Public event browsing
	v1.GET("/events", eventController.GetEvents)
	v1.GET("/events/:id", eventController.GetEvent)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(db, cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/dashboard", userController.Dashboard)
		}

		// Event management routes
		events := protected.Group("/events")
		{
			events.POST("/", eventController.CreateEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/register", registrationController.RegisterForEvent)
			events.GET("/:id/registrations", registrationController.GetEventRegistrations)
			events.GET("/:id/stats", registrationController.GetEventStats)
		}

		// Registration lifecycle routes
		registrations := protected.Group("/registrations")
		{
			registrations.GET("/", registrationController.GetMyRegistrations)
			registrations.DELETE("/:id", registrationController.CancelRegistration)
			registrations.POST("/:id/attendance", registrationController.MarkAttendance)
			registrations.POST("/:id/certificate", registrationController.IssueCertificate)
			registrations.GET("/:id/certificate", registrationController.DownloadCertificate)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.POST("/:id/read", notificationController.MarkAsRead)
			notifications.POST("/read-all", notificationController.MarkAllAsRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}
	}
}
