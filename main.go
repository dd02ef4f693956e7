// File: /main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/ChakradarReddy/event-management/config"
	"github.com/ChakradarReddy/event-management/database"
	"github.com/ChakradarReddy/event-management/jobs"
	"github.com/ChakradarReddy/event-management/middleware"
	"github.com/ChakradarReddy/event-management/routes"
	"github.com/ChakradarReddy/event-management/services"
	"github.com/ChakradarReddy/event-management/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with a default admin (optional - for fresh deployments)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Certificate artifact storage: MinIO when configured, local disk otherwise
	var store storage.Storage
	if cfg.MinioEndpoint != "" {
		store, err = storage.NewMinioStorage(context.Background(), storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Fatal("Failed to initialize MinIO storage:", err)
		}
		log.Printf("Certificate storage: MinIO bucket %s", cfg.MinioBucket)
	} else {
		store, err = storage.NewLocalStorage(cfg.CertificateDir)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
		log.Printf("Certificate storage: local directory %s", cfg.CertificateDir)
	}

	emailService := services.NewEmailService(cfg)

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Request logging middleware
	router.Use(middleware.RequestLogger())

	// Recovery middleware
	router.Use(gin.Recovery())

	// Per-IP rate limiting
	router.Use(middleware.RateLimit(100, 10))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, store, emailService)

	// Background cleanup of old read notifications
	cleanupJob := jobs.NewNotificationCleanupJob(db, 24*time.Hour, 30*24*time.Hour)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Start server
	log.Printf("Starting EventHub API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
