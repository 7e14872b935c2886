// File: /main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"motorestore-api/config"
	"motorestore-api/database"
	"motorestore-api/jobs"
	"motorestore-api/middleware"
	"motorestore-api/routes"
	"motorestore-api/services"
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

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Media host client
	mediaService, err := services.NewMediaService(cfg)
	if err != nil {
		log.Fatal("Failed to create media service:", err)
	}
	if err := mediaService.EnsureBucket(context.Background()); err != nil {
		log.Printf("Warning: Could not ensure media bucket: %v", err)
	}

	emailService := services.NewEmailService(cfg)

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, mediaService, emailService)

	// Periodic aggregate reconciliation
	reconcileJob := jobs.NewLedgerReconcileJob(db, time.Hour)
	reconcileJob.Start()
	defer reconcileJob.Stop()

	// Start server
	log.Printf("Starting 86 Garage API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
