// File: /routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"motorestore-api/config"
	"motorestore-api/controllers"
	"motorestore-api/middleware"
	"motorestore-api/services"
)

// SetupCORS configures cross-origin access for the web client
func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, mediaService *services.MediaService, emailService *services.EmailService) {
	ledgerService := services.NewLedgerService(db)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, cfg.GoogleClientID, emailService)
	motorController := controllers.NewMotorController(db, ledgerService)
	costController := controllers.NewCostController(ledgerService)
	mediaController := controllers.NewMediaController(db, ledgerService, mediaService)
	inventoryController := controllers.NewInventoryController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/google", authController.GoogleLogin)
		auth.POST("/logout", authController.Logout)
	}

	// Signed-in users can see their own profile even before verification,
	// so the pending page has something to show
	me := v1.Group("/")
	me.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		me.GET("/auth/me", authController.Me)
	}

	// Protected routes: signed in and verified by the admin
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Use(middleware.RequireVerified(db))
	{
		// Motor routes
		motors := protected.Group("/motors")
		{
			motors.GET("/", motorController.GetMotors)
			motors.POST("/", motorController.CreateMotor)
			motors.GET("/:id", motorController.GetMotor)
			motors.PUT("/:id", motorController.UpdateMotor)
			motors.DELETE("/:id", motorController.DeleteMotor)

			// Cost entries of a motor
			motors.GET("/:id/costs", costController.GetCosts)
			motors.POST("/:id/costs", costController.CreateCost)
			motors.POST("/:id/costs/clear-payments", costController.ClearAllPayments)

			// Media
			motors.POST("/:id/media", mediaController.UploadMedia)
			motors.DELETE("/:id/images", mediaController.RemoveImage)
			motors.DELETE("/:id/videos", mediaController.RemoveVideo)
			motors.PUT("/:id/primary-image", mediaController.SetPrimaryImage)
		}

		// Cost entry routes addressed by entry id
		costs := protected.Group("/costs")
		{
			costs.PUT("/:id", costController.UpdateCost)
			costs.DELETE("/:id", costController.DeleteCost)
		}

		// Inventory routes
		inventory := protected.Group("/inventory")
		{
			inventory.GET("/", inventoryController.GetItems)
			inventory.POST("/", inventoryController.CreateItem)
			inventory.PUT("/:id", inventoryController.UpdateItem)
			inventory.DELETE("/:id", inventoryController.DeleteItem)
		}

		// Fleet summary
		protected.GET("/summary", motorController.GetSummary)
	}
}
