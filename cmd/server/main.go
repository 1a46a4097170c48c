package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // APP_TIMEZONE works on images without zoneinfo

	"petrol-tracker/internal/adapters/http/middleware"
	"petrol-tracker/internal/adapters/http/routes"
	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/config"
	"petrol-tracker/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "petrol-tracker/docs" // Swagger docs
)

// @title Petrol Tracker API
// @version 1.0
// @description Petrol station sales, inventory and dashboard API

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed demo stations, fuel types and the admin account
	if cfg.Seed.Enabled {
		if err := config.NewSeeder(db, cfg).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed data: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Petrol Tracker API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	svc := routes.Setup(app, db, cfg)

	// Low stock alerts and refresh token cleanup
	cronService, err := services.NewCronService(svc.Fuel, svc.Notification, svc.Auth, cfg.Jobs.LowStockCron, cfg.Location)
	if err != nil {
		log.Fatalf("❌ Failed to schedule jobs: %v", err)
	}
	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
