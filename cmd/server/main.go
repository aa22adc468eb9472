package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"pichincha-tarjetas/internal/adapters/http/middleware"
	"pichincha-tarjetas/internal/adapters/http/routes"
	"pichincha-tarjetas/internal/adapters/persistence/models"
	"pichincha-tarjetas/internal/config"
	"pichincha-tarjetas/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	_ "pichincha-tarjetas/docs" // Swagger docs
)

// @title API de Tarjetas de Débito
// @version 1.0
// @description API para gestión de tarjetas de débito del Banco Pichincha

// @contact.name API Support
// @contact.email soporte@pichincha.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /api/v1
// @schemes http

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Structured logger for the service layer
	appLog := logrus.New()
	appLog.SetFormatter(&logrus.JSONFormatter{})
	if cfg.IsDev() {
		appLog.SetLevel(logrus.DebugLevel)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed sample cards in development
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("Warning: failed to seed sample data: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "API Tarjetas de Débito v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	cardService := routes.Setup(app, db, cfg, appLog)

	// Scheduled expiration sweep
	sweeper := services.NewSweepScheduler(cardService, appLog, cfg.SweepSchedule)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start sweep scheduler: %v", err)
	}
	defer sweeper.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
