package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"caribe-tours/internal/adapters/http/middleware"
	"caribe-tours/internal/adapters/http/routes"
	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/adapters/persistence/repositories"
	"caribe-tours/internal/config"
	"caribe-tours/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title Caribe Tours API
// @version 1.0
// @description Tour booking marketplace for Dominican Republic excursions

// @contact.name API Support
// @contact.email support@caribetours.do

// @host api.caribetours.do
// @BasePath /api/v1
// @schemes https

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

	// Seed plan catalog and bootstrap admin
	if err := config.SeedData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start the payment reconciliation sweeps
	reconcileService := services.NewReconcileService(
		repositories.NewBookingRepository(db),
		repositories.NewTransactionRepository(db),
		repositories.NewRefreshTokenRepository(db),
	)
	reconcileService.Start()
	defer reconcileService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Caribe Tours API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

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
