package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"moimcheck/internal/adapters/http/middleware"
	"moimcheck/internal/adapters/http/routes"
	"moimcheck/internal/adapters/persistence/models"
	"moimcheck/internal/adapters/storage"
	"moimcheck/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "moimcheck/docs" // Swagger docs
)

// @title Moimcheck API
// @version 1.0
// @description 모임 출석 체크 API for member attendance tracking with points

// @contact.name API Support

// @host localhost:3000
// @BasePath /api/v1
// @schemes https http

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

	// Seed the initial admin credential
	if err := config.SeedAdmin(db, cfg); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin: %v", err)
	}

	// Photo blob storage is optional; without it uploads return 503
	var store storage.BlobStorage
	if cfg.HasStorage() {
		store, err = storage.NewOSS(
			cfg.Storage.Endpoint,
			cfg.Storage.AccessKeyID,
			cfg.Storage.AccessKeySecret,
			cfg.Storage.Bucket,
		)
		if err != nil {
			log.Fatalf("❌ Failed to init blob storage: %v", err)
		}
		log.Printf("✅ Blob storage ready [bucket: %s]", cfg.Storage.Bucket)
	} else {
		log.Println("⚠️ Blob storage not configured, photo uploads disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Moimcheck API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    12 << 20, // photo uploads
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, storage and cfg for dependency injection)
	routes.Setup(app, db, store, cfg)

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
