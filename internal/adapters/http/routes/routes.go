package routes

import (
	"time"

	"moimcheck/internal/adapters/http/handlers"
	"moimcheck/internal/adapters/http/middleware"
	"moimcheck/internal/adapters/persistence/repositories"
	"moimcheck/internal/adapters/storage"
	"moimcheck/internal/config"
	"moimcheck/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, store storage.BlobStorage, cfg *config.Config) {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	sessionRepo := repositories.NewAdminSessionRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminRepo, sessionRepo,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	attendanceService := services.NewAttendanceService(attendanceRepo, memberRepo)
	memberService := services.NewMemberService(memberRepo, attendanceRepo)
	statsService := services.NewStatsService(attendanceRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(memberService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, authService)
	statsHandler := handlers.NewStatsHandler(statsService)
	uploadHandler := handlers.NewUploadHandler(store, cfg)

	// Root & health
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	// Public routes
	api.Get("/members", memberHandler.List)
	api.Get("/members/:id/stats", memberHandler.Stats)
	api.Get("/stats", statsHandler.Overview)

	// Check-in routes carry their own optional-admin logic
	api.Post("/attendance/check", attendanceHandler.Check)
	api.Post("/attendance/absent", attendanceHandler.Absent)

	// Auth routes
	api.Post("/admin/login", middleware.AuthRateLimiter(), authHandler.Login)
	api.Post("/admin/logout", authHandler.Logout)
	api.Get("/admin/me", authHandler.Me)

	// Admin-only routes
	admin := api.Group("", middleware.AdminSession(authService, cfg))
	admin.Post("/members", memberHandler.Create)
	admin.Patch("/members/:id", memberHandler.Update)
	admin.Delete("/members/:id", memberHandler.Delete)
	admin.Post("/uploads/member-photo", uploadHandler.MemberPhoto)
	admin.Post("/uploads/delete", uploadHandler.Delete)
}
