// main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hackreg/config"
	"hackreg/database"
	"hackreg/handlers"
	"hackreg/handlers/admin"
	"hackreg/middleware"
	"hackreg/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// Initialize database
	database.InitDB(cfg)

	// Wire services
	mailer := services.NewMailer(cfg)
	outbox := services.NewOutbox(3, 2*time.Second)
	notifier := services.NewEmailNotifier(outbox, mailer)

	teamService := services.NewTeamService(database.GetDB(), notifier, services.TeamServiceConfig{
		PaymentAmount:   cfg.PaymentAmount,
		PaymentCurrency: cfg.PaymentCurrency,
		DuplicateCheck:  cfg.DuplicateCheckEnabled,
	})
	authService := services.NewAuthService(database.GetDB(), cfg.JWTSecret)

	if err := authService.EnsureAdminUser(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("❌ Failed to seed admin user: %v", err)
	}

	handlers.InitTeamHandlers(teamService)
	handlers.InitHealthHandlers(mailer)
	admin.InitAdminHandlers(teamService, authService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(cfg.AppEnv),
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
		AllowCredentials: true,
	}))
	app.Use(middleware.RateLimitMiddleware())

	// Root liveness check - no auth, no rate limit, minimal logic
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "App is running"})
	})
	app.Get("/health", handlers.Health)

	// API Routes
	api := app.Group("/api")

	api.Get("/health", handlers.Health)
	api.Get("/health/db", handlers.HealthDB)
	api.Get("/health/email", handlers.HealthEmail)

	// Public registration and lookup, with the stricter rate bucket
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.StrictRateLimitMiddleware())
	teamGroup.Post("/", handlers.RegisterTeam)
	teamGroup.Get("/:registrationId", handlers.GetTeam)

	// Mock payment flow
	paymentGroup := api.Group("/payments")
	paymentGroup.Use(middleware.StrictRateLimitMiddleware())
	paymentGroup.Post("/initiate", handlers.InitiatePayment)
	paymentGroup.Post("/confirm", handlers.ConfirmPayment)
	paymentGroup.Post("/fail", handlers.FailPayment)

	// Admin auth
	adminGroup := api.Group("/admin")
	authGroup := adminGroup.Group("/auth")
	authGroup.Use(middleware.StrictRateLimitMiddleware())
	authGroup.Post("/login", admin.Login)
	authGroup.Post("/logout", admin.Logout)
	authGroup.Get("/verify", middleware.AdminAuthMiddleware(cfg.JWTSecret), admin.VerifyToken)

	// Admin data routes behind the shared secret
	gate := middleware.AdminKeyMiddleware(cfg.AdminSecretKey)
	adminGroup.Get("/teams", gate, admin.GetTeams)
	adminGroup.Get("/teams/:id", gate, admin.GetTeamDetail)
	adminGroup.Patch("/teams/:id/verify", gate, admin.ToggleVerification)
	adminGroup.Post("/teams/:id/cancel", gate, admin.CancelTeam)
	adminGroup.Get("/search/:type/:query", gate, admin.SearchTeams)
	adminGroup.Get("/export/excel", gate, admin.ExportExcel)

	// Graceful shutdown: stop accepting requests, then drain queued mail
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutdown signal received, closing server...")
		_ = app.Shutdown()
	}()

	log.Printf("🚀 HTTP server starting on port %s", cfg.Port)
	log.Printf("📊 Environment: %s", cfg.AppEnv)
	log.Printf("📧 SMTP configured: %v", mailer.Enabled())
	log.Printf("🔍 Duplicate pre-check: %v", cfg.DuplicateCheckEnabled)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}

	outbox.Stop()
	if err := database.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func errorHandler(appEnv string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		// Don't expose internal errors in production
		if appEnv == "production" && code == 500 {
			message = "An error occurred. Please try again later."
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
