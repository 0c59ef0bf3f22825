// handlers/health.go - Liveness and dependency probes
package handlers

import (
	"context"
	"time"

	"hackreg/database"
	"hackreg/services"

	"github.com/gofiber/fiber/v2"
)

var (
	startTime    = time.Now()
	healthMailer *services.Mailer
)

// InitHealthHandlers injects the mailer used by the e-mail probe.
func InitHealthHandlers(m *services.Mailer) {
	healthMailer = m
}

// Health answers liveness checks. No auth, no rate limit, no dependencies.
// GET /api/health
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(startTime).Seconds(),
		"version":   "1.0.0",
	})
}

// HealthDB reports database reachability.
// GET /api/health/db
func HealthDB(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		return c.Status(503).JSON(fiber.Map{
			"status":   "degraded",
			"database": "unreachable",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "connected",
	})
}

// HealthEmail reports SMTP reachability.
// GET /api/health/email
func HealthEmail(c *fiber.Ctx) error {
	if healthMailer == nil || !healthMailer.Enabled() {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"configured": false,
			"email":      "mock mode, no SMTP credentials",
		})
	}

	if err := healthMailer.Ping(); err != nil {
		return c.Status(503).JSON(fiber.Map{
			"status":     "degraded",
			"configured": true,
			"email":      "unreachable",
		})
	}
	return c.JSON(fiber.Map{
		"status":     "ok",
		"configured": true,
		"email":      "connected",
	})
}
