// handlers/admin/auth.go - Admin login/logout
package admin

import (
	"errors"
	"time"

	"hackreg/services"
	"hackreg/validation"

	"github.com/gofiber/fiber/v2"
)

var (
	teamService *services.TeamService
	authService *services.AuthService
)

// InitAdminHandlers injects the services the admin surface depends on.
func InitAdminHandlers(teams *services.TeamService, auth *services.AuthService) {
	teamService = teams
	authService = auth
}

// Login authenticates an admin and issues the legacy session token.
// POST /api/admin/auth/login
func Login(c *fiber.Ctx) error {
	var input validation.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := input.Validate(); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	token, expiresAt, err := authService.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid credentials",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "authToken",
		Value:    token,
		Expires:  time.Unix(expiresAt, 0),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	return c.JSON(fiber.Map{
		"token":     token,
		"expiresAt": expiresAt,
		"message":   "Login successful",
	})
}

// Logout clears the session cookie.
// POST /api/admin/auth/logout
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "authToken",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
	})
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// VerifyToken confirms a legacy session token is still valid. The token is
// already validated by the middleware.
// GET /api/admin/auth/verify
func VerifyToken(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"email":   c.Locals("adminEmail"),
	})
}
