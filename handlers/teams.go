// handlers/teams.go - Public registration and lookup endpoints
package handlers

import (
	"errors"
	"log"

	"hackreg/services"
	"hackreg/validation"

	"github.com/gofiber/fiber/v2"
)

var teamService *services.TeamService

// InitTeamHandlers injects the lifecycle service.
func InitTeamHandlers(svc *services.TeamService) {
	teamService = svc
}

// RegisterTeam creates a new team registration.
// POST /api/teams
func RegisterTeam(c *fiber.Ctx) error {
	var input validation.RegisterTeamInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := input.Validate(); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   fieldErrs[0].Message,
				"fields":  fieldErrs,
			})
		}
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	team, err := teamService.Register(&input)
	if err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			return c.Status(409).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		log.Printf("❌ Registration failed for %q: %v", input.TeamName, err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	log.Printf("✅ Team registered: %s (%s)", team.TeamName, team.RegistrationID)
	return c.Status(201).JSON(fiber.Map{
		"registrationId": team.RegistrationID,
		"teamName":       team.TeamName,
		"status":         team.Status,
	})
}

// GetTeam is the public lookup by registration ID.
// GET /api/teams/:registrationId
func GetTeam(c *fiber.Ctx) error {
	registrationID := c.Params("registrationId")

	team, err := teamService.GetByRegistrationID(registrationID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "Team not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"_id":                team.ID,
		"registrationId":     team.RegistrationID,
		"teamName":           team.TeamName,
		"collegeName":        team.CollegeName,
		"teamSize":           team.TeamSize,
		"status":             team.Status,
		"verificationStatus": team.VerificationStatus,
		"participants":       team.Participants.Data(),
		"leaderEmail":        team.LeaderEmail,
		"paymentStatus":      team.PaymentStatus(),
	})
}
