// handlers/admin/teams.go - Admin team listing, detail, verification, search
package admin

import (
	"errors"
	"strconv"

	"hackreg/models"
	"hackreg/services"

	"github.com/gofiber/fiber/v2"
)

// GetTeams returns one page of teams plus the total count.
// GET /api/admin/teams?limit=&skip=
func GetTeams(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	skip := c.QueryInt("skip", 0)

	teams, total, err := teamService.List(limit, skip)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch teams",
		})
	}

	rows := make([]fiber.Map, 0, len(teams))
	for i := range teams {
		rows = append(rows, teamSummary(&teams[i]))
	}

	return c.JSON(fiber.Map{
		"teams": rows,
		"total": total,
		"limit": limit,
		"skip":  skip,
	})
}

// GetTeamDetail returns the full team record.
// GET /api/admin/teams/:id
func GetTeamDetail(c *fiber.Ctx) error {
	teamID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid team ID",
		})
	}

	team, err := teamService.GetByID(uint(teamID))
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

	detail := teamSummary(team)
	detail["participants"] = team.Participants.Data()
	detail["leaderEmail"] = team.LeaderEmail
	detail["leaderPhone"] = team.LeaderPhone
	detail["utrId"] = team.UTRID
	detail["paymentScreenshot"] = team.PaymentScreenshot

	return c.JSON(detail)
}

// ToggleVerification flips a team's verification flag.
// PATCH /api/admin/teams/:id/verify
func ToggleVerification(c *fiber.Ctx) error {
	teamID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid team ID",
		})
	}

	team, err := teamService.ToggleVerification(uint(teamID))
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
		"verificationStatus": team.VerificationStatus,
	})
}

// CancelTeam moves a team to CANCELLED.
// POST /api/admin/teams/:id/cancel
func CancelTeam(c *fiber.Ctx) error {
	teamID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid team ID",
		})
	}

	team, err := teamService.CancelTeam(uint(teamID))
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
		"_id":            team.ID,
		"registrationId": team.RegistrationID,
		"teamName":       team.TeamName,
		"status":         team.Status,
	})
}

// SearchTeams searches one field case-insensitively.
// GET /api/admin/search/:type/:query
func SearchTeams(c *fiber.Ctx) error {
	searchType := c.Params("type")
	query := c.Params("query")

	teams, err := teamService.Search(query, searchType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSearchType) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid search type",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	rows := make([]fiber.Map, 0, len(teams))
	for i := range teams {
		rows = append(rows, teamSummary(&teams[i]))
	}

	return c.JSON(fiber.Map{"teams": rows})
}

func teamSummary(team *models.Team) fiber.Map {
	return fiber.Map{
		"_id":                team.ID,
		"registrationId":     team.RegistrationID,
		"teamName":           team.TeamName,
		"collegeName":        team.CollegeName,
		"teamSize":           team.TeamSize,
		"status":             team.Status,
		"verificationStatus": team.VerificationStatus,
		"paymentStatus":      team.PaymentStatus(),
		"createdAt":          team.CreatedAt,
	}
}
