// handlers/payments.go - Mock payment session endpoints
package handlers

import (
	"errors"
	"fmt"

	"hackreg/services"
	"hackreg/validation"

	"github.com/gofiber/fiber/v2"
)

type initiateRequest struct {
	RegistrationID string `json:"registrationId"`
}

// InitiatePayment returns a mock payment session for a registered team.
// POST /api/payments/initiate
func InitiatePayment(c *fiber.Ctx) error {
	var req initiateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	team, err := teamService.GetByRegistrationID(req.RegistrationID)
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

	if team.Payment == nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Payment not initialized",
		})
	}

	return c.JSON(fiber.Map{
		"sessionId":      team.Payment.ID,
		"amount":         team.Payment.Amount,
		"currency":       team.Payment.Currency,
		"registrationId": team.RegistrationID,
		"teamName":       team.TeamName,
		"mockPaymentUrl": fmt.Sprintf("/payment?id=%d&mock=true", team.Payment.ID),
	})
}

// ConfirmPayment marks the payment successful and the team confirmed.
// POST /api/payments/confirm
func ConfirmPayment(c *fiber.Ctx) error {
	var input validation.PaymentConfirmInput
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

	team, err := teamService.ConfirmPayment(input.RegistrationID)
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
		"success":        true,
		"registrationId": team.RegistrationID,
		"status":         team.Status,
		"message":        "Payment confirmed successfully",
	})
}

type failRequest struct {
	RegistrationID string `json:"registrationId"`
}

// FailPayment marks the payment failed; the team keeps waiting for a retry.
// POST /api/payments/fail
func FailPayment(c *fiber.Ctx) error {
	var req failRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	team, err := teamService.FailPayment(req.RegistrationID)
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
		"success":        true,
		"registrationId": team.RegistrationID,
		"status":         team.Status,
		"message":        "Payment marked as failed",
	})
}
