package controllers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthController struct{}

// GetHealth reports service liveness.
func (hc *HealthController) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "Deutschklasse API",
		"version": "1.0.0",
	})
}
