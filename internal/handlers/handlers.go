package handlers

import (
	"github.com/gofiber/fiber/v3"

	"complaintfinder/internal/models"
)

// Preflight answers OPTIONS with an empty body.
func Preflight(c fiber.Ctx) error {
	c.Status(fiber.StatusNoContent)
	return nil
}

// MethodNotAllowed rejects every method the API does not serve.
func MethodNotAllowed(c fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "GET, HEAD, OPTIONS")
	return jsonError(c, fiber.StatusMethodNotAllowed, models.MessageMethodNotAllowed)
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}
