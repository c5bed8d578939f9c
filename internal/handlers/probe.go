package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"complaintfinder/internal/store"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	gw store.Gateway
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(gw store.Gateway) *ProbeHandler {
	return &ProbeHandler{gw: gw}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the record store is reachable. Gateways that cannot be
// pinged are assumed ready.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if p, ok := h.gw.(store.Pinger); ok {
		if err := p.Ping(c.Context()); err != nil {
			slog.Warn("readiness check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  "record store unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
