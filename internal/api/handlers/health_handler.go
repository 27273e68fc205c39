package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type (
	HealthHandler interface {
		Health(c *fiber.Ctx) error
	}

	healthHandler struct {
		startedAt time.Time
	}
)

func NewHealthHandler(startedAt time.Time) HealthHandler {
	return &healthHandler{startedAt: startedAt}
}

func (h *healthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}
