package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleHealthCheck reports service and database liveness.
// GET /health
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := fiber.StatusOK
	if err := h.Store.Ping(ctx); err != nil {
		dbStatus = "unreachable"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
