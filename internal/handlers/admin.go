package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// AdminGetStats returns aggregate counts for the admin dashboard
func (h *Handler) AdminGetStats(c *fiber.Ctx) error {
	stats, err := h.db.GetDashboardStats(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get stats")
	}

	return Success(c, stats)
}
