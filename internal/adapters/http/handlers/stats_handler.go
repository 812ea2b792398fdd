package handlers

import (
	"moimcheck/internal/core/services"
	"moimcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles group statistics endpoints
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview handles the group dashboard
// @Summary Group statistics
// @Description Today's headcount plus month and all-time attendance summaries
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Response
// @Router /stats [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	stats, err := h.statsService.Overview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "internal_error")
	}

	return response.Success(c, stats)
}
