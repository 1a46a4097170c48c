package handlers

import (
	"log"
	"time"

	"petrol-tracker/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the aggregated dashboard
type DashboardHandler struct {
	dashboardService *services.DashboardService
	now              func() time.Time
}

// NewDashboardHandler creates a new dashboard handler. now supplies the
// reference time in the configured timezone.
func NewDashboardHandler(dashboardService *services.DashboardService, now func() time.Time) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              now,
	}
}

// GetDashboard returns the dashboard snapshot. The body is the snapshot
// itself, not the usual response envelope.
// @Summary Dashboard
// @Description Revenue, volume, breakdowns, trends, rankings and low stock alerts for a trailing window
// @Tags Dashboard
// @Produce json
// @Param range query string false "Window: 7d, 30d or 90d (anything else means 7d)" default(7d)
// @Success 200 {object} domain.DashboardSnapshot
// @Failure 500 {object} map[string]string
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	window := services.ParseWindow(c.Query("range"))

	snapshot, err := h.dashboardService.Compute(c.Context(), window, h.now())
	if err != nil {
		log.Printf("❌ Dashboard (%s) failed: %v", window, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(snapshot)
}
