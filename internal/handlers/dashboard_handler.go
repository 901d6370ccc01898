package handlers

import (
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

const (
	dashboardRecentInspections = 10
	dashboardRecentAlerts      = 5
)

type DashboardHandler struct {
	dashboard   *services.DashboardService
	inspections *services.InspectionService
	alerts      *services.AlertService
	sessions    *session.Manager
}

func NewDashboardHandler(
	dashboard *services.DashboardService,
	inspections *services.InspectionService,
	alerts *services.AlertService,
	sessions *session.Manager,
) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, inspections: inspections, alerts: alerts, sessions: sessions}
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats()
	if err != nil {
		return err
	}
	recent, err := h.inspections.Recent(dashboardRecentInspections)
	if err != nil {
		return err
	}
	alerts, err := h.alerts.WithInspection(services.AlertFilter{Limit: dashboardRecentAlerts})
	if err != nil {
		return err
	}

	return c.Render("dashboard", pageData(c, h.sessions, "Dashboard", "dashboard", fiber.Map{
		"Stats":  stats,
		"Recent": recent,
		"Alerts": alerts,
	}))
}

// Reports is a placeholder view.
func (h *DashboardHandler) Reports(c *fiber.Ctx) error {
	return c.Render("reports", pageData(c, h.sessions, "Reports", "reports", nil))
}
