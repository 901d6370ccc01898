package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

var alertStatuses = []string{
	models.AlertPending,
	models.AlertAcknowledged,
	models.AlertEscalated,
	models.AlertResolved,
}

type AlertHandler struct {
	alerts       *services.AlertService
	sessions     *session.Manager
	metrics      *metrics.Metrics
	managerRoles string
}

func NewAlertHandler(alerts *services.AlertService, sessions *session.Manager, m *metrics.Metrics, managerRoles string) *AlertHandler {
	return &AlertHandler{alerts: alerts, sessions: sessions, metrics: m, managerRoles: managerRoles}
}

// List shows every alert joined with its inspection, newest first.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if !models.ValidAlertStatus(status) {
		status = ""
	}

	rows, err := h.alerts.WithInspection(services.AlertFilter{Status: status})
	if err != nil {
		return err
	}
	pending, err := h.alerts.CountByStatus(models.AlertPending)
	if err != nil {
		return err
	}

	return c.Render("alerts", pageData(c, h.sessions, "Alerts", "alerts", fiber.Map{
		"Alerts":       rows,
		"PendingCount": pending,
		"Statuses":     alertStatuses,
		"Filter":       status,
		"CanManage":    h.canManage(session.GetPrincipal(c)),
	}))
}

// UpdateStatus moves an alert along its workflow and returns to the list.
func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}

	var req dto.UpdateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	p := session.GetPrincipal(c)
	alert, err := h.alerts.UpdateStatus(uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return fiber.ErrNotFound
		case errors.Is(err, services.ErrInvalidTransition):
			slog.Warn("alert transition rejected",
				"user", p.Email,
				"action", "update_alert",
				"alert_id", id,
				"error", err.Error(),
				"request_id", middleware.RequestID(c),
			)
			if err := h.sessions.SetFlash(c, "error", "That status change is not allowed."); err != nil {
				return err
			}
			return c.Redirect("/alerts", fiber.StatusFound)
		}
		return err
	}

	h.metrics.RecordAlertTransition(alert.Status)
	slog.Info("alert updated",
		"user", p.Email,
		"action", "update_alert",
		"alert_id", alert.ID,
		"status", alert.Status,
		"request_id", middleware.RequestID(c),
	)
	if err := h.sessions.SetFlash(c, "success", fmt.Sprintf("Alert #%d marked %s.", alert.ID, alert.Status)); err != nil {
		return err
	}
	return c.Redirect("/alerts", fiber.StatusFound)
}

func (h *AlertHandler) canManage(p *session.Principal) bool {
	return p != nil && middleware.RoleAllowed(h.managerRoles, p.Role)
}
