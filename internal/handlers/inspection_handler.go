package handlers

import (
	"errors"
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

type InspectionHandler struct {
	inspections *services.InspectionService
	alerts      *services.AlertService
	sessions    *session.Manager
	metrics     *metrics.Metrics
}

func NewInspectionHandler(
	inspections *services.InspectionService,
	alerts *services.AlertService,
	sessions *session.Manager,
	m *metrics.Metrics,
) *InspectionHandler {
	return &InspectionHandler{inspections: inspections, alerts: alerts, sessions: sessions, metrics: m}
}

// History lists inspections newest first, optionally narrowed by
// verdict and plate substring.
func (h *InspectionHandler) History(c *fiber.Ctx) error {
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if !models.ValidInspectionStatus(status) {
		status = ""
	}
	plate := strings.TrimSpace(c.Query("plate"))

	inspections, err := h.inspections.List(services.InspectionFilter{Status: status, Plate: plate})
	if err != nil {
		return err
	}

	return c.Render("history", pageData(c, h.sessions, "History", "history", fiber.Map{
		"Inspections": inspections,
		"Total":       len(inspections),
		"Status":      status,
		"Plate":       plate,
	}))
}

func (h *InspectionHandler) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}

	inspection, err := h.inspections.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	alerts, err := h.alerts.ForInspection(inspection.ID)
	if err != nil {
		return err
	}

	return c.Render("inspection", pageData(c, h.sessions, "Inspection", "history", fiber.Map{
		"Inspection": inspection,
		"Alerts":     alerts,
	}))
}

// Record ingests one inspection event from an inspection station.
func (h *InspectionHandler) Record(c *fiber.Ctx) error {
	var req dto.RecordInspectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	inspection, alert, err := h.inspections.Record(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInspection) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}

	h.metrics.RecordInspection(inspection.Status)
	resp := dto.RecordInspectionResponse{
		Inspection: *inspection,
		DefectList: inspection.DefectList(),
	}
	if alert != nil {
		resp.AlertID = &alert.ID
	}

	attrs := []any{
		"action", "record_inspection",
		"inspection_id", inspection.ID,
		"status", inspection.Status,
		"request_id", middleware.RequestID(c),
	}
	if p := session.GetPrincipal(c); p != nil {
		attrs = append(attrs, "user", p.Email)
	}
	slog.Info("inspection recorded", attrs...)

	return c.Status(fiber.StatusCreated).JSON(resp)
}
