package handlers

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

const predictMessage = "Prediction endpoint ready -- connect your ML model here."

type PredictHandler struct{}

func NewPredictHandler() *PredictHandler {
	return &PredictHandler{}
}

// Predict accepts a JSON or form payload and acknowledges it. No model
// is attached yet, so the prediction is always null.
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	payload := predictPayload(c)
	slog.Info("prediction requested",
		"action", "predict",
		"fields", len(payload),
		"request_id", middleware.RequestID(c),
	)

	return c.JSON(dto.PredictResponse{
		Success:    true,
		Prediction: nil,
		Message:    predictMessage,
	})
}

func predictPayload(c *fiber.Ctx) map[string]interface{} {
	payload := make(map[string]interface{})
	ctype := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.Contains(ctype, "json") {
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return map[string]interface{}{}
		}
		return payload
	}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		payload[string(key)] = string(value)
	})
	return payload
}
