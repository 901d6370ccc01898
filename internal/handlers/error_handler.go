package handlers

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders the console error pages, or a JSON body for the
// device API. Server-side details are logged and never sent to the caller.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
			"request_id", middleware.RequestID(c),
		)
		message = "Internal server error"
	}

	if isAPIPath(c.Path()) {
		return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
	}

	template := "error"
	switch {
	case code == fiber.StatusNotFound:
		template = "404"
	case code >= 500:
		template = "500"
	}

	c.Status(code)
	if renderErr := c.Render(template, pageData(c, nil, message, "", fiber.Map{
		"Code":    code,
		"Message": message,
	})); renderErr != nil {
		slog.Error("error page render failed", "template", template, "error", renderErr.Error())
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
	return nil
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/") || path == "/api" || path == "/predict"
}
