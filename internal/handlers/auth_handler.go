package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

const loginFailedMessage = "Invalid email or password."

type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, metrics: m}
}

func (h *AuthHandler) Index(c *fiber.Ctx) error {
	if session.IsAuthenticated(c) {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Redirect("/login", fiber.StatusFound)
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", pageData(c, h.sessions, "Login", "login", nil))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.loginFailed(c, "", "malformed form")
	}
	email := strings.TrimSpace(req.Email)

	user, err := h.authService.Authenticate(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return h.loginFailed(c, email, "invalid credentials")
		}
		return err
	}

	if err := h.sessions.Login(c, session.Principal{Email: user.Email, Role: user.Role}); err != nil {
		return err
	}
	h.metrics.RecordLogin(true)
	slog.Info("login succeeded", "user", user.Email, "action", "login", "request_id", middleware.RequestID(c))
	return c.Redirect("/dashboard", fiber.StatusFound)
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, email, reason string) error {
	h.metrics.RecordLogin(false)
	slog.Warn("login failed",
		"user", email,
		"action", "login",
		"error", reason,
		"ip", c.IP(),
		"request_id", middleware.RequestID(c),
	)
	if err := h.sessions.SetFlash(c, "error", loginFailedMessage); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusFound)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if p := session.GetPrincipal(c); p != nil {
		slog.Info("logout", "user", p.Email, "action", "logout", "request_id", middleware.RequestID(c))
	}
	if err := h.sessions.Logout(c); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// Token exchanges credentials for a bearer token used by inspection
// stations calling the device API.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.Authenticate(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.metrics.RecordLogin(false)
			slog.Warn("token request rejected",
				"user", strings.TrimSpace(req.Email),
				"action", "token",
				"request_id", middleware.RequestID(c),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: loginFailedMessage,
			})
		}
		return err
	}

	resp, err := h.authService.IssueToken(user)
	if err != nil {
		return err
	}
	h.metrics.RecordLogin(true)
	return c.JSON(resp)
}
