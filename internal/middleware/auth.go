package middleware

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LoadPrincipal resolves the caller's session into a request-scoped
// principal. It never rejects a request; the Require* gates do.
func LoadPrincipal(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := sessions.Resolve(c)
		if err != nil {
			slog.Warn("session resolve failed", "error", err, "request_id", RequestID(c))
		}
		if p != nil {
			session.SetPrincipal(c, p)
		}
		return c.Next()
	}
}

// RequirePage redirects anonymous callers to the login page.
func RequirePage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session.IsAuthenticated(c) {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAPI accepts a session principal or a Bearer token and answers
// anonymous callers with a 401 JSON body.
func RequireAPI(cfg *config.Config) fiber.Handler {
	bearer := jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals("user").(*jwt.Token)
			p := principalFromToken(token)
			if p == nil {
				return unauthorized(c)
			}
			session.SetPrincipal(c, p)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})

	return func(c *fiber.Ctx) error {
		if session.IsAuthenticated(c) {
			return c.Next()
		}
		if strings.TrimSpace(c.Get(fiber.HeaderAuthorization)) == "" {
			return unauthorized(c)
		}
		return bearer(c)
	}
}

func principalFromToken(token *jwt.Token) *session.Principal {
	if token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil
	}
	role, _ := claims["role"].(string)
	return &session.Principal{Email: email, Role: role}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false, Message: "Unauthorized",
	})
}

// RequestID returns the id assigned by the requestid middleware.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
