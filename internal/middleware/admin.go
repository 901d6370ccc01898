package middleware

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

// RequireRole admits authenticated callers whose role is in the CSV
// list. Role names compare case-insensitively.
func RequireRole(rolesCSV string) fiber.Handler {
	allowed := parseCSV(rolesCSV)

	return func(c *fiber.Ctx) error {
		p := session.GetPrincipal(c)
		if p == nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		if containsFold(allowed, p.Role) {
			return c.Next()
		}
		slog.Warn("role not permitted", "user", p.Email, "role", p.Role, "path", c.Path())
		return fiber.NewError(fiber.StatusForbidden, "Your role is not permitted to perform this action")
	}
}

// RoleAllowed reports whether role appears in the CSV list.
func RoleAllowed(rolesCSV, role string) bool {
	return containsFold(parseCSV(rolesCSV), role)
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func containsFold(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}
