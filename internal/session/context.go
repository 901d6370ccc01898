package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Principal is the authenticated caller of the current request.
type Principal struct {
	Email string
	Role  string
}

type Flash struct {
	Kind    string
	Message string
}

// SetPrincipal attaches the authenticated caller to the request.
func SetPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}

// GetPrincipal returns the authenticated caller, or nil when the request
// is anonymous.
func GetPrincipal(c *fiber.Ctx) *Principal {
	if p, ok := c.Locals(principalKey).(*Principal); ok {
		return p
	}
	return nil
}

func IsAuthenticated(c *fiber.Ctx) bool {
	return GetPrincipal(c) != nil
}

func parseFlash(raw string) *Flash {
	kind, message, found := strings.Cut(raw, "|")
	if !found {
		return &Flash{Kind: "info", Message: raw}
	}
	return &Flash{Kind: kind, Message: message}
}
