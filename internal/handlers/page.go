package handlers

import (
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

// pageData builds the values every console template expects: the
// signed-in user and role, the highlighted nav entry and any pending
// flash message.
func pageData(c *fiber.Ctx, sessions *session.Manager, title, active string, data fiber.Map) fiber.Map {
	m := fiber.Map{
		"Title":  title,
		"Active": active,
		"User":   "",
		"Role":   "",
		"Flash":  nil,
	}
	if p := session.GetPrincipal(c); p != nil {
		m["User"] = p.Email
		m["Role"] = p.Role
	}
	if sessions != nil {
		if flash := sessions.PopFlash(c); flash != nil {
			m["Flash"] = flash
		}
	}
	for k, v := range data {
		m[k] = v
	}
	return m
}
