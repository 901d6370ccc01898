package session

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	CookieName = "atis_session"

	keyEmail = "email"
	keyRole  = "role"
	keyFlash = "flash"
)

// Manager wraps the Fiber session store with the operator-console
// session layout: the signed-in email and role plus a one-shot flash.
type Manager struct {
	store *fibersession.Store
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		store: fibersession.New(fibersession.Config{
			Expiration:     cfg.SessionExpiry,
			KeyLookup:      "cookie:" + CookieName,
			CookieHTTPOnly: true,
			CookieSecure:   cfg.CookieSecure,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
			KeyGenerator:   uuid.NewString,
		}),
	}
}

// Resolve reads the principal stored in the caller's session, if any.
func (m *Manager) Resolve(c *fiber.Ctx) (*Principal, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	email, _ := sess.Get(keyEmail).(string)
	if email == "" {
		return nil, nil
	}
	role, _ := sess.Get(keyRole).(string)
	return &Principal{Email: email, Role: role}, nil
}

// Login binds the principal to a freshly generated session id.
func (m *Manager) Login(c *fiber.Ctx, p Principal) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Delete(keyFlash)
	sess.Set(keyEmail, p.Email)
	sess.Set(keyRole, p.Role)
	return sess.Save()
}

// Logout deletes the server-side session and expires the cookie.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	return sess.Destroy()
}

// SetFlash stores a message shown once on the next rendered page.
func (m *Manager) SetFlash(c *fiber.Ctx, kind, message string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Set(keyFlash, kind+"|"+message)
	return sess.Save()
}

// PopFlash returns and clears the pending flash message.
func (m *Manager) PopFlash(c *fiber.Ctx) *Flash {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil
	}
	raw, _ := sess.Get(keyFlash).(string)
	if raw == "" {
		return nil
	}
	sess.Delete(keyFlash)
	if err := sess.Save(); err != nil {
		return nil
	}
	return parseFlash(raw)
}
