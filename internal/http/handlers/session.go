package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"crudadmin/internal/shell"
)

const sidCookie = "sid"

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// Session binds every request to a browser session id.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("sid", ensureSID(c))
		return c.Next()
	}
}

func sessionID(c *fiber.Ctx) string {
	if sid, ok := c.Locals("sid").(string); ok && sid != "" {
		return sid
	}
	return ensureSID(c)
}

// acquire locks the caller's shell; release with Unlock.
func acquire(c *fiber.Ctx, st *shell.Store) *shell.Shell {
	sh := st.Get(sessionID(c))
	sh.Lock()
	return sh
}
