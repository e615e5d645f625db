package handlers

import (
	"github.com/gofiber/fiber/v2"

	"crudadmin/internal/shell"
)

type ShellHandler struct {
	Sessions *shell.Store
}

// GET /
func (h *ShellHandler) Home(c *fiber.Ctx) error {
	sh := acquire(c, h.Sessions)
	tab := sh.Active()
	sh.Unlock()
	return c.Redirect("/" + string(tab))
}
