package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"crudadmin/internal/form"
	"crudadmin/internal/list"
	applog "crudadmin/internal/log"
	"crudadmin/internal/shell"
	"crudadmin/internal/validate"
)

type UserHandler struct {
	Sessions *shell.Store
	Grace    time.Duration
}

// userFormView deliberately has no password: it is never redisplayed.
type userFormView struct {
	Editing bool
	Data    struct{ Name, Email string }
}

const usersPath = "/users"

func (h *UserHandler) active(c *fiber.Ctx) (*shell.Shell, *list.UserList) {
	sh := acquire(c, h.Sessions)
	if sh.Active() != shell.Users {
		return sh, nil
	}
	return sh, sh.Users()
}

// GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	sh := acquire(c, h.Sessions)
	defer sh.Unlock()
	sh.Select(shell.Users)
	l := sh.Users()

	if !settled(l.Ready(), h.Grace) {
		return render(c, "loading", fiber.Map{"Tab": string(shell.Users), "Refresh": 1})
	}
	data := fiber.Map{
		"Tab":        string(shell.Users),
		"Records":    l.Records(),
		"Err":        l.Err(),
		"LoadFailed": l.LoadFailed(),
	}
	if f := l.Form(); f.IsOpen() {
		_, editing := f.Editing()
		v := &userFormView{Editing: editing}
		v.Data.Name, v.Data.Email = f.Data().Name, f.Data().Email
		data["Form"] = v
	}
	return render(c, "users", data)
}

// POST /users/reload
func (h *UserHandler) Reload(c *fiber.Ctx) error {
	sh := acquire(c, h.Sessions)
	defer sh.Unlock()
	if sh.Active() == shell.Users {
		sh.Remount()
	}
	return c.Redirect(usersPath)
}

// POST /users/new
func (h *UserHandler) New(c *fiber.Ctx) error {
	sh, l := h.active(c)
	defer sh.Unlock()
	if l != nil {
		l.OpenCreate()
	}
	return c.Redirect(usersPath)
}

// POST /users/:id/edit
func (h *UserHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "user"})
		return notFound(c, "This user no longer exists")
	}
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil {
		return c.Redirect(usersPath)
	}
	if err := l.OpenEdit(id); errors.Is(err, list.ErrNoRecord) {
		return notFound(c, "This user no longer exists")
	}
	return c.Redirect(usersPath)
}

// POST /users/form
func (h *UserHandler) Form(c *fiber.Ctx) error {
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil || !l.Form().IsOpen() {
		return c.Redirect(usersPath)
	}
	f := l.Form()
	if c.FormValue("action") == "cancel" {
		f.Close()
		return c.Redirect(usersPath)
	}
	f.Apply(form.UserInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})

	rec, editing := f.Editing()
	if err := l.Submit(c.UserContext()); err != nil {
		return c.Redirect(usersPath)
	}
	if editing {
		applog.Audit(c, "user.update", map[string]any{"id": rec.ID})
	} else {
		applog.Audit(c, "user.create", nil)
	}
	return c.Redirect(usersPath)
}

// POST /users/form/close is a click on the modal overlay.
func (h *UserHandler) Close(c *fiber.Ctx) error {
	sh, l := h.active(c)
	defer sh.Unlock()
	if l != nil {
		l.Form().Close()
	}
	return c.Redirect(usersPath)
}

// GET /users/:id/delete
func (h *UserHandler) ConfirmDelete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This user no longer exists")
	}
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil {
		return c.Redirect(usersPath)
	}
	u, found := l.Find(id)
	if !found {
		return notFound(c, "This user no longer exists")
	}
	return render(c, "confirm", fiber.Map{
		"Tab":      string(shell.Users),
		"Question": "Are you sure you want to delete this user?",
		"Label":    u.Name + " <" + u.Email + ">",
		"Action":   c.Path(),
	})
}

// POST /users/:id/delete
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This user no longer exists")
	}
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil {
		return c.Redirect(usersPath)
	}
	confirmed := c.FormValue("confirm") == "yes"
	if err := l.Delete(c.UserContext(), id, confirmed); err == nil && confirmed {
		applog.Audit(c, "user.delete", map[string]any{"id": id})
	}
	return c.Redirect(usersPath)
}
