package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"crudadmin/internal/domain"
	"crudadmin/internal/form"
	"crudadmin/internal/list"
	applog "crudadmin/internal/log"
	"crudadmin/internal/shell"
	"crudadmin/internal/validate"
)

type ProductHandler struct {
	Sessions *shell.Store
	Grace    time.Duration
}

type productFormView struct {
	Editing  bool
	Data     domain.ProductCreate
	TagInput string
}

const productsPath = "/products"

// active locks the session and returns its product list, or nil when the
// session is on another tab. Callers must Unlock the shell.
func (h *ProductHandler) active(c *fiber.Ctx) (*shell.Shell, *list.ProductList) {
	sh := acquire(c, h.Sessions)
	if sh.Active() != shell.Products {
		return sh, nil
	}
	return sh, sh.Products()
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	sh := acquire(c, h.Sessions)
	defer sh.Unlock()
	sh.Select(shell.Products)
	l := sh.Products()

	if !settled(l.Ready(), h.Grace) {
		return render(c, "loading", fiber.Map{"Tab": string(shell.Products), "Refresh": 1})
	}
	data := fiber.Map{
		"Tab":        string(shell.Products),
		"Records":    l.Records(),
		"Err":        l.Err(),
		"LoadFailed": l.LoadFailed(),
	}
	if f := l.Form(); f.IsOpen() {
		_, editing := f.Editing()
		data["Form"] = &productFormView{Editing: editing, Data: f.Data(), TagInput: f.TagInput()}
	}
	return render(c, "products", data)
}

// POST /products/reload
func (h *ProductHandler) Reload(c *fiber.Ctx) error {
	sh := acquire(c, h.Sessions)
	defer sh.Unlock()
	if sh.Active() == shell.Products {
		sh.Remount()
	}
	return c.Redirect(productsPath)
}

// POST /products/new
func (h *ProductHandler) New(c *fiber.Ctx) error {
	sh, l := h.active(c)
	defer sh.Unlock()
	if l != nil {
		l.OpenCreate()
	}
	return c.Redirect(productsPath)
}

// POST /products/:id/edit
func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This product is no longer available")
	}
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil {
		return c.Redirect(productsPath)
	}
	if err := l.OpenEdit(id); errors.Is(err, list.ErrNoRecord) {
		return notFound(c, "This product is no longer available")
	}
	return c.Redirect(productsPath)
}

// POST /products/form
func (h *ProductHandler) Form(c *fiber.Ctx) error {
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil || !l.Form().IsOpen() {
		return c.Redirect(productsPath)
	}
	f := l.Form()
	action := c.FormValue("action")
	if action == "cancel" {
		f.Close()
		return c.Redirect(productsPath)
	}

	f.Apply(form.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Category:    c.FormValue("category"),
		InStock:     c.FormValue("in_stock") != "",
		TagInput:    c.FormValue("tag_input"),
	})

	if tag := c.FormValue("remove_tag"); tag != "" {
		f.RemoveTag(tag)
		return c.Redirect(productsPath)
	}
	switch action {
	case "add_tag":
		f.AddTag()
		return c.Redirect(productsPath)
	case "enter":
		if !f.Enter() {
			return c.Redirect(productsPath)
		}
	}
	h.save(c, l)
	return c.Redirect(productsPath)
}

func (h *ProductHandler) save(c *fiber.Ctx, l *list.ProductList) {
	rec, editing := l.Form().Editing()
	err := l.Submit(c.UserContext())
	switch {
	case errors.Is(err, list.ErrIncomplete):
		return
	case err != nil:
		// already logged and surfaced by the list
		return
	case editing:
		applog.Audit(c, "product.update", map[string]any{"id": rec.ID})
	default:
		applog.Audit(c, "product.create", nil)
	}
}

// POST /products/form/close is a click on the modal overlay.
func (h *ProductHandler) Close(c *fiber.Ctx) error {
	sh, l := h.active(c)
	defer sh.Unlock()
	if l != nil {
		l.Form().Close()
	}
	return c.Redirect(productsPath)
}

// GET /products/:id/delete asks for confirmation.
func (h *ProductHandler) ConfirmDelete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This product is no longer available")
	}
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil {
		return c.Redirect(productsPath)
	}
	p, found := l.Find(id)
	if !found {
		return notFound(c, "This product is no longer available")
	}
	return render(c, "confirm", fiber.Map{
		"Tab":      string(shell.Products),
		"Question": "Are you sure you want to delete this product?",
		"Label":    p.Name,
		"Action":   c.Path(),
	})
}

// POST /products/:id/delete with confirm=yes|no
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This product is no longer available")
	}
	sh, l := h.active(c)
	defer sh.Unlock()
	if l == nil {
		return c.Redirect(productsPath)
	}
	confirmed := c.FormValue("confirm") == "yes"
	if err := l.Delete(c.UserContext(), id, confirmed); err == nil && confirmed {
		applog.Audit(c, "product.delete", map[string]any{"id": id})
	}
	return c.Redirect(productsPath)
}
