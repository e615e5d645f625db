package backend

import (
	"errors"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"

	"crudadmin/internal/domain"
	applog "crudadmin/internal/log"
	"crudadmin/internal/validate"
)

type detail struct {
	Detail string `json:"detail"`
}

type message struct {
	Message string `json:"message"`
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(detail{Detail: msg})
}

func pathID(c *fiber.Ctx) (int, bool) {
	return validate.ID(c.Params("id"))
}

func storeFailure(c *fiber.Ctx, action string, err error) error {
	applog.Error(c, action, err, nil)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type ProductHandler struct{ Repo *ProductRepo }

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Repo.List()
	if err != nil {
		return storeFailure(c, "api.products.list", err)
	}
	return c.JSON(ps)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Repo.Get(id)
	if isNotFound(err) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return storeFailure(c, "api.products.get", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in domain.ProductCreate
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, "Invalid product payload")
	}
	if !validate.AllRequired(in.Name, in.Description, in.Category) {
		return fail(c, fiber.StatusUnprocessableEntity, "Name, description and category are required")
	}
	if !validPrice(in.Price) {
		return fail(c, fiber.StatusUnprocessableEntity, "Price must be zero or more")
	}
	in.Tags = cleanTags(in.Tags)
	p, err := h.Repo.Create(in)
	if err != nil {
		return storeFailure(c, "api.products.create", err)
	}
	applog.Audit(c, "api.products.create", map[string]any{"id": p.ID})
	return c.JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	var up domain.ProductUpdate
	if err := c.BodyParser(&up); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, "Invalid product payload")
	}
	for _, s := range []*string{up.Name, up.Description, up.Category} {
		if s != nil && strings.TrimSpace(*s) == "" {
			return fail(c, fiber.StatusUnprocessableEntity, "Name, description and category cannot be blank")
		}
	}
	if up.Price != nil && !validPrice(*up.Price) {
		return fail(c, fiber.StatusUnprocessableEntity, "Price must be zero or more")
	}
	if up.Tags != nil {
		tags := cleanTags(*up.Tags)
		up.Tags = &tags
	}
	p, err := h.Repo.Update(id, up)
	if isNotFound(err) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return storeFailure(c, "api.products.update", err)
	}
	applog.Audit(c, "api.products.update", map[string]any{"id": id})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	err := h.Repo.Delete(id)
	if isNotFound(err) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return storeFailure(c, "api.products.delete", err)
	}
	applog.Audit(c, "api.products.delete", map[string]any{"id": id})
	return c.JSON(message{Message: "Product deleted successfully"})
}

type UserHandler struct{ Repo *UserRepo }

func (h *UserHandler) List(c *fiber.Ctx) error {
	us, err := h.Repo.List()
	if err != nil {
		return storeFailure(c, "api.users.list", err)
	}
	return c.JSON(us)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	u, err := h.Repo.Get(id)
	if isNotFound(err) {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return storeFailure(c, "api.users.get", err)
	}
	return c.JSON(u)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in domain.UserCreate
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, "Invalid user payload")
	}
	name, ok := validate.Required(in.Name)
	if !ok {
		return fail(c, fiber.StatusUnprocessableEntity, "Name is required")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return fail(c, fiber.StatusUnprocessableEntity, "A valid email is required")
	}
	if in.Password == "" {
		return fail(c, fiber.StatusUnprocessableEntity, "Password is required")
	}
	in.Name, in.Email = name, email
	u, err := h.Repo.Create(in)
	if errors.Is(err, ErrEmailTaken) {
		return fail(c, fiber.StatusConflict, "Email already registered")
	}
	if err != nil {
		return storeFailure(c, "api.users.create", err)
	}
	applog.Audit(c, "api.users.create", map[string]any{"id": u.ID})
	return c.JSON(u)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	var up domain.UserUpdate
	if err := c.BodyParser(&up); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, "Invalid user payload")
	}
	if up.Name != nil {
		name, ok := validate.Required(*up.Name)
		if !ok {
			return fail(c, fiber.StatusUnprocessableEntity, "Name cannot be blank")
		}
		up.Name = &name
	}
	if up.Email != nil {
		email, ok := validate.Email(*up.Email)
		if !ok {
			return fail(c, fiber.StatusUnprocessableEntity, "A valid email is required")
		}
		up.Email = &email
	}
	if up.Password != nil && *up.Password == "" {
		up.Password = nil
	}
	u, err := h.Repo.Update(id, up)
	if isNotFound(err) {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if errors.Is(err, ErrEmailTaken) {
		return fail(c, fiber.StatusConflict, "Email already registered")
	}
	if err != nil {
		return storeFailure(c, "api.users.update", err)
	}
	applog.Audit(c, "api.users.update", map[string]any{"id": id, "password_changed": up.Password != nil})
	return c.JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	err := h.Repo.Delete(id)
	if isNotFound(err) {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return storeFailure(c, "api.users.delete", err)
	}
	applog.Audit(c, "api.users.delete", map[string]any{"id": id})
	return c.JSON(message{Message: "User deleted successfully"})
}
