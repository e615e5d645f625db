// Package server assembles the admin console's Fiber app.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"crudadmin/internal/config"
	"crudadmin/internal/domain"
	"crudadmin/internal/http/handlers"
	applog "crudadmin/internal/log"
	"crudadmin/internal/shell"
	"crudadmin/web"
)

// Views builds the template engine with the console's helpers.
func Views() *html.Engine {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	engine.AddFunc("price", func(p float64) string { return fmt.Sprintf("$%.2f", p) })
	engine.AddFunc("date", func(t domain.Timestamp) string { return t.Display() })
	return engine
}

// friendlyError logs err and shows a generic page with no internals.
func friendlyError(c *fiber.Ctx, err error) error {
	applog.Error(c, "server.error", err, nil)
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Tab":     "",
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

func New(cfg config.Config, sessions *shell.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        Views(),
		ErrorHandler: friendlyError,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests. Please slow down.")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{
				"Tab":     "",
				"Message": "Security check failed. Please refresh and try again.",
			})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	app.Use(handlers.Session())

	deps := handlers.NewDeps(sessions, cfg.RenderGrace)

	app.Get("/", deps.ShellHandler.Home)

	app.Get("/products", deps.ProductHandler.List)
	app.Post("/products/reload", deps.ProductHandler.Reload)
	app.Post("/products/new", deps.ProductHandler.New)
	app.Post("/products/form", deps.ProductHandler.Form)
	app.Post("/products/form/close", deps.ProductHandler.Close)
	app.Post("/products/:id/edit", deps.ProductHandler.Edit)
	app.Get("/products/:id/delete", deps.ProductHandler.ConfirmDelete)
	app.Post("/products/:id/delete", deps.ProductHandler.Delete)

	app.Get("/users", deps.UserHandler.List)
	app.Post("/users/reload", deps.UserHandler.Reload)
	app.Post("/users/new", deps.UserHandler.New)
	app.Post("/users/form", deps.UserHandler.Form)
	app.Post("/users/form/close", deps.UserHandler.Close)
	app.Post("/users/:id/edit", deps.UserHandler.Edit)
	app.Get("/users/:id/delete", deps.UserHandler.ConfirmDelete)
	app.Post("/users/:id/delete", deps.UserHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Tab": "", "Message": "Page not found"})
	})

	return app
}
