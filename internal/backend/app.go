package backend

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	applog "crudadmin/internal/log"
)

// New serves the products/users JSON API over db. Browsers on origin may call it.
func New(db *sqlx.DB, origin string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fail(c, fe.Code, fe.Message)
			}
			applog.Error(c, "api.error", err, nil)
			return fail(c, fiber.StatusInternalServerError, "Internal server error")
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowCredentials: origin != "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	products := &ProductHandler{Repo: NewProductRepo(db)}
	users := &UserHandler{Repo: NewUserRepo(db)}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(message{Message: "Welcome to the Product CRUD API"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	app.Get("/products", products.List)
	app.Post("/products", products.Create)
	app.Get("/products/:id", products.Get)
	app.Put("/products/:id", products.Update)
	app.Delete("/products/:id", products.Delete)

	app.Get("/users", users.List)
	app.Post("/users", users.Create)
	app.Get("/users/:id", users.Get)
	app.Put("/users/:id", users.Update)
	app.Delete("/users/:id", users.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "Not Found")
	})
	return app
}
