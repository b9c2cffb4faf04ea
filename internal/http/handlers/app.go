package handlers

import (
	"log"

	"usersvc/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg config.Config, deps *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "usersvc",
		BodyLimit:             cfg.BodyLimit,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
			Output: log.Writer(),
		}))
	}
	app.Use(helmet.New())

	Mount(app, deps)
	return app
}

// Mount registers the routes on app.
func Mount(app *fiber.App, deps *Deps) {
	users := deps.UserHandler

	app.Get("/", users.Home)
	app.Get("/users", users.List)
	app.Post("/users", users.Create)
	app.Get("/user/:id<int>", users.Get)
	app.Put("/user/:id<int>", users.Update)
	app.Delete("/user/:id<int>", users.Delete)
	app.Get("/search", users.Search)
	app.Post("/login", users.Login)

	// Health & 404
	app.Get("/healthz", deps.HealthHandler.Check)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "Not found"})
	})
}
