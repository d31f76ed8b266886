package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/product-console/internal/application/console"
	"github.com/jhoicas/product-console/internal/application/usecase"
)

// ConsoleDeps dependencias de la consola web.
type ConsoleDeps struct {
	Registry *console.Registry
	Logger   zerolog.Logger
}

// ConsoleRouter registra las páginas de la consola. El app debe crearse con Views: NewViews().
func ConsoleRouter(app *fiber.App, deps ConsoleDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h := NewConsoleHandler(deps.Logger)
	app.Get("/", SessionMiddleware(deps.Registry), h.Index)

	draft := app.Group("/draft", RequireSession(deps.Registry))
	draft.Post("/", h.Submit)
	draft.Post("/cancel", h.Cancel)
	draft.Post("/fields/:name", h.UpdateField)

	products := app.Group("/products", RequireSession(deps.Registry))
	products.Post("/:id/edit", h.Edit)
	products.Get("/:id/delete", h.ConfirmDelete)
	products.Post("/:id/delete", h.Delete)
}

// ServiceDeps dependencias del servicio de productos.
type ServiceDeps struct {
	ProductUC *usecase.ProductUseCase
	Logger    zerolog.Logger
}

// ServiceRouter registra el contrato REST del servicio de productos.
func ServiceRouter(app *fiber.App, deps ServiceDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h := NewProductHandler(deps.ProductUC, deps.Logger)
	app.Get("/display", h.Display)
	app.Post("/insert", h.Insert)
	app.Put("/update", h.Update)
	app.Delete("/delete/:id", h.Delete)
}
