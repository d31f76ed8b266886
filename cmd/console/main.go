package main

import (
	"context"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/product-console/internal/application/console"
	"github.com/jhoicas/product-console/internal/infrastructure/productapi"
	httpRouter "github.com/jhoicas/product-console/internal/interfaces/http"
	"github.com/jhoicas/product-console/pkg/config"
	"github.com/jhoicas/product-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando consola de productos")

	client := productapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log.Component("productapi"))
	registry := console.NewRegistry(client, cfg.Console.SessionTTL, log.Component("console"))

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go registry.Janitor(janitorCtx, time.Minute)

	// las acciones esperan al servicio remoto antes de redirigir
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        httpRouter.NewViews(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout*2 + time.Second*5,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	httpRouter.ConsoleRouter(app, httpRouter.ConsoleDeps{
		Registry: registry,
		Logger:   log.Component("handler"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				log.Info().Msg("señal de apagado recibida, cerrando servidor...")
				return app.ShutdownWithContext(ctx)
			},
			"sessions": func(context.Context) error {
				stopJanitor()
				return nil
			},
		},
	)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("consola detenida")
	os.Exit(exitCode)
}
