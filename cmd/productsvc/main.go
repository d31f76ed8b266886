// productsvc es el servicio REST de productos contra el que trabaja la consola
// (GET /display, POST /insert, PUT /update, DELETE /delete/:id).
//
// Uso local: SERVICE_STORAGE=memory SERVICE_SEED_FILE=productos.csv go run ./cmd/productsvc
package main

import (
	"context"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/product-console/internal/application/usecase"
	"github.com/jhoicas/product-console/internal/domain/repository"
	"github.com/jhoicas/product-console/internal/infrastructure/memory"
	"github.com/jhoicas/product-console/internal/infrastructure/postgres"
	"github.com/jhoicas/product-console/internal/infrastructure/seed"
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
		Str("storage", cfg.Service.Storage).
		Msg("iniciando servicio de productos")

	ctx := context.Background()
	closers := map[string]gfshutdown.Operation{}

	var (
		repo     repository.ProductRepository
		txRunner repository.TxRunner
	)
	switch cfg.Service.Storage {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		closers["postgres"] = func(context.Context) error {
			pool.Close()
			return nil
		}
		repo = postgres.NewProductRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default:
		memRepo := memory.NewProductRepository()
		repo = memRepo
		txRunner = memory.NewTxRunner(memRepo)
	}
	productUC := usecase.NewProductUseCase(repo, txRunner)

	if cfg.Service.SeedFile != "" {
		items, err := seed.LoadFile(cfg.Service.SeedFile, cfg.Service.SeedCharset)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Service.SeedFile).Msg("leer catálogo inicial")
		}
		n, err := productUC.Seed(ctx, items)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Service.SeedFile).Msg("cargar catálogo inicial")
		}
		log.Info().Int("inserted", n).Int("total", len(items)).Msg("catálogo inicial cargado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name + "-service",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Swagger.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Product Service API",
		}))
	}

	httpRouter.ServiceRouter(app, httpRouter.ServiceDeps{
		ProductUC: productUC,
		Logger:    log.Component("handler"),
	})

	go func() {
		if err := app.Listen(cfg.Service.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	// fiber primero; el pool se cierra en paralelo y pgxpool espera a las conexiones en uso
	closers["http"] = func(ctx context.Context) error {
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		return app.ShutdownWithContext(ctx)
	}
	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, closers)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("servicio detenido")
	os.Exit(exitCode)
}
