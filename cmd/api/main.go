package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Rentario-api/internal/application/auth"
	appbooking "github.com/jhoicas/Rentario-api/internal/application/booking"
	"github.com/jhoicas/Rentario-api/internal/application/usecase"
	infrabooking "github.com/jhoicas/Rentario-api/internal/infrastructure/booking"
	"github.com/jhoicas/Rentario-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Rentario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Rentario-api/internal/interfaces/http"
	"github.com/jhoicas/Rentario-api/pkg/config"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("booking_enabled", cfg.Booking.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	if err := postgres.RunMigrations(ctx, cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewRentalItemRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	bookingMetrics := metrics.New()
	gateway := infrabooking.NewClient(cfg.Booking, log)

	orchestrator := appbooking.NewSyncOrchestrator(gateway, tenantRepo, itemRepo, customerRepo, log, bookingMetrics)
	provisioner := appbooking.NewTenantProvisioner(gateway, tenantRepo, log, bookingMetrics)

	tenantUC := usecase.NewTenantUseCase(tenantRepo, txRunner, provisioner, log)
	itemUC := usecase.NewRentalItemUseCase(itemRepo, tenantRepo, orchestrator, log)
	customerUC := usecase.NewCustomerUseCase(customerRepo, tenantRepo, orchestrator, log)
	authUC := auth.NewUseCase(userRepo, tenantRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rentario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:     tenantUC,
		RentalItemUC: itemUC,
		CustomerUC:   customerUC,
		AuthUC:       authUC,
		Orchestrator: orchestrator,
		Provisioner:  provisioner,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
