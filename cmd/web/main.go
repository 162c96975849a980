// @title           RentalOps API
// @version         1.0
// @description     API JSON de RentalOps: login y datos de referencia.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
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

	_ "github.com/jhoicas/rentalops/docs"
	"github.com/jhoicas/rentalops/internal/application/actions"
	"github.com/jhoicas/rentalops/internal/application/auth"
	"github.com/jhoicas/rentalops/internal/application/purchasing"
	"github.com/jhoicas/rentalops/internal/application/reference"
	"github.com/jhoicas/rentalops/internal/application/rental"
	infrapdf "github.com/jhoicas/rentalops/internal/infrastructure/pdf"
	"github.com/jhoicas/rentalops/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/rentalops/internal/interfaces/http"
	"github.com/jhoicas/rentalops/pkg/config"
	"github.com/jhoicas/rentalops/pkg/logger"
	"github.com/jhoicas/rentalops/pkg/metrics"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, pool, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	districtRepo := postgres.NewDistrictRepository(pool)
	codeRepo := postgres.NewCommodityCodeRepository(pool)
	rentalRepo := postgres.NewRentalRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	referenceUC := reference.NewReferenceUseCase(districtRepo, codeRepo)
	rentalUC := rental.NewRentalUseCase(rentalRepo, districtRepo, codeRepo)

	// PDF de la orden de compra
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	orderUC := purchasing.NewPurchaseOrderUseCase(txRunner, orderRepo, rentalRepo, districtRepo, codeRepo, pdfGenerator)

	m := metrics.New("rentalops")
	acts := actions.New(referenceUC, rentalUC, orderUC, log, m)

	app := httpRouter.NewApp(httpRouter.AppOptions{Name: cfg.App.Name, Log: log, Metrics: m})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RentalOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	done := make(chan struct{})
	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:    authUC,
		Actions: acts,
		Cookie: httpRouter.CookieSettings{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			Domain: cfg.Session.Domain,
		},
		LoginLimit: httpRouter.RateLimitSettings{
			PerMinute: cfg.RateLimit.LoginPerMinute,
			Burst:     cfg.RateLimit.LoginBurst,
		},
		Metrics: m,
		Log:     log,
		Done:    done,
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
	close(done)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
