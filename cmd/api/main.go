package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	_ "github.com/jhoicas/Hotel-api/docs"
	"github.com/jhoicas/Hotel-api/internal/application/clients"
	"github.com/jhoicas/Hotel-api/internal/application/occupancy"
	"github.com/jhoicas/Hotel-api/internal/application/rooms"
	"github.com/jhoicas/Hotel-api/internal/infrastructure/memory"
	"github.com/jhoicas/Hotel-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Hotel-api/internal/interfaces/http"
	"github.com/jhoicas/Hotel-api/internal/platform/metrics"
	"github.com/jhoicas/Hotel-api/pkg/config"
	"github.com/jhoicas/Hotel-api/pkg/logger"
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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store occupancy.Store
	switch cfg.App.Storage {
	case config.StorageMemory:
		store = memory.NewStore(memory.WithTxTimeout(cfg.Occupancy.TxTimeout))
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar esquema")
			}
			log.Info().Msg("esquema aplicado")
		}
		store = postgres.NewTxRunner(pool,
			postgres.WithTimeout(cfg.Occupancy.TxTimeout),
			postgres.WithLockTimeout(cfg.Occupancy.LockTimeout),
		)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	opts := []occupancy.Option{
		occupancy.WithMaxRooms(cfg.Occupancy.MaxRooms),
		occupancy.WithLogger(log.Component("occupancy")),
		occupancy.WithMetrics(m),
	}
	occupancySvc := occupancy.NewService(store, opts...)
	checker := occupancy.NewConsistencyChecker(store, opts...)
	resolver := occupancy.NewResolver(store)
	roomUC := rooms.NewRoomUseCase(store, checker, log.Component("rooms"))
	clientUC := clients.NewClientUseCase(store, cfg.Occupancy.MaxRooms, log.Component("clients"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hotel API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RoomUC:    roomUC,
		ClientUC:  clientUC,
		Occupancy: occupancySvc,
		Resolver:  resolver,
		JWTSecret: cfg.JWT.Secret,
		Gatherer:  prometheus.DefaultGatherer,
	})

	// Auditoría al arrancar: las divergencias se registran y cuentan, no detienen el servicio
	if violations, err := checker.Audit(ctx); err != nil {
		log.Error().Err(err).Msg("auditoría de consistencia")
	} else if len(violations) > 0 {
		log.Warn().Int("violaciones", len(violations)).Msg("habitaciones inconsistentes con el ledger")
	}

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
