package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/labour-intake/internal/config"
	"github.com/fadilmartias/labour-intake/internal/domain/fiber/handler"
	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/logger"
	"github.com/fadilmartias/labour-intake/internal/middleware"
	"github.com/fadilmartias/labour-intake/internal/service"
	"github.com/fadilmartias/labour-intake/internal/usecase"
	"github.com/fadilmartias/labour-intake/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appConfig := config.LoadAppConfig()
	intakeConfig := config.LoadIntakeConfig()

	log, err := logger.New(appConfig.LogJSON, appConfig.LogDebug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	stores, err := openStores(appConfig.Storage, intakeConfig.SessionStore, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	backends, err := service.NewBackends(ctx, intakeConfig.Provider, service.BreakerConfig{
		Max:      intakeConfig.CircuitBreakerMax,
		Cooldown: intakeConfig.CircuitBreakerCooldown,
	}, log)
	if err != nil {
		log.Warn("model backend unavailable, every stage will use its fallback", zap.Error(err))
	}
	opts := intake.Options{
		Generator: backends.Text,
		Logger:    log,
		Timeout:   intakeConfig.ModelTimeout,
	}
	embedder := intake.NewEmbedder(backends.Embedding, opts)

	app := newApp(appConfig, log)
	api := app.Group("/api")
	handler.NewIntakeHandler(usecase.NewIntakeUsecase(stores.sessions, stores.profiles, opts, embedder), log).RegisterRoutes(api)
	handler.NewLabourHandler(usecase.NewLabourUsecase(stores.profiles, embedder, log), log).RegisterRoutes(api)

	go monitorGoroutines(ctx, log)

	errc := make(chan error, 1)
	go func() {
		log.Info("server running",
			zap.String("addr", appConfig.Port),
			zap.String("storage", appConfig.Storage),
			zap.String("session_store", intakeConfig.SessionStore),
			zap.String("provider", intakeConfig.Provider),
		)
		errc <- app.Listen(appConfig.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

func newApp(appConfig *config.AppConfig, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		ErrorHandler: errorHandler(log),
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(middleware.RateLimiter(appConfig.RateLimitMax, appConfig.RateLimitWindow))
	return app
}

// errorHandler answers errors no handler turned into a response. Server-side
// failures get a generic message; the cause only reaches dev_message outside production.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    code,
				Message: "Internal Server Error",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: err.Error()})
	}
}

func monitorGoroutines(ctx context.Context, log *zap.Logger) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("runtime", zap.Int("goroutines", runtime.NumGoroutine()))
		}
	}
}
