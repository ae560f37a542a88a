// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/apartment-api/internal/admin"
	"github.com/carterperez-dev/apartment-api/internal/auth"
	"github.com/carterperez-dev/apartment-api/internal/core"
	"github.com/carterperez-dev/apartment-api/internal/health"
	"github.com/carterperez-dev/apartment-api/internal/metrics"
	"github.com/carterperez-dev/apartment-api/internal/middleware"
	"github.com/carterperez-dev/apartment-api/internal/mpesa"
	"github.com/carterperez-dev/apartment-api/internal/payment"
	"github.com/carterperez-dev/apartment-api/internal/room"
	"github.com/carterperez-dev/apartment-api/internal/server"
	"github.com/carterperez-dev/apartment-api/internal/tenant"
	"github.com/carterperez-dev/apartment-api/internal/user"
)

const drainDelay = 5 * time.Second

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
		"ttl", jwtManager.TokenTTL(),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewDefault()
	}

	userSvc := user.NewService(user.NewRepository(db.DB))
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc, jwtManager)

	roomHandler := room.NewHandler(room.NewService(db.DB))
	tenantHandler := tenant.NewHandler(tenant.NewService(db.DB, m))
	paymentHandler := payment.NewHandler(payment.NewService(db.DB, m))
	mpesaHandler := mpesa.NewHandler(mpesa.NewService(
		db.DB,
		mpesa.NewStubGateway(cfg.Mpesa),
		cfg.Mpesa,
		m,
	))

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counter:    db,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	if m != nil {
		router.Use(m.Middleware)
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			Namespace: redis.Key("global"),
			FailOpen:  true,
			OnLimited: onLimited(m, "global"),
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	pushLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.PushRequests,
			cfg.RateLimit.PushBurst,
		),
		Namespace: redis.Key("stkpush"),
		KeyFunc:   middleware.KeyByUserAndEndpoint,
		FailOpen:  false,
		OnLimited: onLimited(m, "stkpush"),
	}).Handler

	router.Get("/", server.Home)
	healthHandler.RegisterRoutes(router)
	if m != nil {
		router.Handle(cfg.Metrics.Path, m.Handler())
	}

	authenticator := middleware.Authenticator(jwtManager)

	authHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router, authenticator)
	roomHandler.RegisterRoutes(router, authenticator, middleware.RequireStaff)
	tenantHandler.RegisterRoutes(router, authenticator, middleware.RequireStaff)
	paymentHandler.RegisterRoutes(router, authenticator, middleware.RequireStaff)
	mpesaHandler.RegisterRoutes(
		router,
		authenticator,
		middleware.RequireStaff,
		pushLimiter,
	)
	userHandler.RegisterAdminRoutes(router, authenticator, middleware.RequireManager)
	adminHandler.RegisterRoutes(router, authenticator, middleware.RequireManager)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func onLimited(
	m *metrics.Metrics,
	limiter string,
) func(http.ResponseWriter, *http.Request, *redis_rate.Result) {
	return func(w http.ResponseWriter, r *http.Request, res *redis_rate.Result) {
		m.RateLimited(limiter)
		middleware.WriteRateLimitExceeded(w, res)
	}
}
