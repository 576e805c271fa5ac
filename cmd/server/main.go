package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopfeed/backend/internal/app"
	"github.com/shopfeed/backend/internal/infrastructure/auth"
	"github.com/shopfeed/backend/internal/infrastructure/cache"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/shopfeed/backend/internal/infrastructure/feed"
	"github.com/shopfeed/backend/internal/infrastructure/lock"
	"github.com/shopfeed/backend/internal/infrastructure/logger"
	"github.com/shopfeed/backend/internal/infrastructure/mail"
	"github.com/shopfeed/backend/internal/infrastructure/persistence"
	"github.com/shopfeed/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

//	@title			shopfeed API
//	@version		1.0
//	@description	Multi-tenant catalog, basket and order API
//
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting shopfeed backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", app.Version),
	)

	ctx := context.Background()

	// Log export tees every entry at the configured level to the collector
	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	log = lp.Bridge(log, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(cfg.Profiling, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.Enabled() && cfg.Profiling.SpanProfiles {
		tp.EnableSpanProfiles()
	}

	// Database with queries logged through zap
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterGormTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	infra := app.Infrastructure{DB: db, Metrics: mp}

	// Redis backs the import lock and the token blacklist when configured
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func(client *redis.Client) {
			if err := client.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}(client)
		infra.Locker = lock.NewRedisLocker(client)
		infra.Blacklist = auth.NewRedisTokenBlacklist(client)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		infra.Locker = lock.NewMemoryLocker()
		infra.Blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-process import locks and token blacklist")
	}

	infra.Mailer, err = mail.New(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	httpSource := feed.NewHTTPSource(cfg.Feed.FetchTimeout, cfg.Feed.MaxSize)
	sources := feed.SchemeSource{"http": httpSource, "https": httpSource}
	if cfg.Storage.Enabled() {
		s3Source, err := feed.NewS3Source(ctx, cfg.Storage, cfg.Feed.MaxSize)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		sources["s3"] = s3Source
	}
	infra.Source = sources

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.New(cfg, infra, log)
	if err != nil {
		log.Fatal("Failed to build application", zap.Error(err))
	}
	if err := application.Start(); err != nil {
		log.Fatal("Failed to start background jobs", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        application.Engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("Feed refresh did not stop in time", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
