package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/lummy-consults/lummy-api/api/swagger"
	"github.com/lummy-consults/lummy-api/internal/handler"
	"github.com/lummy-consults/lummy-api/internal/middleware"
	"github.com/lummy-consults/lummy-api/internal/repository"
	"github.com/lummy-consults/lummy-api/internal/routes"
	"github.com/lummy-consults/lummy-api/internal/service"
	"github.com/lummy-consults/lummy-api/pkg/cache"
	"github.com/lummy-consults/lummy-api/pkg/config"
	"github.com/lummy-consults/lummy-api/pkg/database"
	"github.com/lummy-consults/lummy-api/pkg/logger"
	corsmiddleware "github.com/lummy-consults/lummy-api/pkg/middleware/cors"
	reqidmiddleware "github.com/lummy-consults/lummy-api/pkg/middleware/requestid"
)

const shutdownTimeout = 15 * time.Second

// @title Lummy Consults API
// @version 1.0.0
// @description Tutor directory and job board
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Env,
			EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			AttachStacktrace: true,
		}); err != nil {
			logr.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		applied, err := database.Migrate(ctx, db)
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logr.Info("migrations applied", zap.Strings("versions", applied))
	}

	rdb, err := cache.NewRedis(ctx, cfg.Redis, cfg.Cache)
	if err != nil {
		// listings fall back to the database
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}
	var cacheClient redis.UniversalClient
	if rdb != nil {
		cacheClient = rdb
		defer rdb.Close() //nolint:errcheck
	}

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	userRepo := repository.NewUserRepository(db)
	tutorRepo := repository.NewTutorProfileRepository(db)
	jobRepo := repository.NewJobRepository(db)
	cacheSvc := service.NewCacheService(repository.NewCacheRepository(cacheClient), metrics, cfg.Cache.TTL, logr, cacheClient != nil)

	authSvc := service.NewAuthService(userRepo, validate, logr, metrics, service.AuthConfig{
		Secret:                 cfg.JWT.Secret,
		TokenExpiry:            cfg.JWT.Expiration,
		Issuer:                 cfg.JWT.Issuer,
		AllowAdminRegistration: cfg.Auth.AllowAdminRegistration,
	})
	tutorSvc := service.NewTutorService(tutorRepo, userRepo, cacheSvc, validate, logr)
	jobSvc := service.NewJobService(jobRepo, cacheSvc, validate, logr)

	checks := map[string]handler.HealthCheck{"postgres": db.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(middleware.ErrorReporting())
	r.Use(middleware.Metrics(metrics))

	routes.Register(r, authSvc, routes.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Tutor:   handler.NewTutorHandler(tutorSvc),
		Job:     handler.NewJobHandler(jobSvc),
		Metrics: handler.NewMetricsHandler(metrics, checks),
	}, routes.Options{Prefix: cfg.APIPrefix, EnableDocs: cfg.Env != config.EnvProduction})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
