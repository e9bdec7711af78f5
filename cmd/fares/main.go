package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/internal/pricing"
	"github.com/jezhtech/fc-fleet-sub002/internal/routing"
	"github.com/jezhtech/fc-fleet-sub002/internal/zones"
	"github.com/jezhtech/fc-fleet-sub002/pkg/cache"
	"github.com/jezhtech/fc-fleet-sub002/pkg/common"
	"github.com/jezhtech/fc-fleet-sub002/pkg/config"
	"github.com/jezhtech/fc-fleet-sub002/pkg/database"
	"github.com/jezhtech/fc-fleet-sub002/pkg/errors"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
	"github.com/jezhtech/fc-fleet-sub002/pkg/middleware"
	"github.com/jezhtech/fc-fleet-sub002/pkg/ratelimit"
	redisclient "github.com/jezhtech/fc-fleet-sub002/pkg/redis"
)

const (
	serviceName = "fares-service"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(serviceName, cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting fares service",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	// Initialize Sentry for error tracking
	sentryConfig := errors.DefaultSentryConfig()
	sentryConfig.ServerName = serviceName
	sentryConfig.Release = version
	if err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized successfully")
	}

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to database")

	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	redisClient, err := redisclient.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}()
	logger.Info("Connected to redis")

	cacheManager := cache.NewManager(redisClient)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewLimiter(redisClient.Client, cfg.RateLimit)
		logger.Info("Rate limiting enabled",
			zap.Int("limit", cfg.RateLimit.Limit),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Duration("window", cfg.RateLimit.Window()),
		)
	}

	router := buildRoutingProvider(cfg)
	logger.Info("Routing provider configured", zap.String("provider", router.Name()))

	loc, err := cfg.Fares.Location()
	if err != nil {
		logger.Fatal("Invalid fares timezone", zap.String("timezone", cfg.Fares.Timezone), zap.Error(err))
	}

	zoneRepo := zones.NewRepository(db)
	zoneService := zones.NewService(zoneRepo, cacheManager)
	zoneHandler := zones.NewHandler(zoneService)

	fareRepo := pricing.NewRepository(db)
	fareService := pricing.NewService(fareRepo, zoneService, router, cacheManager, cfg.Fares.Currency, loc)
	fareHandler := pricing.NewHandler(fareService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RecoveryWithSentry())
	engine.Use(middleware.SentryMiddleware())
	engine.Use(middleware.CorrelationID())
	engine.Use(middleware.RequestTimeout(time.Duration(cfg.Server.WriteTimeout) * time.Second))
	engine.Use(middleware.RequestLogger(serviceName))
	engine.Use(cors.New(corsConfig(cfg)))
	engine.Use(middleware.Metrics(serviceName))
	if limiter != nil {
		engine.Use(middleware.RateLimit(limiter, cfg.RateLimit))
	}
	engine.Use(middleware.ErrorHandler())

	engine.GET("/healthz", common.HealthCheck(serviceName, version))
	engine.GET("/health/live", common.LivenessProbe(serviceName, version))

	healthChecks := map[string]func() error{
		"database": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.Ping(ctx)
		},
		"redis": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Client.Ping(ctx).Err()
		},
	}
	engine.GET("/health/ready", common.ReadinessProbe(serviceName, version, healthChecks))

	engine.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": version,
		})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	zoneHandler.RegisterRoutes(api)
	fareHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// buildRoutingProvider wires the configured provider behind a circuit
// breaker with a local estimate fallback. Unknown providers fall back to
// the estimate provider alone.
func buildRoutingProvider(cfg *config.Config) routing.Provider {
	estimate := routing.NewEstimateProvider()

	switch cfg.Routing.Provider {
	case "google":
		google := routing.NewGoogleProvider(routing.Config{
			Provider:       cfg.Routing.Provider,
			APIKey:         cfg.Routing.APIKey,
			BaseURL:        cfg.Routing.BaseURL,
			TimeoutSeconds: cfg.Routing.TimeoutSeconds,
		})
		return routing.NewResilientProvider(google, estimate)
	case "", "estimate":
		return estimate
	default:
		logger.Warn("Unknown routing provider, using estimate",
			zap.String("provider", cfg.Routing.Provider))
		return estimate
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()

	origins := strings.Split(cfg.Server.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	corsCfg.AllowOrigins = origins
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsCfg.AllowCredentials = true

	return corsCfg
}
