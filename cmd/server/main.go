package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/eventhub/eventhub/infrastructure/http/middleware"
	"github.com/eventhub/eventhub/infrastructure/service/jwt"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/infrastructure/service/ratelimit"
	"github.com/eventhub/eventhub/internal/adapter/escrow"
	httpadapter "github.com/eventhub/eventhub/internal/adapter/http"
	"github.com/eventhub/eventhub/internal/adapter/persistence"
	"github.com/eventhub/eventhub/internal/config"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/ports"
	"github.com/eventhub/eventhub/internal/usecase"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger
	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "eventhub-api",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env":          cfg.Server.Environment,
		"store_driver": cfg.Database.Driver,
	})

	store, closeStore, err := openStore(ctx, cfg, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize resource store", err, nil)
		log.Fatalf("Failed to initialize resource store: %v", err)
	}
	defer closeStore()

	tokenService, err := jwt.NewJWTService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Algorithm:      cfg.JWT.Algorithm,
		AccessTokenTTL: cfg.JWT.AccessTokenTTL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	// Redis-backed or noop based on config; a broken Redis degrades to noop.
	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{
		Enabled:  cfg.RateLimit.Enabled,
		RedisURL: cfg.RateLimit.RedisURL,
		Prefix:   "eventhub:ratelimit",
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limit service", err, map[string]interface{}{
			"redis_url": cfg.RateLimit.RedisURL,
		})
		rateLimitService = ratelimit.NewNoopRateLimitService()
	}
	defer rateLimitService.Close()

	// Initialize use cases
	resourceUseCase := usecase.NewResourceUseCase(store, domain.DefaultRegistry(), structuredLogger)
	designLikeUseCase := usecase.NewDesignLikeUseCase(store, structuredLogger)
	escrowClient := escrow.NewClient(escrow.Config{
		BaseURL: cfg.Escrow.BaseURL,
		Email:   cfg.Escrow.Email,
		APIKey:  cfg.Escrow.APIKey,
		Timeout: cfg.Escrow.Timeout,
	}, structuredLogger)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokenService, structuredLogger)

	routes := httpadapter.ResourceRoutes(resourceUseCase, authMiddleware, structuredLogger)
	routes = append(routes,
		httpadapter.NewDesignLikeHandler(designLikeUseCase, authMiddleware, structuredLogger),
		httpadapter.NewEscrowHandler(escrowClient, authMiddleware, structuredLogger),
	)

	deps := httpadapter.Dependencies{
		Routes: routes,
		Logger: structuredLogger,
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimit = middleware.NewRateLimitMiddleware(rateLimitService, cfg.RateLimit.Requests, cfg.RateLimit.Window, structuredLogger)
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = middleware.NewHTTPMetrics("eventhub")
	}

	serverConfig := httpadapter.ServerConfig{
		Addr:         cfg.Addr(),
		APIPrefix:    cfg.Server.APIPrefix,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	if cfg.CORS.Enabled && len(cfg.CORS.AllowedOrigins) > 0 {
		serverConfig.CORS = &middleware.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowCredentials: cfg.CORS.AllowCredentials,
		}
	}

	server := httpadapter.NewServer(serverConfig, deps)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			structuredLogger.Error(ctx, "Server failed to start", err, map[string]interface{}{
				"addr": cfg.Addr(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}

// openStore returns the configured resource store and its cleanup.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (ports.ResourceStore, func(), error) {
	if cfg.Database.Driver == config.StoreDriverMemory {
		log.Warn(ctx, "Using in-memory store; data is lost on restart", nil)
		return persistence.NewMemoryResourceStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetConnMaxIdleTime(cfg.Database.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	log.Info(ctx, "Database connection established", nil)
	return persistence.NewPostgresResourceStore(db), func() { _ = db.Close() }, nil
}
