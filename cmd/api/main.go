package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/config"
	httpDelivery "github.com/crashstats-service/internal/delivery/http"
	"github.com/crashstats-service/internal/delivery/http/handler"
	"github.com/crashstats-service/internal/domain/repository"
	"github.com/crashstats-service/internal/infrastructure/mapbox"
	"github.com/crashstats-service/internal/pkg/logger"
	"github.com/crashstats-service/internal/repository/cache"
	"github.com/crashstats-service/internal/repository/duckdb"
	"github.com/crashstats-service/internal/repository/meta"
	"github.com/crashstats-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Crash Statistics Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset", cfg.Database.Path),
	)

	// 3. Open the read-only crash dataset
	db, err := duckdb.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to open DuckDB dataset", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close DuckDB dataset", zap.Error(err))
		}
	}()

	// 4. Connect to Redis (optional: only backs the geocode daily cap)
	var counterRepo repository.CounterRepository
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		counterRepo = cache.NewCounterRepository(redisClient)
	} else {
		log.Warn("Redis not configured; geocode daily cap disabled")
	}

	// 5. Health check
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("DuckDB health check failed", zap.Error(err))
	}
	log.Info("Dataset healthy")

	// 6. Initialize Repositories
	crashRepo := duckdb.NewCrashRepository(db, log)
	metaRepo := meta.NewMetaRepository(cfg.Data.MetaPath, log)
	geocodeRepo := mapbox.NewMapboxClient(&cfg.Geocode, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	summaryUC := usecase.NewSummaryUseCase(crashRepo, metaRepo, log)
	crashesUC := usecase.NewCrashesUseCase(crashRepo, log)
	metaUC := usecase.NewMetaUseCase(metaRepo, log)
	geocodeUC := usecase.NewGeocodeUseCase(geocodeRepo, counterRepo, cfg.Geocode.DailyLimit, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	summaryHandler := handler.NewSummaryHandler(summaryUC, log)
	crashesHandler := handler.NewCrashesHandler(crashesUC, log)
	metaHandler := handler.NewMetaHandler(metaUC, log)
	geocodeHandler := handler.NewGeocodeHandler(geocodeUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		summaryHandler,
		crashesHandler,
		metaHandler,
		geocodeHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
