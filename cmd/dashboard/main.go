package main

// @title Parking Dashboard API
// @version 1.0.0
// @description Общественные парковки Тэгу: фильтры по району, пригодности для солнечных панелей и загруженности, почасовые ряды загруженности по дням недели.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/parking-dashboard/docs"
	"github.com/parking-dashboard/internal/chart"
	"github.com/parking-dashboard/internal/config"
	"github.com/parking-dashboard/internal/dataset"
	httpDelivery "github.com/parking-dashboard/internal/delivery/http"
	"github.com/parking-dashboard/internal/delivery/http/handler"
	"github.com/parking-dashboard/internal/domain/repository"
	"github.com/parking-dashboard/internal/pkg/logger"
	"github.com/parking-dashboard/internal/pkg/metrics"
	"github.com/parking-dashboard/internal/repository/cache"
	"github.com/parking-dashboard/internal/repository/postgres"
	"github.com/parking-dashboard/internal/repository/xlsx"
	"github.com/parking-dashboard/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parking Dashboard")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("data_source", cfg.Data.Source),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	// 4. Dataset source
	var (
		source repository.DatasetRepository
		db     *postgres.DB
	)
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		source = postgres.NewDatasetRepository(db, log)
		log.Info("PostgreSQL snapshot source connected")
	default:
		source = xlsx.NewDatasetRepository(cfg.Data.MainDataPath, cfg.Data.CongestionDataPath, log)
	}

	// 5. Load datasets once; any error here is fatal
	store := dataset.NewStore(source, m, log)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := store.Load(loadCtx); err != nil {
		cancelLoad()
		log.Fatal("Failed to load datasets", zap.Error(err))
	}
	cancelLoad()

	// 6. Cache
	cacheRepo := cache.NewNoopRepository()
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Health(ctx)
		cancel()
		if err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}

		cacheRepo = cache.NewCacheRepository(redisClient, cache.Generation(store.LoadedAt()))
		log.Info("Redis connected")
	}

	// 7. Initialize Use Cases
	dashboardUC := usecase.NewDashboardUseCase(
		store,
		cacheRepo,
		chart.NewLineRenderer(),
		m,
		log,
		cfg.Cache.SeriesCacheTTL,
	)

	statsUC := usecase.NewStatsUseCase(
		store,
		cacheRepo,
		m,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	dashboardHandler, err := handler.NewDashboardHandler(dashboardUC, cfg.Server.TemplatesDir, log)
	if err != nil {
		log.Warn("Failed to load dashboard templates, serving JSON API only",
			zap.String("templates_dir", cfg.Server.TemplatesDir),
			zap.Error(err))
	}
	lotHandler := handler.NewLotHandler(dashboardUC, log)
	congestionHandler := handler.NewCongestionHandler(dashboardUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		m,
		registry,
		store,
		dashboardHandler,
		lotHandler,
		congestionHandler,
		statsHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Int("lots", len(store.Lots())),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
