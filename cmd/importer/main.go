package main

import (
	"context"
	"fmt"
	"time"

	"github.com/parking-dashboard/internal/config"
	"github.com/parking-dashboard/internal/pkg/logger"
	"github.com/parking-dashboard/internal/repository/postgres"
	"github.com/parking-dashboard/internal/repository/xlsx"
	"go.uber.org/zap"
)

// Импорт xlsx файлов в PostgreSQL: дашборд с DATA_SOURCE=postgres читает этот снимок
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

	log.Info("Starting snapshot import",
		zap.String("main_data_path", cfg.Data.MainDataPath),
		zap.String("congestion_data_path", cfg.Data.CongestionDataPath))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// 3. Read spreadsheets
	source := xlsx.NewDatasetRepository(cfg.Data.MainDataPath, cfg.Data.CongestionDataPath, log)

	lots, err := source.LoadLots(ctx)
	if err != nil {
		log.Fatal("Failed to load lots", zap.Error(err))
	}
	book, err := source.LoadCongestion(ctx)
	if err != nil {
		log.Fatal("Failed to load congestion tables", zap.Error(err))
	}

	// 4. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// 5. Replace snapshot
	repo := postgres.NewDatasetRepository(db, log)
	if err := repo.ReplaceSnapshot(ctx, lots, book); err != nil {
		log.Fatal("Failed to write snapshot", zap.Error(err))
	}

	log.Info("Snapshot imported",
		zap.Int("lots", len(lots)),
		zap.Int("weekday_tables", len(book)))
}
