package usecase

import (
	"context"
	"time"

	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/domain/repository"
	"github.com/parking-dashboard/internal/pkg/errors"
	"github.com/parking-dashboard/internal/pkg/metrics"
	"go.uber.org/zap"
)

// StatsUseCase обрабатывает бизнес-логику для статистики по набору данных
type StatsUseCase struct {
	store     DatasetReader
	cacheRepo repository.CacheRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	store DatasetReader,
	cacheRepo repository.CacheRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		store:     store,
		cacheRepo: cacheRepo,
		metrics:   m,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.DatasetSummary, error) {
	if !uc.store.Loaded() {
		return nil, errors.ErrDatasetUnavailable
	}

	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetSummary(ctx)
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}
	if cached != nil && cached.LoadedAt.Equal(uc.store.LoadedAt()) {
		uc.metrics.CacheLookups.WithLabelValues("stats", "hit").Inc()
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}
	uc.metrics.CacheLookups.WithLabelValues("stats", "miss").Inc()

	// 2. Считаем по загруженным данным
	stats := domain.Summarize(uc.store.Lots(), uc.store.Congestion(), uc.store.LoadedAt())

	// 3. Кешируем
	if err := uc.cacheRepo.SetSummary(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	return stats, nil
}
