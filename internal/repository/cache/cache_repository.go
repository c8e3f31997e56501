package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "parking:"

type cacheRepository struct {
	client     *redis.Client
	logger     *zap.Logger
	generation string
}

// NewCacheRepository - кеш поверх Redis. Ключи рядов, графиков и статистики
// включают generation, поэтому записи прошлой загрузки данных не читаются.
func NewCacheRepository(redis *Redis, generation string) repository.CacheRepository {
	return &cacheRepository{
		client:     redis.Client(),
		logger:     redis.logger,
		generation: generation,
	}
}

// Generation - поколение ключей по времени загрузки данных
func Generation(loadedAt time.Time) string {
	return strconv.FormatInt(loadedAt.UnixNano(), 10)
}

// SeriesKey - ключ ряда загруженности
func SeriesKey(generation string, weekday domain.Weekday, lotID string) string {
	return fmt.Sprintf("%s%s:series:%s:%s", keyPrefix, generation, weekday, lotID)
}

// ChartKey - ключ PNG графика
func ChartKey(generation string, weekday domain.Weekday, lotID string) string {
	return fmt.Sprintf("%s%s:chart:%s:%s", keyPrefix, generation, weekday, lotID)
}

// SummaryKey - ключ статистики набора данных
func SummaryKey(generation string) string {
	return fmt.Sprintf("%s%s:summary", keyPrefix, generation)
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetSeries получает ряд загруженности из кеша
func (r *cacheRepository) GetSeries(ctx context.Context, weekday domain.Weekday, lotID string) (*domain.Series, error) {
	var series domain.Series
	found, err := r.getJSON(ctx, SeriesKey(r.generation, weekday, lotID), &series)
	if err != nil || !found {
		return nil, err
	}
	return &series, nil
}

// SetSeries сохраняет ряд загруженности в кеше
func (r *cacheRepository) SetSeries(ctx context.Context, series *domain.Series, ttl time.Duration) error {
	return r.setJSON(ctx, SeriesKey(r.generation, series.Weekday, series.LotID), series, ttl)
}

func (r *cacheRepository) GetChart(ctx context.Context, weekday domain.Weekday, lotID string) ([]byte, error) {
	return r.Get(ctx, ChartKey(r.generation, weekday, lotID))
}

func (r *cacheRepository) SetChart(ctx context.Context, weekday domain.Weekday, lotID string, png []byte, ttl time.Duration) error {
	return r.Set(ctx, ChartKey(r.generation, weekday, lotID), png, ttl)
}

// GetSummary получает статистику из кеша
func (r *cacheRepository) GetSummary(ctx context.Context) (*domain.DatasetSummary, error) {
	var summary domain.DatasetSummary
	found, err := r.getJSON(ctx, SummaryKey(r.generation), &summary)
	if err != nil || !found {
		return nil, err
	}
	return &summary, nil
}

// SetSummary сохраняет статистику в кеше
func (r *cacheRepository) SetSummary(ctx context.Context, summary *domain.DatasetSummary, ttl time.Duration) error {
	return r.setJSON(ctx, SummaryKey(r.generation), summary, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal value for cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}
