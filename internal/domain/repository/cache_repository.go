package repository

import (
	"context"
	"time"

	"github.com/parking-dashboard/internal/domain"
)

// CacheRepository определяет методы для работы с кешем производных данных
type CacheRepository interface {
	// Get получает значение из кеша по ключу; nil, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetSeries получает ряд загруженности из кеша
	GetSeries(ctx context.Context, weekday domain.Weekday, lotID string) (*domain.Series, error)

	// SetSeries сохраняет ряд загруженности в кеше
	SetSeries(ctx context.Context, series *domain.Series, ttl time.Duration) error

	// GetChart получает PNG графика из кеша
	GetChart(ctx context.Context, weekday domain.Weekday, lotID string) ([]byte, error)

	// SetChart сохраняет PNG графика в кеше
	SetChart(ctx context.Context, weekday domain.Weekday, lotID string, png []byte, ttl time.Duration) error

	// GetSummary получает статистику из кеша
	GetSummary(ctx context.Context) (*domain.DatasetSummary, error)

	// SetSummary сохраняет статистику в кеше
	SetSummary(ctx context.Context, summary *domain.DatasetSummary, ttl time.Duration) error
}
