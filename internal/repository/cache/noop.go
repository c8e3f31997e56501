package cache

import (
	"context"
	"time"

	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/domain/repository"
)

// noopRepository используется при CACHE_ENABLED=false: всегда промах, запись игнорируется
type noopRepository struct{}

func NewNoopRepository() repository.CacheRepository {
	return noopRepository{}
}

func (noopRepository) Get(context.Context, string) ([]byte, error)              { return nil, nil }
func (noopRepository) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noopRepository) Delete(context.Context, string) error                     { return nil }
func (noopRepository) GetChart(context.Context, domain.Weekday, string) ([]byte, error) {
	return nil, nil
}

func (noopRepository) GetSeries(context.Context, domain.Weekday, string) (*domain.Series, error) {
	return nil, nil
}

func (noopRepository) SetSeries(context.Context, *domain.Series, time.Duration) error {
	return nil
}

func (noopRepository) SetChart(context.Context, domain.Weekday, string, []byte, time.Duration) error {
	return nil
}

func (noopRepository) GetSummary(context.Context) (*domain.DatasetSummary, error) {
	return nil, nil
}

func (noopRepository) SetSummary(context.Context, *domain.DatasetSummary, time.Duration) error {
	return nil
}
