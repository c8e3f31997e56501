// Package dataset хранит загруженные при старте парковки и таблицы загруженности.
//
// Store инициализируется ровно один раз вызовом Load до запуска HTTP сервера и
// после этого только читается, поэтому обработчики используют его без блокировок.
// Освобождать ресурсы при завершении не требуется.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/domain/repository"
	"github.com/parking-dashboard/internal/pkg/metrics"
	"go.uber.org/zap"
)

// ErrAlreadyLoaded возвращается при повторном вызове Load
var ErrAlreadyLoaded = errors.New("dataset already loaded")

type snapshot struct {
	lots     []*domain.Lot
	book     domain.CongestionBook
	loadedAt time.Time
}

// Store - процессное хранилище только для чтения
type Store struct {
	source  repository.DatasetRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
	clock   clockwork.Clock

	data atomic.Pointer[snapshot]
}

// NewStore создает пустое хранилище; данные появляются после Load
func NewStore(source repository.DatasetRepository, m *metrics.Metrics, logger *zap.Logger) *Store {
	return &Store{
		source:  source,
		metrics: m,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
	}
}

// SetClock подменяет часы; вызывается до Load
func (s *Store) SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	s.clock = c
}

// Load читает оба набора данных. Любая ошибка фатальна: вызывающий код
// должен остановить запуск.
func (s *Store) Load(ctx context.Context) error {
	if s.data.Load() != nil {
		return ErrAlreadyLoaded
	}

	start := s.clock.Now()

	lots, err := s.source.LoadLots(ctx)
	if err != nil {
		return fmt.Errorf("load lot records: %w", err)
	}

	book, err := s.source.LoadCongestion(ctx)
	if err != nil {
		return fmt.Errorf("load congestion tables: %w", err)
	}

	loadedAt := s.clock.Now()
	if !s.data.CompareAndSwap(nil, &snapshot{lots: lots, book: book, loadedAt: loadedAt}) {
		return ErrAlreadyLoaded
	}

	if s.metrics != nil {
		s.metrics.LotsLoaded.Set(float64(len(lots)))
		s.metrics.WeekdayTables.Set(float64(len(book)))
		s.metrics.DatasetLoadTime.Observe(loadedAt.Sub(start).Seconds())
	}

	s.logger.Info("Dataset loaded",
		zap.Int("lots", len(lots)),
		zap.Int("weekday_tables", len(book)),
		zap.Duration("took", loadedAt.Sub(start)))

	return nil
}

// Loaded сообщает, выполнена ли инициализация
func (s *Store) Loaded() bool {
	return s.data.Load() != nil
}

// Lots возвращает загруженные парковки; срез нельзя изменять
func (s *Store) Lots() []*domain.Lot {
	if snap := s.data.Load(); snap != nil {
		return snap.lots
	}
	return nil
}

// Congestion возвращает таблицы загруженности
func (s *Store) Congestion() domain.CongestionBook {
	if snap := s.data.Load(); snap != nil {
		return snap.book
	}
	return nil
}

// LoadedAt - момент завершения загрузки
func (s *Store) LoadedAt() time.Time {
	if snap := s.data.Load(); snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}
