package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/parking-dashboard/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSeries(ctx context.Context, weekday domain.Weekday, lotID string) (*domain.Series, error) {
	args := m.Called(ctx, weekday, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Series), args.Error(1)
}

func (m *MockCacheRepository) SetSeries(ctx context.Context, series *domain.Series, ttl time.Duration) error {
	args := m.Called(ctx, series, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetChart(ctx context.Context, weekday domain.Weekday, lotID string) ([]byte, error) {
	args := m.Called(ctx, weekday, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetChart(ctx context.Context, weekday domain.Weekday, lotID string, png []byte, ttl time.Duration) error {
	args := m.Called(ctx, weekday, lotID, png, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSummary(ctx context.Context) (*domain.DatasetSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DatasetSummary), args.Error(1)
}

func (m *MockCacheRepository) SetSummary(ctx context.Context, summary *domain.DatasetSummary, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

// MockChartRenderer is a mock of ChartRenderer
type MockChartRenderer struct {
	mock.Mock
}

func (m *MockChartRenderer) Render(series domain.Series) ([]byte, error) {
	args := m.Called(series)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// fakeStore - загруженный набор данных в памяти
type fakeStore struct {
	loaded   bool
	lots     []*domain.Lot
	book     domain.CongestionBook
	loadedAt time.Time
}

func (s *fakeStore) Loaded() bool                      { return s.loaded }
func (s *fakeStore) Lots() []*domain.Lot               { return s.lots }
func (s *fakeStore) Congestion() domain.CongestionBook { return s.book }
func (s *fakeStore) LoadedAt() time.Time               { return s.loadedAt }

func ptrFloat64(v float64) *float64 {
	return &v
}

// newFixtureStore - три парковки; у P002 нет колонки в понедельник,
// у P001 и P003 одинаковое название
func newFixtureStore() *fakeStore {
	lots := []*domain.Lot{
		{ID: "P001", Name: "Central", Address: "대구 중구 동인동 1", Lat: 35.87, Lon: 128.60, Solar: domain.SolarSuitable, Congestion: domain.CongestionLight},
		{ID: "P002", Name: "North", Address: "대구 북구 산격동 2", Lat: 35.89, Lon: 128.61, Solar: domain.SolarUnsuitable, Congestion: domain.CongestionCongested},
		{ID: "P003", Name: "Central", Address: "대구 수성구 범어동 3", Lat: 35.85, Lon: 128.63, Solar: domain.SolarSuitable, Congestion: domain.CongestionModerate},
	}

	monday := domain.NewCongestionTable(domain.Monday, []string{"09:00", "10:00", "11:00"})
	_ = monday.SetColumn("P001", []*float64{ptrFloat64(0.25), ptrFloat64(0.5), ptrFloat64(0.75)})
	_ = monday.SetColumn("P003", []*float64{ptrFloat64(0.1), nil, ptrFloat64(0.3)})

	return &fakeStore{
		loaded:   true,
		lots:     lots,
		book:     domain.CongestionBook{domain.Monday: monday},
		loadedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}
