package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-dashboard/internal/domain"
	apperrors "github.com/parking-dashboard/internal/pkg/errors"
	"github.com/parking-dashboard/internal/pkg/metrics"
	"github.com/parking-dashboard/internal/usecase"
	"github.com/parking-dashboard/internal/usecase/dto"
)

const testTTL = time.Hour

func newDashboard(store *fakeStore, cache *MockCacheRepository, renderer *MockChartRenderer) (*usecase.DashboardUseCase, *metrics.Metrics) {
	m := metrics.NewMetricsForTesting()
	return usecase.NewDashboardUseCase(store, cache, renderer, m, zap.NewNop(), testTTL), m
}

func TestDashboardUseCase_Options(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(newFixtureStore(), &MockCacheRepository{}, &MockChartRenderer{})

	t.Run("wildcard district lists every name once", func(t *testing.T) {
		opts, err := uc.Options(ctx, domain.Wildcard)
		require.NoError(t, err)

		assert.Equal(t, []string{domain.Wildcard, "Central", "North"}, opts.Lots)
		assert.Equal(t, domain.Wildcard, opts.Districts[0])
		assert.Len(t, opts.Districts, len(domain.Districts)+1)
		assert.Equal(t, []string{domain.Wildcard, "적합", "부적합"}, opts.Solar)
		assert.Equal(t, []string{domain.Wildcard, "여유", "보통", "혼잡"}, opts.Congestion)
		assert.Len(t, opts.Weekdays, 7)
	})

	t.Run("district narrows lot names", func(t *testing.T) {
		opts, err := uc.Options(ctx, "북구")
		require.NoError(t, err)
		assert.Equal(t, []string{domain.Wildcard, "North"}, opts.Lots)
	})
}

func TestDashboardUseCase_Filter(t *testing.T) {
	ctx := context.Background()

	t.Run("all wildcards returns every lot and a selection hint", func(t *testing.T) {
		uc, m := newDashboard(newFixtureStore(), &MockCacheRepository{}, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{
			District: domain.Wildcard, Lot: domain.Wildcard, Solar: domain.Wildcard, Congestion: domain.Wildcard,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, resp.Total)
		assert.Equal(t, domain.Monday, resp.Weekday)
		assert.Nil(t, resp.Selected)
		assert.Nil(t, resp.Series)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, dto.MessageInfo, resp.Messages[0].Level)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FilterRequests))
	})

	t.Run("empty result is a warning, not an error", func(t *testing.T) {
		uc, _ := newDashboard(newFixtureStore(), &MockCacheRepository{}, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{District: "군위군"})
		require.NoError(t, err)

		assert.Equal(t, 0, resp.Total)
		assert.Empty(t, resp.Lots)
		require.NotEmpty(t, resp.Messages)
		assert.Equal(t, dto.MessageWarning, resp.Messages[0].Level)
		assert.Equal(t, "선택한 조건에 해당하는 데이터가 없습니다.", resp.Messages[0].Text)
	})

	t.Run("single lot selected by id loads series", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P001").Return(nil, nil).Once()
		cache.On("SetSeries", ctx, mock.AnythingOfType("*domain.Series"), testTTL).Return(nil).Once()
		uc, m := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{LotID: "P001", Weekday: "Monday"})
		require.NoError(t, err)

		require.NotNil(t, resp.Selected)
		assert.Equal(t, "P001", resp.Selected.ID)
		assert.Equal(t, "#2ecc71", resp.Selected.Color)
		assert.False(t, resp.Selection.Ambiguous)
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Lots, 1)
		assert.Equal(t, "P001", resp.Lots[0].ID)
		require.NotNil(t, resp.Series)
		require.Len(t, resp.Series.Points, 3)
		assert.InDelta(t, 25.0, resp.Series.Points[0].Value, 1e-9)
		assert.InDelta(t, 75.0, resp.Series.Points[2].Value, 1e-9)
		assert.Empty(t, resp.Messages)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.SeriesLookups.WithLabelValues("found")))
		cache.AssertExpectations(t)
	})

	t.Run("duplicate names pick the first match and flag ambiguity", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P001").Return(nil, nil)
		cache.On("SetSeries", ctx, mock.Anything, testTTL).Return(nil)
		uc, _ := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{Lot: "Central"})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Total)
		require.NotNil(t, resp.Selected)
		assert.Equal(t, "P001", resp.Selected.ID)
		assert.True(t, resp.Selection.Ambiguous)
		assert.Equal(t, 2, resp.Selection.Candidates)
		assert.Equal(t, []string{"P001", "P003"}, resp.Selection.LotIDs)
		require.Len(t, resp.Messages, 1)
		assert.Contains(t, resp.Messages[0].Text, "P001")
	})

	t.Run("lot id resolves a duplicate name and narrows the table", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P003").Return(nil, nil)
		cache.On("SetSeries", ctx, mock.Anything, testTTL).Return(nil)
		uc, _ := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{Lot: "Central", LotID: "P003"})
		require.NoError(t, err)

		require.NotNil(t, resp.Selected)
		assert.Equal(t, "P003", resp.Selected.ID)
		assert.False(t, resp.Selection.Ambiguous)
		assert.Equal(t, []string{"P001", "P003"}, resp.Selection.LotIDs)
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Lots, 1)
		assert.Equal(t, "P003", resp.Lots[0].ID)
		assert.Empty(t, resp.Messages)
		require.NotNil(t, resp.Series)
	})

	t.Run("name selection keeps every filtered lot in the table", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P001").Return(nil, nil)
		cache.On("SetSeries", ctx, mock.Anything, testTTL).Return(nil)
		uc, _ := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{District: "중구"})
		require.NoError(t, err)
		assert.Nil(t, resp.Selected)
		assert.Equal(t, 1, resp.Total)

		resp, err = uc.Filter(ctx, dto.FilterRequest{Lot: "Central"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.Len(t, resp.Lots, 2)
	})

	t.Run("stale cached series for absent column is ignored", func(t *testing.T) {
		stale := &domain.Series{LotID: "P002", Weekday: domain.Monday, Points: []domain.SeriesPoint{{Time: "09:00", Value: 99}}}
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P002").Return(stale, nil)
		uc, _ := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{LotID: "P002"})
		require.NoError(t, err)
		assert.Nil(t, resp.Series)
		require.Len(t, resp.Messages, 1)
		assert.Contains(t, resp.Messages[0].Text, "P002")
		cache.AssertNotCalled(t, "GetSeries", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing series becomes an info message", func(t *testing.T) {
		cache := &MockCacheRepository{}
		uc, m := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{Lot: "North"})
		require.NoError(t, err)

		require.NotNil(t, resp.Selected)
		assert.Nil(t, resp.Series)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, "선택된 주차장 (ID: P002)의 혼잡도 상세 데이터가 'Monday' 시트 또는 데이터셋에 없습니다.", resp.Messages[0].Text)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.SeriesLookups.WithLabelValues("not_found")))
		cache.AssertNotCalled(t, "SetSeries", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache error does not fail the request", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P003").Return(nil, errors.New("redis down"))
		cache.On("SetSeries", ctx, mock.Anything, testTTL).Return(errors.New("redis down"))
		uc, _ := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		resp, err := uc.Filter(ctx, dto.FilterRequest{LotID: "P003"})
		require.NoError(t, err)
		require.NotNil(t, resp.Series)
		assert.Len(t, resp.Series.Points, 2)
	})

	t.Run("unknown weekday", func(t *testing.T) {
		uc, _ := newDashboard(newFixtureStore(), &MockCacheRepository{}, &MockChartRenderer{})

		_, err := uc.Filter(ctx, dto.FilterRequest{Weekday: "Funday"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidWeekday)
	})

	t.Run("dataset not loaded", func(t *testing.T) {
		uc, _ := newDashboard(&fakeStore{}, &MockCacheRepository{}, &MockChartRenderer{})

		_, err := uc.Filter(ctx, dto.FilterRequest{})
		assert.ErrorIs(t, err, apperrors.ErrDatasetUnavailable)
	})
}

func TestDashboardUseCase_Series(t *testing.T) {
	ctx := context.Background()

	t.Run("served from cache", func(t *testing.T) {
		cached := &domain.Series{LotID: "P001", Weekday: domain.Monday, Points: []domain.SeriesPoint{{Time: "09:00", Value: 42}}}
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P001").Return(cached, nil).Once()
		uc, m := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		series, err := uc.Series(ctx, dto.SeriesRequest{LotID: "P001", Weekday: "Monday"})
		require.NoError(t, err)
		assert.Equal(t, cached, series)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("series", "hit")))
		cache.AssertExpectations(t)
	})

	t.Run("lookup does not mutate stored table", func(t *testing.T) {
		store := newFixtureStore()
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P001").Return(nil, nil)
		cache.On("SetSeries", ctx, mock.Anything, testTTL).Return(nil)
		uc, _ := newDashboard(store, cache, &MockChartRenderer{})

		for i := 0; i < 2; i++ {
			series, err := uc.Series(ctx, dto.SeriesRequest{LotID: "P001", Weekday: "Monday"})
			require.NoError(t, err)
			assert.InDelta(t, 50.0, series.Points[1].Value, 1e-9)
		}
		v, ok := store.book[domain.Monday].Value("P001", 1)
		require.True(t, ok)
		assert.InDelta(t, 0.5, v, 1e-9)
	})

	t.Run("absent column is SERIES_NOT_FOUND", func(t *testing.T) {
		cache := &MockCacheRepository{}
		uc, m := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		_, err := uc.Series(ctx, dto.SeriesRequest{LotID: "P002", Weekday: "Monday"})
		assert.ErrorIs(t, err, apperrors.ErrSeriesNotFound)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.SeriesLookups.WithLabelValues("not_found")))
	})

	t.Run("stale cache entry for absent column is SERIES_NOT_FOUND", func(t *testing.T) {
		stale := &domain.Series{LotID: "P002", Weekday: domain.Monday, Points: []domain.SeriesPoint{{Time: "09:00", Value: 99}}}
		cache := &MockCacheRepository{}
		cache.On("GetSeries", ctx, domain.Monday, "P002").Return(stale, nil)
		uc, _ := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		series, err := uc.Series(ctx, dto.SeriesRequest{LotID: "P002", Weekday: "Monday"})
		assert.ErrorIs(t, err, apperrors.ErrSeriesNotFound)
		assert.Nil(t, series)
		cache.AssertNotCalled(t, "GetSeries", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing weekday table is SERIES_NOT_FOUND", func(t *testing.T) {
		cache := &MockCacheRepository{}
		uc, _ := newDashboard(newFixtureStore(), cache, &MockChartRenderer{})

		_, err := uc.Series(ctx, dto.SeriesRequest{LotID: "P001", Weekday: "Sunday"})
		assert.ErrorIs(t, err, apperrors.ErrSeriesNotFound)
		cache.AssertNotCalled(t, "GetSeries", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown lot", func(t *testing.T) {
		uc, _ := newDashboard(newFixtureStore(), &MockCacheRepository{}, &MockChartRenderer{})

		_, err := uc.Series(ctx, dto.SeriesRequest{LotID: "P999", Weekday: "Monday"})
		assert.ErrorIs(t, err, apperrors.ErrLotNotFound)
	})
}

func TestDashboardUseCase_Chart(t *testing.T) {
	ctx := context.Background()
	png := []byte{0x89, 'P', 'N', 'G'}

	t.Run("renders and caches on miss", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetChart", ctx, domain.Monday, "P001").Return(nil, nil).Once()
		cache.On("GetSeries", ctx, domain.Monday, "P001").Return(nil, nil).Once()
		cache.On("SetSeries", ctx, mock.Anything, testTTL).Return(nil).Once()
		cache.On("SetChart", ctx, domain.Monday, "P001", png, testTTL).Return(nil).Once()

		renderer := &MockChartRenderer{}
		renderer.On("Render", mock.MatchedBy(func(s domain.Series) bool {
			return s.LotID == "P001" && len(s.Points) == 3
		})).Return(png, nil).Once()

		uc, _ := newDashboard(newFixtureStore(), cache, renderer)

		got, err := uc.Chart(ctx, dto.SeriesRequest{LotID: "P001", Weekday: "Monday"})
		require.NoError(t, err)
		assert.Equal(t, png, got)
		cache.AssertExpectations(t)
		renderer.AssertExpectations(t)
	})

	t.Run("cache hit skips rendering", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetChart", ctx, domain.Monday, "P001").Return(png, nil).Once()
		renderer := &MockChartRenderer{}

		uc, _ := newDashboard(newFixtureStore(), cache, renderer)

		got, err := uc.Chart(ctx, dto.SeriesRequest{LotID: "P001", Weekday: "Monday"})
		require.NoError(t, err)
		assert.Equal(t, png, got)
		renderer.AssertNotCalled(t, "Render", mock.Anything)
	})

	t.Run("stale cached chart for absent column is SERIES_NOT_FOUND", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetChart", ctx, domain.Monday, "P002").Return([]byte("stale-png"), nil)
		renderer := &MockChartRenderer{}
		uc, _ := newDashboard(newFixtureStore(), cache, renderer)

		got, err := uc.Chart(ctx, dto.SeriesRequest{LotID: "P002", Weekday: "Monday"})
		assert.ErrorIs(t, err, apperrors.ErrSeriesNotFound)
		assert.Nil(t, got)
		cache.AssertNotCalled(t, "GetChart", mock.Anything, mock.Anything, mock.Anything)
		renderer.AssertNotCalled(t, "Render", mock.Anything)
	})

	t.Run("render failure", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetChart", ctx, domain.Monday, "P001").Return(nil, nil)
		cache.On("GetSeries", ctx, domain.Monday, "P001").Return(nil, nil)
		cache.On("SetSeries", ctx, mock.Anything, testTTL).Return(nil)
		renderer := &MockChartRenderer{}
		renderer.On("Render", mock.Anything).Return(nil, errors.New("boom"))

		uc, _ := newDashboard(newFixtureStore(), cache, renderer)

		_, err := uc.Chart(ctx, dto.SeriesRequest{LotID: "P001", Weekday: "Monday"})
		assert.ErrorIs(t, err, apperrors.ErrChartRender)
	})
}
