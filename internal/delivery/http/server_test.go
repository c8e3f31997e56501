package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-dashboard/internal/chart"
	"github.com/parking-dashboard/internal/config"
	"github.com/parking-dashboard/internal/dataset"
	httpDelivery "github.com/parking-dashboard/internal/delivery/http"
	"github.com/parking-dashboard/internal/delivery/http/handler"
	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/pkg/metrics"
	"github.com/parking-dashboard/internal/repository/cache"
	"github.com/parking-dashboard/internal/usecase"
)

// staticSource - источник данных с фиксированным набором парковок
type staticSource struct {
	lots []*domain.Lot
	book domain.CongestionBook
}

func (s staticSource) LoadLots(context.Context) ([]*domain.Lot, error) { return s.lots, nil }
func (s staticSource) LoadCongestion(context.Context) (domain.CongestionBook, error) {
	return s.book, nil
}

func f64(v float64) *float64 { return &v }

func fixtureSource(t *testing.T) staticSource {
	t.Helper()

	monday := domain.NewCongestionTable(domain.Monday, []string{"09:00", "10:00", "11:00"})
	require.NoError(t, monday.SetColumn("P001", []*float64{f64(0.2), f64(0.4), f64(0.6)}))

	return staticSource{
		lots: []*domain.Lot{
			{ID: "P001", Name: "동인 공영주차장", Address: "대구 중구 동인동 1", Lat: 35.87, Lon: 128.60, Solar: domain.SolarSuitable, Congestion: domain.CongestionLight},
			{ID: "P002", Name: "산격 공영주차장", Address: "대구 북구 산격동 2", Lat: 35.89, Lon: 128.61, Solar: domain.SolarUnsuitable, Congestion: domain.CongestionCongested},
		},
		book: domain.CongestionBook{domain.Monday: monday},
	}
}

func newTestServer(t *testing.T) *httpDelivery.Server {
	t.Helper()
	return newTestServerWith(t, fixtureSource(t))
}

func newTestServerWith(t *testing.T, source staticSource) *httpDelivery.Server {
	t.Helper()

	log := zap.NewNop()
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 0}}
	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	store := dataset.NewStore(source, m, log)
	require.NoError(t, store.Load(context.Background()))

	cacheRepo := cache.NewNoopRepository()
	dashboardUC := usecase.NewDashboardUseCase(store, cacheRepo, chart.NewLineRenderer(), m, log, 0)
	statsUC := usecase.NewStatsUseCase(store, cacheRepo, m, log, 0)

	dashboardHandler, err := handler.NewDashboardHandler(dashboardUC, "../../../templates", log)
	require.NoError(t, err)

	return httpDelivery.NewServer(
		cfg,
		log,
		m,
		registry,
		store,
		dashboardHandler,
		handler.NewLotHandler(dashboardUC, log),
		handler.NewCongestionHandler(dashboardUC, log),
		handler.NewStatsHandler(statsUC, log),
	)
}

func doGet(t *testing.T, s *httpDelivery.Server, target string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	resp, body := doGet(t, s, "/api/v1/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "healthy")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_ListLots(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		query      url.Values
		wantStatus int
		wantCode   string
		wantTotal  int
	}{
		{name: "no filters", query: url.Values{}, wantStatus: http.StatusOK, wantTotal: 2},
		{name: "district", query: url.Values{"district": {"중구"}}, wantStatus: http.StatusOK, wantTotal: 1},
		{name: "wildcards", query: url.Values{"district": {"전체"}, "solar": {"전체"}, "congestion": {"전체"}}, wantStatus: http.StatusOK, wantTotal: 2},
		{name: "empty result", query: url.Values{"district": {"군위군"}}, wantStatus: http.StatusOK, wantTotal: 0},
		{name: "invalid solar label", query: url.Values{"solar": {"maybe"}}, wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
		{name: "invalid weekday", query: url.Values{"weekday": {"Funday"}}, wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doGet(t, s, "/api/v1/lots?"+tt.query.Encode())
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(body))

			env := decode(t, body)
			if tt.wantCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}

			var data struct {
				Total int `json:"total"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tt.wantTotal, data.Total)
		})
	}
}

func TestServer_Options(t *testing.T) {
	s := newTestServer(t)

	resp, body := doGet(t, s, "/api/v1/options?"+url.Values{"district": {"북구"}}.Encode())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Lots []string `json:"lots"`
	}
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &data))
	assert.Equal(t, []string{"전체", "산격 공영주차장"}, data.Lots)
}

func TestServer_Series(t *testing.T) {
	s := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		resp, body := doGet(t, s, "/api/v1/lots/P001/congestion/Monday")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var series domain.Series
		require.NoError(t, json.Unmarshal(decode(t, body).Data, &series))
		require.Len(t, series.Points, 3)
		assert.InDelta(t, 40.0, series.Points[1].Value, 1e-9)
	})

	t.Run("absent column", func(t *testing.T) {
		resp, body := doGet(t, s, "/api/v1/lots/P002/congestion/Monday")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "SERIES_NOT_FOUND", decode(t, body).Error.Code)
	})

	t.Run("unknown lot", func(t *testing.T) {
		resp, body := doGet(t, s, "/api/v1/lots/P999/congestion/Monday")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "LOT_NOT_FOUND", decode(t, body).Error.Code)
	})

	t.Run("invalid weekday", func(t *testing.T) {
		resp, _ := doGet(t, s, "/api/v1/lots/P001/congestion/Funday")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_Chart(t *testing.T) {
	s := newTestServer(t)

	resp, body := doGet(t, s, "/api/v1/lots/P001/congestion/Monday/chart.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp, _ = doGet(t, s, "/api/v1/lots/P002/congestion/Monday/chart.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Stats(t *testing.T) {
	s := newTestServer(t)

	resp, body := doGet(t, s, "/api/v1/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats domain.DatasetSummary
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &stats))
	assert.Equal(t, 2, stats.TotalLots)
	assert.Equal(t, 1, stats.LotsWithoutAny)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t)

	doGet(t, s, "/api/v1/lots")
	resp, body := doGet(t, s, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "parking_dashboard_lots_loaded 2")
	assert.Contains(t, string(body), "parking_dashboard_filter_requests_total 1")
}

func TestServer_Dashboard(t *testing.T) {
	s := newTestServer(t)

	t.Run("single lot shows chart", func(t *testing.T) {
		resp, body := doGet(t, s, "/?"+url.Values{"lot": {"동인 공영주차장"}}.Encode())
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		page := string(body)
		assert.Contains(t, page, "/api/v1/lots/P001/congestion/Monday/chart.png")
		assert.Contains(t, page, "대구 중구 동인동 1")
		assert.NotContains(t, page, "산격 공영주차장</td>")
	})

	t.Run("missing series shows info message", func(t *testing.T) {
		resp, body := doGet(t, s, "/?"+url.Values{"lot": {"산격 공영주차장"}}.Encode())
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "혼잡도 상세 데이터가")
		assert.NotContains(t, string(body), "chart.png")
	})

	t.Run("empty result shows warning", func(t *testing.T) {
		resp, body := doGet(t, s, "/?"+url.Values{"district": {"군위군"}}.Encode())
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "선택한 조건에 해당하는 데이터가 없습니다.")
	})
}

func TestServer_DashboardDuplicateNames(t *testing.T) {
	source := fixtureSource(t)
	source.lots = append(source.lots, &domain.Lot{
		ID: "P003", Name: "동인 공영주차장", Address: "대구 수성구 범어동 3", Lat: 35.85, Lon: 128.63,
		Solar: domain.SolarSuitable, Congestion: domain.CongestionModerate,
	})
	require.NoError(t, source.book[domain.Monday].SetColumn("P003", []*float64{f64(0.1), f64(0.3), f64(0.5)}))
	s := newTestServerWith(t, source)

	t.Run("name offers an id selector", func(t *testing.T) {
		resp, body := doGet(t, s, "/?"+url.Values{"lot": {"동인 공영주차장"}}.Encode())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := string(body)
		assert.Contains(t, page, `name="lot_id"`)
		assert.Contains(t, page, `<option value="P001" selected>`)
		assert.Contains(t, page, `<option value="P003" >`)
		assert.Contains(t, page, "/api/v1/lots/P001/congestion/Monday/chart.png")
		assert.Contains(t, page, "<td>P003</td>")
	})

	t.Run("id selects the other lot and narrows the table", func(t *testing.T) {
		resp, body := doGet(t, s, "/?"+url.Values{"lot": {"동인 공영주차장"}, "lot_id": {"P003"}}.Encode())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := string(body)
		assert.Contains(t, page, "/api/v1/lots/P003/congestion/Monday/chart.png")
		assert.Contains(t, page, `<option value="P003" selected>`)
		assert.Contains(t, page, "<td>P003</td>")
		assert.NotContains(t, page, "<td>P001</td>")
		assert.Contains(t, page, "주차장 목록 (1)")
	})

	t.Run("unique name has no id selector", func(t *testing.T) {
		_, body := doGet(t, s, "/?"+url.Values{"lot": {"산격 공영주차장"}}.Encode())
		assert.NotContains(t, string(body), `name="lot_id"`)
	})
}
