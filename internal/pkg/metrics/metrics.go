package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счетчики и гистограммы дашборда
type Metrics struct {
	LotsLoaded        prometheus.Gauge
	WeekdayTables     prometheus.Gauge
	DatasetLoadTime   prometheus.Histogram
	FilterRequests    prometheus.Counter
	FilterResultSize  prometheus.Histogram
	SeriesLookups     *prometheus.CounterVec   // labels: outcome={found,not_found}
	CacheLookups      *prometheus.CounterVec   // labels: kind={series,chart,stats}, result={hit,miss}
	HTTPRequestTiming *prometheus.HistogramVec // labels: route, status
}

// NewMetrics создает метрики и регистрирует их в переданном registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.LotsLoaded,
		m.WeekdayTables,
		m.DatasetLoadTime,
		m.FilterRequests,
		m.FilterResultSize,
		m.SeriesLookups,
		m.CacheLookups,
		m.HTTPRequestTiming,
	)
	return m
}

// NewMetricsForTesting создает метрики без регистрации, чтобы тесты не паниковали
// на "duplicate metrics collector registration attempted"
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LotsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parking_dashboard",
			Name:      "lots_loaded",
			Help:      "Number of parking lots held in memory.",
		}),
		WeekdayTables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parking_dashboard",
			Name:      "weekday_tables_loaded",
			Help:      "Number of weekday congestion tables held in memory.",
		}),
		DatasetLoadTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "parking_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of the startup dataset load.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FilterRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parking_dashboard",
			Name:      "filter_requests_total",
			Help:      "Total filter pipeline evaluations.",
		}),
		FilterResultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "parking_dashboard",
			Name:      "filter_result_size",
			Help:      "Number of lots returned by the filter pipeline.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		SeriesLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parking_dashboard",
			Name:      "series_lookups_total",
			Help:      "Congestion series lookups by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parking_dashboard",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by kind and result.",
		}, []string{"kind", "result"}),
		HTTPRequestTiming: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "parking_dashboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
