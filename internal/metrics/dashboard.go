package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every mapvista metric.
const Namespace = "mapvista"

// Source and dashboard Prometheus metrics.
var (
	SourceFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "source_fetch_total",
			Help:      "Total number of catalog and record fetches",
		},
		[]string{"driver", "op", "status"},
	)

	SourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Source fetch duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver", "op"},
	)

	StaleFetchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "stale_fetch_total",
			Help:      "Fetch results discarded because a newer index selection superseded them",
		},
	)

	FetchFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dashboard_fetch_failures_total",
			Help:      "Record fetches that failed and left the previous record set in place",
		},
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sessions_active",
			Help:      "Dashboard sessions currently held in memory",
		},
	)

	CatalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_cache_total",
			Help:      "Catalog cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ExcludedPointsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "map_excluded_records_total",
			Help:      "Records left off the map for missing or invalid coordinates",
		},
	)
)

var dashboardMetricsRegistered bool

// RegisterDashboardMetrics registers source and dashboard metrics. Must be called once from main.
func RegisterDashboardMetrics() {
	if dashboardMetricsRegistered {
		return
	}
	prometheus.MustRegister(SourceFetchTotal)
	prometheus.MustRegister(SourceFetchDuration)
	prometheus.MustRegister(StaleFetchTotal)
	prometheus.MustRegister(FetchFailuresTotal)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(CatalogCacheTotal)
	prometheus.MustRegister(ExcludedPointsTotal)
	dashboardMetricsRegistered = true
}
