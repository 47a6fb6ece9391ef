package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector aggregates the service's Prometheus metrics.
type MetricsCollector struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Purchase flow metrics
	purchasesTotal   *prometheus.CounterVec
	codeRetriesTotal prometheus.Counter

	// Database pool metrics
	dbConnectionsActive prometheus.Gauge
	dbConnectionsIdle   prometheus.Gauge

	// Cache metrics
	cacheHitsTotal   *prometheus.CounterVec
	cacheMissesTotal *prometheus.CounterVec
}

var (
	globalCollector *MetricsCollector
	collectorOnce   sync.Once
)

// GetGlobalCollector returns the process-wide collector.
func GetGlobalCollector() *MetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = newMetricsCollector()
	})
	return globalCollector
}

func newMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		purchasesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coupon_purchases_total",
				Help: "Purchase attempts by outcome (success, sold_out, expired, not_found, code_exhausted, store_error)",
			},
			[]string{"outcome"},
		),

		codeRetriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "coupon_code_retries_total",
				Help: "Coupon code regenerations after a unique-constraint collision",
			},
		),

		dbConnectionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_active",
				Help: "Active database connections",
			},
		),

		dbConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_idle",
				Help: "Idle database connections",
			},
		),

		cacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Cache hits by key group",
			},
			[]string{"group"},
		),

		cacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Cache misses by key group",
			},
			[]string{"group"},
		),
	}
}

// RecordHTTPRequest records one finished HTTP request.
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordPurchase records one purchase attempt outcome.
func (m *MetricsCollector) RecordPurchase(outcome string) {
	m.purchasesTotal.WithLabelValues(outcome).Inc()
}

// RecordCodeRetry records a coupon code collision retry.
func (m *MetricsCollector) RecordCodeRetry() {
	m.codeRetriesTotal.Inc()
}

// RecordCacheHit / RecordCacheMiss track cache effectiveness per key group.
func (m *MetricsCollector) RecordCacheHit(group string)  { m.cacheHitsTotal.WithLabelValues(group).Inc() }
func (m *MetricsCollector) RecordCacheMiss(group string) { m.cacheMissesTotal.WithLabelValues(group).Inc() }

// StartPoolMonitor samples sql.DB pool stats into gauges until stop is closed.
func (m *MetricsCollector) StartPoolMonitor(db *sql.DB, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.dbConnectionsActive.Set(float64(stats.InUse))
				m.dbConnectionsIdle.Set(float64(stats.Idle))
			case <-stop:
				return
			}
		}
	}()
}
