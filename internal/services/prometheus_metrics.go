package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics.
const (
	MetricUpstreamRequest     = "upstream.request"
	MetricUpstreamPages       = "upstream.pages"
	MetricCacheHit            = "cache.hit"
	MetricCacheMiss           = "cache.miss"
	MetricStatisticCompute    = "statistic.compute"
	MetricStatisticFailed     = "statistic.failed"
	MetricCircuitBreakerState = "circuit_breaker.state"
	MetricFetchedRecords      = "fetch.records"
)

type PrometheusMetrics struct {
	upstreamRequests    *prometheus.CounterVec
	upstreamDuration    prometheus.Histogram
	fetchPages          *prometheus.CounterVec
	fetchedRecords      *prometheus.GaugeVec
	cacheLookups        *prometheus.CounterVec
	statisticDuration   prometheus.Histogram
	statisticFailures   *prometheus.CounterVec
	circuitBreakerState *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the service metrics with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Total number of record API list requests",
			},
			[]string{"collection", "status"},
		),
		upstreamDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "upstream_request_duration_milliseconds",
				Help:    "Record API list request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(5, 2, 12),
			},
		),
		fetchPages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_pages_fetched_total",
				Help: "Total number of pages fetched while walking collections",
			},
			[]string{"collection"},
		),
		fetchedRecords: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "collection_records",
				Help: "Number of records returned by the last full walk of a collection",
			},
			[]string{"collection"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Total number of response cache lookups",
			},
			[]string{"cache", "result"},
		),
		statisticDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "statistic_compute_duration_milliseconds",
				Help:    "Time spent fetching and aggregating a statistic on a cache miss",
				Buckets: prometheus.ExponentialBuckets(10, 2, 12),
			},
		),
		statisticFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statistic_failures_total",
				Help: "Total number of failed statistic computations",
			},
			[]string{"statistic", "reason"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricUpstreamRequest:
		m.upstreamRequests.WithLabelValues(tags["collection"], tags["status"]).Inc()
	case MetricUpstreamPages:
		m.fetchPages.WithLabelValues(tags["collection"]).Inc()
	case MetricCacheHit:
		m.cacheLookups.WithLabelValues(tags["cache"], "hit").Inc()
	case MetricCacheMiss:
		m.cacheLookups.WithLabelValues(tags["cache"], "miss").Inc()
	case MetricStatisticFailed:
		m.statisticFailures.WithLabelValues(tags["statistic"], tags["reason"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricUpstreamRequest:
		m.upstreamDuration.Observe(float64(duration.Milliseconds()))
	case MetricStatisticCompute:
		m.statisticDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricCircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	case MetricFetchedRecords:
		m.fetchedRecords.WithLabelValues(tags["collection"]).Set(value)
	}
}
