// Package metrics provides Prometheus metrics for the MovieMood recommender.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval    = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// Manager owns every MovieMood collector on one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Recommendation metrics
	recommendationRequests  prometheus.Counter
	recommendationLatency   prometheus.Histogram
	recommendationsReturned prometheus.Histogram
	emptyRecommendations    prometheus.Counter
	moviesEvaluated         prometheus.Counter
	ruleFires               *prometheus.CounterVec
	scoringErrors           prometheus.Counter

	// Catalog metrics
	catalogSize         prometheus.Gauge
	ruleCount           prometheus.Gauge
	catalogLoadDuration prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "moviemood",
		subsystem:        "recommender",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.recommendationRequests = auto.NewCounter(m.counterOpts(
		"recommendation_requests_total",
		"Total number of recommendation requests scored"))

	m.recommendationLatency = auto.NewHistogram(m.histogramOpts(
		"recommendation_latency_milliseconds",
		"Time spent scoring and ranking the catalog for one request",
		m.histogramBuckets))

	m.recommendationsReturned = auto.NewHistogram(m.histogramOpts(
		"recommendations_returned",
		"Number of recommendations returned per request",
		[]float64{0, 1, 2, 3, 4, 5, 10}))

	m.emptyRecommendations = auto.NewCounter(m.counterOpts(
		"empty_recommendations_total",
		"Requests for which no movie scored above zero"))

	m.moviesEvaluated = auto.NewCounter(m.counterOpts(
		"movies_evaluated_total",
		"Total number of (preferences, movie) evaluations"))

	m.ruleFires = auto.NewCounterVec(m.counterOpts(
		"rule_fires_total",
		"Number of times each rule fired on a returned recommendation"),
		[]string{"rule"})

	m.scoringErrors = auto.NewCounter(m.counterOpts(
		"scoring_errors_total",
		"Scoring runs that failed unexpectedly"))

	m.catalogSize = auto.NewGauge(m.gaugeOpts(
		"catalog_movies",
		"Number of movies in the loaded catalog"))

	m.ruleCount = auto.NewGauge(m.gaugeOpts(
		"rules",
		"Number of rules in the engine's table"))

	m.catalogLoadDuration = auto.NewGauge(m.gaugeOpts(
		"catalog_load_duration_milliseconds",
		"Time taken to load and validate the catalog at startup"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds",
		"HTTP request duration in milliseconds",
		m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total",
		"Errors by type and severity"),
		[]string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total",
		"Errors by endpoint and method"),
		[]string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds",
		"Latency of requests that ended in an error",
		m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes",
		"Heap bytes allocated"))

	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count",
		"Number of goroutines"))

	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RefreshInterval is how often StartSystemCollector samples the runtime.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// ObserveRecommendation records one scored request. fired lists the rule
// names of every returned recommendation.
func (m *Manager) ObserveRecommendation(evaluated, returned int, latency time.Duration, fired [][]string) {
	if !m.enabled {
		return
	}
	m.recommendationRequests.Inc()
	m.recommendationLatency.Observe(float64(latency) / nanosecondsPerMillisecond)
	m.moviesEvaluated.Add(float64(evaluated))
	m.recommendationsReturned.Observe(float64(returned))
	if returned == 0 {
		m.emptyRecommendations.Inc()
	}
	for _, names := range fired {
		for _, name := range names {
			m.ruleFires.WithLabelValues(name).Inc()
		}
	}
}

// RecordScoringError counts a failed scoring run.
func (m *Manager) RecordScoringError() {
	if !m.enabled {
		return
	}
	m.scoringErrors.Inc()
	m.errorRateByType.WithLabelValues("scoring_panic", "high").Inc()
}

// SetCatalog records the catalog size, rule count and load time.
func (m *Manager) SetCatalog(movies, rules int, loadTime time.Duration) {
	if !m.enabled {
		return
	}
	m.catalogSize.Set(float64(movies))
	m.ruleCount.Set(float64(rules))
	m.catalogLoadDuration.Set(float64(loadTime) / nanosecondsPerMillisecond)
}

// RecordHTTPRequest records one HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP request that ended with an error status.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorLatency.WithLabelValues("http", errorType).Observe(durationMs)
}

// UpdateSystemMetrics samples memory, goroutines and GC pause time.
func (m *Manager) UpdateSystemMetrics() {
	if !m.enabled {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.Alloc))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
	if ms.NumGC > 0 {
		m.systemGCPauseTime.Observe(float64(ms.PauseTotalNs) / float64(ms.NumGC) / nanosecondsPerMillisecond)
	}
}

// StartSystemCollector samples system metrics every RefreshInterval until
// ctx is done.
func (m *Manager) StartSystemCollector(ctx context.Context) {
	ticker := time.NewTicker(m.refreshInterval)
	defer ticker.Stop()

	m.UpdateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.UpdateSystemMetrics()
		}
	}
}

// Default returns the process-wide manager registered on GetRegistry.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom registry backing Default.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
