// Package metrics provides Prometheus metrics for the finals dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query kinds used as label values.
const (
	KindWins       = "wins"
	KindResult     = "result"
	KindChoropleth = "choropleth"
	KindSelections = "selections"
)

// Query outcomes used as label values.
const (
	OutcomeFound  = "found"
	OutcomeAbsent = "absent"
)

// Lookups over the in-memory dataset finish well under a millisecond.
var defaultLatencyBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5} //nolint:gochecknoglobals // bucket layout

// Manager owns every Prometheus collector used by the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	httpBuckets    []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Dataset metrics
	editionsTotal      prometheus.Gauge
	winnersTotal       prometheus.Gauge
	validationFailures prometheus.Counter

	// Aggregation metrics
	aggregationBuilds        prometheus.Counter
	aggregationBuildDuration prometheus.Histogram

	// Query metrics
	queries      *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec
	toolCalls    *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:      "finals",
		subsystem:      "dashboard",
		latencyBuckets: defaultLatencyBuckets,
		httpBuckets:    prometheus.DefBuckets,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place that declares every collector
	auto := promauto.With(m.registry)

	m.editionsTotal = auto.NewGauge(m.gaugeOpts("editions_total", "Number of edition records loaded"))
	m.winnersTotal = auto.NewGauge(m.gaugeOpts("winners_total", "Number of distinct entities with at least one win"))
	m.validationFailures = auto.NewCounter(m.counterOpts("validation_failures_total", "Malformed edition records rejected at load"))

	m.aggregationBuilds = auto.NewCounter(m.counterOpts("aggregation_builds_total", "Number of win count computations"))
	m.aggregationBuildDuration = auto.NewHistogram(m.histogramOpts(
		"aggregation_build_duration_milliseconds", "Duration of a win count computation in milliseconds", m.latencyBuckets))

	m.queries = auto.NewCounterVec(m.counterOpts("queries_total", "Queries answered by kind and outcome"),
		[]string{"kind", "outcome"})
	m.queryLatency = auto.NewHistogramVec(m.histogramOpts(
		"query_latency_milliseconds", "Query latency in milliseconds", m.latencyBuckets),
		[]string{"kind"})
	m.toolCalls = auto.NewCounterVec(m.counterOpts("mcp_tool_calls_total", "MCP tool invocations by tool and outcome"),
		[]string{"tool", "outcome"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.httpBuckets),
		[]string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "Errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds", "Latency of operations that resulted in errors", m.httpBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// UpdateEditionsTotal sets the number of loaded edition records.
func UpdateEditionsTotal(count int) {
	globalManager.editionsTotal.Set(float64(count))
}

// UpdateWinnersTotal sets the number of distinct winners.
func UpdateWinnersTotal(count int) {
	globalManager.winnersTotal.Set(float64(count))
}

// RecordValidationFailures adds n rejected records.
func RecordValidationFailures(n int) {
	globalManager.validationFailures.Add(float64(n))
}

// RecordAggregationBuild counts a win count computation and its duration.
func RecordAggregationBuild(durationMs float64) {
	globalManager.aggregationBuilds.Inc()
	globalManager.aggregationBuildDuration.Observe(durationMs)
}

// RecordQuery counts a query of kind with the given outcome.
func RecordQuery(kind, outcome string) {
	globalManager.queries.WithLabelValues(kind, outcome).Inc()
}

// RecordQueryLatency records how long a query of kind took.
func RecordQueryLatency(kind string, latencyMs float64) {
	globalManager.queryLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordToolCall counts an MCP tool invocation.
func RecordToolCall(tool, outcome string) {
	globalManager.toolCalls.WithLabelValues(tool, outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
