package metrics

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
	usPerMs                = 1000.0
)

// Manager manages all Prometheus metrics for the journal.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Classification Metrics
	winesClassified       *prometheus.CounterVec
	classificationLatency prometheus.Histogram

	// Collection Metrics
	collectionSize       prometheus.Gauge
	collectionCaptured   prometheus.Gauge
	collectionExperience prometheus.Gauge
	collectorLevel       prometheus.Gauge
	collectionWrites     *prometheus.CounterVec

	// Query Metrics
	queries         *prometheus.CounterVec
	queryResultSize *prometheus.HistogramVec

	// Store Metrics
	storeOperations *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "winedex",
		subsystem:        "journal",
		histogramBuckets: prometheus.DefBuckets,
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

// RefreshInterval is how often RunSystemCollector samples the runtime.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.winesClassified = m.counterVec("wines_classified_total",
		"Wines classified by computed type and rarity", "type_key", "rarity_key")
	m.classificationLatency = m.histogram("classification_latency_milliseconds",
		"Time to classify a single wine in milliseconds")

	m.collectionSize = m.gauge("collection_wines", "Wines currently in the collection")
	m.collectionCaptured = m.gauge("collection_captured_wines", "Wines marked as captured")
	m.collectionExperience = m.gauge("collection_experience_points", "Total experience across the collection")
	m.collectorLevel = m.gauge("collector_level", "Collector level derived from total experience")
	m.collectionWrites = m.counterVec("collection_writes_total",
		"Whole-collection replacements by operation", "op")

	m.queries = m.counterVec("queries_total", "Collection queries by operation", "op")
	m.queryResultSize = m.histogramVec("query_result_size",
		"Number of wines returned per query", prometheus.ExponentialBuckets(1, 2, 10), "op")

	m.storeOperations = m.counterVec("store_operations_total",
		"Store operations by backend and operation", "backend", "op")
	m.storeLatency = m.histogramVec("store_latency_milliseconds",
		"Store operation latency in milliseconds", m.histogramBuckets, "backend", "op")
	m.storeErrors = m.counterVec("store_errors_total",
		"Failed store operations by backend and operation", "backend", "op")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets, "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Errors by component and type", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Errors by endpoint, method and type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap memory in use")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds", "Most recent GC pause in milliseconds")
}

func on() bool {
	return globalManager != nil && globalManager.enabled
}

// Classification Metrics Functions.

// RecordWineClassified counts one classification by its computed keys.
func RecordWineClassified(typeKey, rarityKey string) {
	if on() {
		globalManager.winesClassified.WithLabelValues(typeKey, rarityKey).Inc()
	}
}

// RecordClassificationLatency records classification latency in milliseconds.
func RecordClassificationLatency(latencyMs float64) {
	if on() {
		globalManager.classificationLatency.Observe(latencyMs)
	}
}

// Collection Metrics Functions.

// UpdateCollection sets the collection gauges.
func UpdateCollection(size, captured, experience, level int) {
	if !on() {
		return
	}
	globalManager.collectionSize.Set(float64(size))
	globalManager.collectionCaptured.Set(float64(captured))
	globalManager.collectionExperience.Set(float64(experience))
	globalManager.collectorLevel.Set(float64(level))
}

// RecordCollectionWrite counts a whole-collection replacement.
func RecordCollectionWrite(op string) {
	if on() {
		globalManager.collectionWrites.WithLabelValues(op).Inc()
	}
}

// Query Metrics Functions.

// RecordQuery counts a query and observes its result size.
func RecordQuery(op string, results int) {
	if !on() {
		return
	}
	globalManager.queries.WithLabelValues(op).Inc()
	globalManager.queryResultSize.WithLabelValues(op).Observe(float64(results))
}

// Store Metrics Functions.

// RecordStoreOperation counts a store call and its latency since start.
// A non-nil err is also counted as a store error.
func RecordStoreOperation(backend, op string, start time.Time, err error) {
	if !on() {
		return
	}
	globalManager.storeOperations.WithLabelValues(backend, op).Inc()
	globalManager.storeLatency.WithLabelValues(backend, op).Observe(sinceMs(start))
	if err != nil {
		globalManager.storeErrors.WithLabelValues(backend, op).Inc()
		globalManager.errorRateByComponent.WithLabelValues("store", op).Inc()
	}
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if on() {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if on() {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if on() {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if on() {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// System Performance Metrics Functions.

// UpdateSystemMetrics samples memory, goroutines and the last GC pause.
func UpdateSystemMetrics() {
	if !on() {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	globalManager.systemMemoryUsage.Set(float64(ms.HeapAlloc))
	globalManager.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
	if ms.NumGC > 0 {
		last := ms.PauseNs[(ms.NumGC+255)%256]
		globalManager.systemGCPauseTime.Observe(float64(last) / float64(time.Millisecond))
	}
}

// RunSystemCollector refreshes system metrics until ctx is done.
func RunSystemCollector(ctx context.Context) {
	ticker := time.NewTicker(globalManager.RefreshInterval())
	defer ticker.Stop()

	UpdateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			UpdateSystemMetrics()
		}
	}
}

// Snapshot sums every counter and gauge in the registry by metric name.
// Histograms report their sample count.
func Snapshot() (map[string]float64, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObserveFailed, err)
	}
	out := make(map[string]float64, len(families))
	for _, f := range families {
		var total float64
		for _, metric := range f.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				total += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				total += metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				total += float64(metric.GetHistogram().GetSampleCount())
			}
		}
		out[f.GetName()] = total
	}
	return out, nil
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / usPerMs
}
