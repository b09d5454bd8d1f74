// Package metrics provides Prometheus metrics for the panelkit service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every panelkit collector.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Widget metrics
	widgetRenders *prometheus.CounterVec
	gaugeClamped  *prometheus.CounterVec

	// Document pipeline metrics
	pageRenders        *prometheus.CounterVec
	pageRenderDuration prometheus.Histogram
	builds             *prometheus.CounterVec
	buildDuration      prometheus.Histogram
	pagesTotal         prometheus.Gauge
	pagesFailed        prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "panelkit",
		subsystem:        "",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(m.constLabels) > 0 {
		m.registry = prometheus.WrapRegistererWith(m.constLabels, m.registry)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.widgetRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "widget_renders_total",
		Help:      "Widgets rendered, by widget and surface (http, page, terminal)",
	}, []string{"widget", "surface"})

	m.gaugeClamped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gauge_clamped_total",
		Help:      "Gauge inputs that fell outside [0,100] or did not coerce",
	}, []string{"reason"})

	m.pageRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "page_renders_total",
		Help:      "Document pages rendered, by page kind and status",
	}, []string{"kind", "status"})

	m.pageRenderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "page_render_duration_milliseconds",
		Help:      "Time to render a single page in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.builds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "site_builds_total",
		Help:      "Site builds, by outcome",
	}, []string{"status"})

	m.buildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "site_build_duration_milliseconds",
		Help:      "Time to build the whole site in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pagesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "site_pages",
		Help:      "Pages in the current build",
	})

	m.pagesFailed = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "site_pages_failed",
		Help:      "Pages in the current build that failed to render",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordWidgetRender counts one widget render on a surface.
func RecordWidgetRender(widget, surface string) {
	globalManager.widgetRenders.WithLabelValues(widget, surface).Inc()
}

// RecordGaugeClamped counts a gauge input that needed substitution.
func RecordGaugeClamped(reason string) {
	globalManager.gaugeClamped.WithLabelValues(reason).Inc()
}

// RecordPageRender counts one page render.
func RecordPageRender(kind, status string) {
	globalManager.pageRenders.WithLabelValues(kind, status).Inc()
}

// ObservePageRenderDuration records a page render time in milliseconds.
func ObservePageRenderDuration(ms float64) {
	globalManager.pageRenderDuration.Observe(ms)
}

// RecordBuild counts a site build by outcome.
func RecordBuild(status string) {
	globalManager.builds.WithLabelValues(status).Inc()
}

// ObserveBuildDuration records a site build time in milliseconds.
func ObserveBuildDuration(ms float64) {
	globalManager.buildDuration.Observe(ms)
}

// UpdatePagesTotal sets the page count of the current build.
func UpdatePagesTotal(n int) {
	globalManager.pagesTotal.Set(float64(n))
}

// UpdatePagesFailed sets the failed page count of the current build.
func UpdatePagesFailed(n int) {
	globalManager.pagesFailed.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage in bytes.
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

// GetRegistry returns the registry panelkit metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
