package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	pageViews         *prometheus.CounterVec
	navigations       *prometheus.CounterVec
	forkCollisions    prometheus.Counter
	liveTradingStubs  prometheus.Counter
	editorBufferBytes prometheus.Histogram
	catalogStrategies prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.pageViews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quanthub_page_views_total",
			Help: "Total number of rendered pages",
		},
		[]string{"page"},
	)
	r.navigations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quanthub_navigations_total",
			Help: "Total number of navigation actions handled",
		},
		[]string{"action"},
	)
	r.forkCollisions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quanthub_fork_collisions_total",
			Help: "Fork identifiers issued twice in a row",
		},
	)
	r.liveTradingStubs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quanthub_live_trading_requests_total",
			Help: "Requests to the unimplemented live trading action",
		},
	)
	r.editorBufferBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quanthub_editor_buffer_bytes",
			Help:    "Size of editor buffers submitted with a backtest run",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		},
	)
	r.catalogStrategies = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "quanthub_catalog_strategies",
			Help: "Number of strategies in the loaded catalog",
		},
	)

	reg.MustRegister(r.pageViews)
	reg.MustRegister(r.navigations)
	reg.MustRegister(r.forkCollisions)
	reg.MustRegister(r.liveTradingStubs)
	reg.MustRegister(r.editorBufferBytes)
	reg.MustRegister(r.catalogStrategies)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordPageView records a rendered page.
func (r *Registry) RecordPageView(page string) {
	r.pageViews.WithLabelValues(page).Inc()
}

// RecordNavigation records a handled navigation action.
func (r *Registry) RecordNavigation(action string) {
	r.navigations.WithLabelValues(action).Inc()
}

// RecordForkCollision records a repeated fork identifier.
func (r *Registry) RecordForkCollision() {
	r.forkCollisions.Inc()
}

// RecordLiveTradingRequest records a hit on the live trading stub.
func (r *Registry) RecordLiveTradingRequest() {
	r.liveTradingStubs.Inc()
}

// ObserveEditorBuffer records the size of a discarded editor buffer.
func (r *Registry) ObserveEditorBuffer(size int) {
	r.editorBufferBytes.Observe(float64(size))
}

// SetCatalogSize sets the number of catalog strategies.
func (r *Registry) SetCatalogSize(size int) {
	r.catalogStrategies.Set(float64(size))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
