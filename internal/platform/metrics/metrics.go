package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Components
// receive it through options and skip recording when it is nil.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	FramesServed   prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	ExportRuns     *prometheus.CounterVec
	ExportDuration prometheus.Histogram
	SourceRows     *prometheus.GaugeVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics and registers them on reg. Tests pass a
// private registry so repeated construction does not panic on duplicate
// registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "daa_http_requests_total",
			Help: "Total number of HTTP requests served, by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "daa_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		FramesServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "daa_frames_served_total",
			Help: "Total number of year frames served by the dashboard API",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "daa_frame_cache_hits_total",
			Help: "Total number of frame cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "daa_frame_cache_misses_total",
			Help: "Total number of frame cache misses",
		}),
		ExportRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "daa_export_runs_total",
			Help: "Total number of export runs by final status",
		}, []string{"status"}),
		ExportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "daa_export_duration_seconds",
			Help:    "Wall time spent rendering export artifacts",
			Buckets: prometheus.DefBuckets,
		}),
		SourceRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "daa_source_rows",
			Help: "Rows contributed by each source dataset at load time, by outcome",
		}, []string{"source", "outcome"}),
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// IncrementFramesServed increments the served frame counter by 1.
func (m *Metrics) IncrementFramesServed() {
	m.FramesServed.Inc()
}

// IncrementCacheHit increments the frame cache hit counter by 1.
func (m *Metrics) IncrementCacheHit() {
	m.CacheHits.Inc()
}

// IncrementCacheMiss increments the frame cache miss counter by 1.
func (m *Metrics) IncrementCacheMiss() {
	m.CacheMisses.Inc()
}

// ObserveExport records a finished export run with its final status.
func (m *Metrics) ObserveExport(status string, elapsed time.Duration) {
	m.ExportRuns.WithLabelValues(status).Inc()
	m.ExportDuration.Observe(elapsed.Seconds())
}

// SetSourceRows records how many rows a source dataset contributed.
func (m *Metrics) SetSourceRows(source, outcome string, rows int) {
	m.SourceRows.WithLabelValues(source, outcome).Set(float64(rows))
}
