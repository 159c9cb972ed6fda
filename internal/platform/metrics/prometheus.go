// Package metrics exposes Prometheus metrics for the upstream data layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector. A nil *Manager is valid and records nothing,
// so callers never branch on METRICS_ENABLED.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	cacheLookups       *prometheus.CounterVec
	cacheFetchDuration *prometheus.HistogramVec

	upstreamRequests        *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec
	upstreamFailureState    *prometheus.GaugeVec

	liveResolutions *prometheus.CounterVec

	archiveWrites *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "robo_companion",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "cache",
		Name:        "lookups_total",
		Help:        "Cache lookups by cache name and outcome (hit, miss, shared, forced).",
		ConstLabels: m.constLabels,
	}, []string{"cache", "outcome"})

	m.cacheFetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "cache",
		Name:        "fetch_duration_seconds",
		Help:        "Duration of upstream fetches issued by a cache.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"cache", "result"})

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "upstream",
		Name:        "requests_total",
		Help:        "Upstream HTTP requests by adapter and status code.",
		ConstLabels: m.constLabels,
	}, []string{"adapter", "status_code"})

	m.upstreamRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "upstream",
		Name:        "request_duration_seconds",
		Help:        "Upstream HTTP request latency by adapter.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"adapter"})

	m.upstreamFailureState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "upstream",
		Name:        "failure_state",
		Help:        "1 while an adapter reports failure state.",
		ConstLabels: m.constLabels,
	}, []string{"adapter"})

	m.liveResolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "live",
		Name:        "resolutions_total",
		Help:        "Live event resolutions by outcome.",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.archiveWrites = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "archive",
		Name:        "writes_total",
		Help:        "Raw payload archive writes by result.",
		ConstLabels: m.constLabels,
	}, []string{"result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "HTTP requests by route pattern, method and status code.",
		ConstLabels: m.constLabels,
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_seconds",
		Help:        "HTTP request duration by route pattern and method.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"route", "method"})
}

// CacheLookup implements cache.Observer.
func (m *Manager) CacheLookup(cache, outcome string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(cache, outcome).Inc()
}

// CacheFetch implements cache.Observer.
func (m *Manager) CacheFetch(cache string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.cacheFetchDuration.WithLabelValues(cache, resultLabel(err)).Observe(elapsed.Seconds())
}

// RecordUpstreamRequest counts one upstream round trip. statusCode 0 means
// the request never produced a response.
func (m *Manager) RecordUpstreamRequest(adapter string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	m.upstreamRequests.WithLabelValues(adapter, code).Inc()
	m.upstreamRequestDuration.WithLabelValues(adapter).Observe(elapsed.Seconds())
}

func (m *Manager) SetUpstreamFailure(adapter string, inFailure bool) {
	if m == nil {
		return
	}
	value := 0.0
	if inFailure {
		value = 1
	}
	m.upstreamFailureState.WithLabelValues(adapter).Set(value)
}

func (m *Manager) RecordLiveResolution(outcome string) {
	if m == nil {
		return
	}
	m.liveResolutions.WithLabelValues(outcome).Inc()
}

func (m *Manager) RecordArchiveWrite(err error) {
	if m == nil {
		return
	}
	m.archiveWrites.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Manager) RecordHTTPRequest(route, method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
