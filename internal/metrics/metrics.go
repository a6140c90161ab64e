// Package metrics exposes Prometheus instruments for schedule loading and
// the HTTP server. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments.
type Metrics struct {
	loads        *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	downloads    *prometheus.CounterVec
	requests     *prometheus.CounterVec
}

// New creates and registers the instruments with registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waktu_solat_loads_total",
			Help: "Schedule loads by zone and result",
		}, []string{"zone", "result"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "waktu_solat_load_duration_seconds",
			Help:    "Duration of schedule loads including fetch and decode",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"zone"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waktu_solat_cache_lookups_total",
			Help: "Resource cache lookups by result",
		}, []string{"result"}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waktu_solat_downloads_total",
			Help: "Raw resource downloads by kind",
		}, []string{"kind"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waktu_solat_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}

	registry.MustRegister(
		m.loads,
		m.loadDuration,
		m.cacheLookups,
		m.downloads,
		m.requests,
	)

	return m
}

// LoadFinished records one load attempt.
func (m *Metrics) LoadFinished(zone string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.loads.WithLabelValues(zone, result).Inc()
	m.loadDuration.WithLabelValues(zone).Observe(d.Seconds())
}

// CacheLookup records a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Download records a raw resource download.
func (m *Metrics) Download(kind string) {
	if m == nil {
		return
	}
	m.downloads.WithLabelValues(kind).Inc()
}

// Request records one served HTTP request.
func (m *Metrics) Request(route string, code int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
