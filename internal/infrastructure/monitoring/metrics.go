package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server instance.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// App lifecycle metrics
	AppsDiscovered   prometheus.Gauge
	DiscoverySkipped *prometheus.CounterVec
	AppsMounted      *prometheus.CounterVec
	MountFailures    *prometheus.CounterVec
	RoutesRegistered prometheus.Gauge
	MountDuration    prometheus.Histogram

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates collectors on a private registry, so several servers
// (or tests) can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "superkit_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "superkit_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),

		AppsDiscovered: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "superkit_apps_discovered",
				Help: "Number of valid apps found by the last discovery scan",
			},
		),
		DiscoverySkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "superkit_discovery_skipped_total",
				Help: "App directories skipped during discovery",
			},
			[]string{"reason"},
		),
		AppsMounted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "superkit_apps_mounted_total",
				Help: "Apps merged into the server routing table",
			},
			[]string{"app"},
		),
		MountFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "superkit_mount_failures_total",
				Help: "Mount attempts aborted by an error",
			},
			[]string{"kind"},
		),
		RoutesRegistered: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "superkit_routes_registered",
				Help: "Routes registered on the server",
			},
		),
		MountDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "superkit_mount_duration_seconds",
				Help:    "Duration of a full mount pipeline run",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "superkit_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetAppsDiscovered records the size of the last discovery result.
func (m *Metrics) SetAppsDiscovered(count int) {
	m.AppsDiscovered.Set(float64(count))
}

// IncDiscoverySkipped counts a skipped candidate directory.
func (m *Metrics) IncDiscoverySkipped(reason string) {
	m.DiscoverySkipped.WithLabelValues(reason).Inc()
}

// IncAppsMounted counts a mounted app.
func (m *Metrics) IncAppsMounted(app string) {
	m.AppsMounted.WithLabelValues(app).Inc()
}

// IncMountFailures counts an aborted mount by error kind.
func (m *Metrics) IncMountFailures(kind string) {
	m.MountFailures.WithLabelValues(kind).Inc()
}

// SetRoutesRegistered records the number of routes on the server.
func (m *Metrics) SetRoutesRegistered(count int) {
	m.RoutesRegistered.Set(float64(count))
}

// ObserveMount records the duration of a mount run.
func (m *Metrics) ObserveMount(d time.Duration) {
	m.MountDuration.Observe(d.Seconds())
}
