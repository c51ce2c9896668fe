// Package metrics exports solver and HTTP events as Prometheus metrics.
//
// [Metrics] implements both observability.SolverHooks and
// observability.HTTPHooks. Collectors live on a private registry so several
// instances can coexist in tests, and [Metrics.Handler] serves that registry.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/flipstack/pkg/buildinfo"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	// Solver
	SearchesTotal    *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	StacksExplored   *prometheus.HistogramVec
	DeclinedTotal    *prometheus.CounterVec
	SearchesInFlight prometheus.Gauge

	// HTTP
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ErrorsTotal      *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge

	BuildInfo *prometheus.GaugeVec
}

// New creates the collectors under namespace on a fresh registry, together
// with the Go runtime and process collectors.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	m := &Metrics{
		registry: reg,

		SearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "searches_total",
				Help:      "Total number of exact searches, by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),

		SearchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "search_duration_seconds",
				Help:      "Duration of exact searches",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"mode"},
		),

		StacksExplored: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "stacks_explored",
				Help:      "Number of stacks discovered per search",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"mode"},
		),

		DeclinedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "admission_declined_total",
				Help:      "Queries declined by the admission guard",
			},
			[]string{"mode", "size"},
		),

		SearchesInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "searches_in_flight",
				Help:      "Searches currently running",
			},
		),

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests, by route and status",
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		ErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "errors_total",
				Help:      "HTTP requests answered with an error body",
			},
			[]string{"method", "route"},
		),

		RequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Requests currently being served",
			},
		),

		BuildInfo: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_info",
				Help:      "Build information",
			},
			[]string{"version", "commit"},
		),
	}

	m.BuildInfo.WithLabelValues(buildinfo.Version, buildinfo.Commit).Set(1)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OnSearchStart implements observability.SolverHooks.
func (m *Metrics) OnSearchStart(_ context.Context, _ int, _ string) {
	m.SearchesInFlight.Inc()
}

// OnSearchComplete implements observability.SolverHooks.
func (m *Metrics) OnSearchComplete(_ context.Context, _ int, mode string, explored int, reached bool, d time.Duration) {
	m.SearchesInFlight.Dec()
	outcome := "reached"
	if !reached {
		outcome = "unreachable"
	}
	m.SearchesTotal.WithLabelValues(mode, outcome).Inc()
	m.SearchDuration.WithLabelValues(mode).Observe(d.Seconds())
	m.StacksExplored.WithLabelValues(mode).Observe(float64(explored))
}

// OnAdmissionDeclined implements observability.SolverHooks.
func (m *Metrics) OnAdmissionDeclined(_ context.Context, n int, mode string) {
	m.DeclinedTotal.WithLabelValues(mode, strconv.Itoa(n)).Inc()
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string, string) {
	m.RequestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.RequestsInFlight.Dec()
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// OnError implements observability.HTTPHooks.
func (m *Metrics) OnError(_ context.Context, method, route string, _ error) {
	m.ErrorsTotal.WithLabelValues(method, route).Inc()
}
