// Package metrics exports genogram pipeline, icon cache and server events
// as Prometheus metrics.
//
// A [Metrics] value implements the hook interfaces of
// [observability]; register it once at startup:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	m.Register()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/genogram/pkg/observability"
)

const namespace = "genogram"

// Metrics holds the collectors behind the observability hooks.
type Metrics struct {
	PersonsNormalized prometheus.Histogram
	ReferencesHealed  prometheus.Counter
	RelationsDropped  prometheus.Counter

	Layouts        *prometheus.CounterVec
	LayoutDuration prometheus.Histogram
	Generations    prometheus.Histogram

	Renders        *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	DocumentBytes  *prometheus.HistogramVec

	IconLookups *prometheus.CounterVec

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg uses
// the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		// Pipeline metrics
		PersonsNormalized: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "family_persons",
			Help:      "Number of persons per normalized family",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200},
		}),
		ReferencesHealed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "references_healed_total",
			Help:      "Dangling person references replaced by placeholders",
		}),
		RelationsDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relationships_dropped_total",
			Help:      "Relationships discarded during normalization",
		}),
		Layouts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "layouts_total",
				Help:      "Computed layouts by strategy",
			},
			[]string{"strategy"},
		),
		LayoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent assigning generations and positions",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		Generations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_generations",
			Help:      "Number of generations per layout",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10},
		}),
		Renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Rendered documents by format and result",
			},
			[]string{"format", "result"},
		),
		RenderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Time spent rendering one document",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"format"},
		),
		DocumentBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_bytes",
				Help:      "Size of rendered documents",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
			},
			[]string{"format"},
		),

		// Cache metrics
		IconLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "icon_lookups_total",
				Help:      "Icon cache lookups by outcome (hit, miss, missing)",
			},
			[]string{"outcome"},
		),

		// Server metrics
		Requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Handled HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Register installs m as the pipeline, cache and server hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetServerHooks(m)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

func (m *Metrics) OnNormalize(_ context.Context, persons, healed, dropped int) {
	m.PersonsNormalized.Observe(float64(persons))
	m.ReferencesHealed.Add(float64(healed))
	m.RelationsDropped.Add(float64(dropped))
}

func (m *Metrics) OnLayout(_ context.Context, strategy string, generations int, duration time.Duration) {
	m.Layouts.WithLabelValues(strategy).Inc()
	m.LayoutDuration.Observe(duration.Seconds())
	m.Generations.Observe(float64(generations))
}

func (m *Metrics) OnRender(_ context.Context, format string, size int, duration time.Duration, err error) {
	if err != nil {
		m.Renders.WithLabelValues(format, "error").Inc()
		return
	}
	m.Renders.WithLabelValues(format, "ok").Inc()
	m.RenderDuration.WithLabelValues(format).Observe(duration.Seconds())
	m.DocumentBytes.WithLabelValues(format).Observe(float64(size))
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnIconHit(string)     { m.IconLookups.WithLabelValues("hit").Inc() }
func (m *Metrics) OnIconMiss(string)    { m.IconLookups.WithLabelValues("miss").Inc() }
func (m *Metrics) OnIconMissing(string) { m.IconLookups.WithLabelValues("missing").Inc() }

// =============================================================================
// Server Hooks
// =============================================================================

func (m *Metrics) OnRequest(method, route string, status int, duration time.Duration) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
