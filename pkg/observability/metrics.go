package observability

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records build events on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	cacheChecks  *prometheus.CounterVec
	layers       *prometheus.CounterVec
	themeRenders *prometheus.CounterVec
	themeSeconds *prometheus.HistogramVec
	builds       *prometheus.CounterVec
	buildSeconds prometheus.Histogram
}

// NewMetrics creates and registers the build metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "themer_cache_checks_total",
				Help: "Fingerprint comparisons by subject and outcome",
			},
			[]string{"subject", "unchanged"},
		),
		layers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "themer_layers_written_total",
				Help: "Intermediate artifacts written",
			},
			[]string{"layer", "passthrough"},
		),
		themeRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "themer_theme_renders_total",
				Help: "Theme renders by theme and result",
			},
			[]string{"theme", "result"},
		),
		themeSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "themer_theme_render_duration_seconds",
				Help:    "Duration of theme renders",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"theme"},
		),
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "themer_builds_total",
				Help: "Finished builds by outcome",
			},
			[]string{"outcome"},
		),
		buildSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "themer_build_duration_seconds",
				Help:    "Duration of builds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(m.cacheChecks, m.layers, m.themeRenders, m.themeSeconds, m.builds, m.buildSeconds)
	return m
}

// Registry exposes the registry, e.g. for tests or an external gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns build hooks feeding the metrics.
func (m *Metrics) Hooks() domain.BuildHooks {
	return domain.BuildHooks{
		OnCacheCheck: func(ctx context.Context, e *domain.CacheEvent) {
			m.cacheChecks.WithLabelValues(e.Subject, strconv.FormatBool(e.Unchanged)).Inc()
		},
		OnLayerWritten: func(ctx context.Context, e *domain.LayerEvent) {
			m.layers.WithLabelValues(string(e.Layer), strconv.FormatBool(e.Passthrough)).Inc()
		},
		OnThemeRender: func(ctx context.Context, e *domain.ThemeEvent) {
			result := "ok"
			if e.IsError {
				result = "error"
			}
			m.themeRenders.WithLabelValues(e.Theme, result).Inc()
			m.themeSeconds.WithLabelValues(e.Theme).Observe(e.Duration.Seconds())
		},
		OnBuildDone: func(ctx context.Context, e *domain.BuildEvent) {
			outcome := "built"
			switch {
			case e.Skipped:
				outcome = "skipped"
			case e.Failed > 0:
				outcome = "partial"
			}
			m.builds.WithLabelValues(outcome).Inc()
			m.buildSeconds.Observe(e.Duration.Seconds())
		},
	}
}

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
