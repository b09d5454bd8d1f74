package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager before its collectors are registered.
type Option func(*Manager)

// WithNamespace replaces the "panelkit" metric name prefix. Blank input is
// ignored.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if ns := strings.TrimSpace(namespace); ns != "" {
			m.namespace = ns
		}
	}
}

// WithSubsystem inserts a second name segment, e.g. panelkit_docs_site_pages.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		m.subsystem = strings.TrimSpace(subsystem)
	}
}

// WithHistogramBuckets sets the millisecond buckets shared by the render,
// build and HTTP histograms. The slice is copied and sorted.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) == 0 {
			return
		}
		b := append([]float64(nil), buckets...)
		sort.Float64s(b)
		m.histogramBuckets = b
	}
}

// WithConstLabels attaches fixed labels, such as the site name, to every
// collector.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(m *Manager) {
		if len(labels) > 0 {
			m.constLabels = labels
		}
	}
}

// WithPrometheusRegistry registers collectors on r instead of the default
// registerer.
func WithPrometheusRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}
