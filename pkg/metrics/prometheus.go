// Package metrics records what a download or preprocessing run did as
// Prometheus metrics and exports them to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Manager owns the run metrics and the registry they live on.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetchBytes    prometheus.Counter

	events        *prometheus.CounterVec
	eventDuration prometheus.Histogram
	riders        *prometheus.CounterVec
	pairs         prometheus.Counter
}

// NewManager creates a metrics manager on its own registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "motopace",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetches_total",
		Help:      "Document downloads by document kind and result",
	}, []string{"kind", "result"})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_seconds",
		Help:      "Time spent downloading and validating one document",
		Buckets:   m.histogramBuckets,
	})

	m.fetchBytes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_bytes_total",
		Help:      "Bytes written to staging files",
	})

	m.events = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_total",
		Help:      "Processed events by outcome status",
	}, []string{"status"})

	m.eventDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_duration_seconds",
		Help:      "Time spent processing one event",
		Buckets:   m.histogramBuckets,
	})

	m.riders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "riders_total",
		Help:      "Practice riders by aggregation result (averaged or degenerate)",
	}, []string{"result"})

	m.pairs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairs_total",
		Help:      "Rows written to event CSV files",
	})
}

// RecordFetch counts one download attempt of kind and observes its duration.
func (m *Manager) RecordFetch(kind string, err error, took time.Duration) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultFailed
	}
	m.fetches.WithLabelValues(kind, result).Inc()
	m.fetchDuration.Observe(took.Seconds())
}

// AddFetchedBytes adds n downloaded bytes.
func (m *Manager) AddFetchedBytes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.fetchBytes.Add(float64(n))
}

// RecordEvent counts one processed event by status and observes its duration.
func (m *Manager) RecordEvent(status string, took time.Duration) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(status).Inc()
	m.eventDuration.Observe(took.Seconds())
}

// RecordRiders counts riders that produced an average and riders that did not.
func (m *Manager) RecordRiders(averaged, degenerate int) {
	if m == nil {
		return
	}
	m.riders.WithLabelValues("averaged").Add(float64(averaged))
	m.riders.WithLabelValues("degenerate").Add(float64(degenerate))
}

// RecordPairs counts written output rows.
func (m *Manager) RecordPairs(n int) {
	if m == nil {
		return
	}
	m.pairs.Add(float64(n))
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}
