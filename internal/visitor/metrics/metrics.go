// Package metrics provides observability for the visitor module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks visitor lifecycle counts and critical path durations.
type Metrics struct {
	VisitorsCreated prometheus.Counter
	ListDuration    prometheus.Histogram
	ExportDuration  prometheus.Histogram
}

// New creates a new Metrics instance with all visitor module metrics registered.
func New() *Metrics {
	return &Metrics{
		VisitorsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_visitors_created_total",
			Help: "Total number of visitor records created",
		}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_list_visitors_duration_seconds",
			Help:    "Duration of visitor list queries (main UI path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ExportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_export_visitors_duration_seconds",
			Help:    "Duration of full-set export queries",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementVisitorsCreated records a successful visitor creation.
func (m *Metrics) IncrementVisitorsCreated() {
	if m == nil {
		return
	}
	m.VisitorsCreated.Inc()
}

// ObserveList records the duration of a list query.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveList(start time.Time) {
	if m == nil {
		return
	}
	m.ListDuration.Observe(time.Since(start).Seconds())
}

// ObserveExport records the duration of an export query.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveExport(start time.Time) {
	if m == nil {
		return
	}
	m.ExportDuration.Observe(time.Since(start).Seconds())
}
