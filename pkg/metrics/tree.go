package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	treeNamespace = "ltree"
	treeSubsystem = "tree"

	methodLabelKey = "method"
)

// TreeMetrics collects tree manager statistics. It implements
// tree.MetricRegister.
type TreeMetrics struct {
	version        prometheus.Gauge
	methodDuration *prometheus.HistogramVec
	relocations    *prometheus.CounterVec
	errors         *prometheus.CounterVec
}

// NewTreeMetrics returns TreeMetrics registered in the default prometheus
// registry. The application version is exported as a constant label.
func NewTreeMetrics(version string) *TreeMetrics {
	m := newTreeMetrics(version)
	m.register(prometheus.DefaultRegisterer)
	return m
}

func newTreeMetrics(version string) *TreeMetrics {
	return &TreeMetrics{
		version: newVersionMetric(treeNamespace, version),
		methodDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: treeNamespace,
			Subsystem: treeSubsystem,
			Name:      "method_duration_seconds",
			Help:      "Tree manager operations handling time",
		}, []string{methodLabelKey}),
		relocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: treeNamespace,
			Subsystem: treeSubsystem,
			Name:      "relocated_rows_total",
			Help:      "Number of rows rewritten by relocations",
		}, []string{methodLabelKey}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: treeNamespace,
			Subsystem: treeSubsystem,
			Name:      "errors_total",
			Help:      "Number of failed tree manager operations",
		}, []string{methodLabelKey}),
	}
}

func (m *TreeMetrics) register(r prometheus.Registerer) {
	r.MustRegister(m.version)
	r.MustRegister(m.methodDuration)
	r.MustRegister(m.relocations)
	r.MustRegister(m.errors)
}

// AddMethodDuration records duration of the named operation.
func (m *TreeMetrics) AddMethodDuration(method string, d time.Duration) {
	m.methodDuration.With(prometheus.Labels{methodLabelKey: method}).Observe(d.Seconds())
}

// AddRelocations counts rows rewritten by the named operation.
func (m *TreeMetrics) AddRelocations(method string, n int) {
	m.relocations.With(prometheus.Labels{methodLabelKey: method}).Add(float64(n))
}

// IncErrors counts a failure of the named operation.
func (m *TreeMetrics) IncErrors(method string) {
	m.errors.With(prometheus.Labels{methodLabelKey: method}).Inc()
}
