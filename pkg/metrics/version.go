package metrics

import "github.com/prometheus/client_golang/prometheus"

func newVersionMetric(namespace string, version string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "version",
		Help:      "Application version",
		ConstLabels: prometheus.Labels{
			"version": version,
		},
	})
	g.Set(1)
	return g
}
