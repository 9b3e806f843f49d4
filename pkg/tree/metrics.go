package tree

import "time"

// MetricRegister collects statistics of tree operations.
type MetricRegister interface {
	AddMethodDuration(method string, d time.Duration)
	AddRelocations(method string, n int)
	IncErrors(method string)
}

type noopMetrics struct{}

func (noopMetrics) AddMethodDuration(string, time.Duration) {}
func (noopMetrics) AddRelocations(string, int)              {}
func (noopMetrics) IncErrors(string)                        {}
