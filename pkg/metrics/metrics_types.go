package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Generation Metrics
	SchedulesGeneratedTotal    *prometheus.CounterVec
	GraphsGeneratedTotal       *prometheus.CounterVec
	GenerationExhaustionsTotal prometheus.Counter
	GenerationDuration         *prometheus.HistogramVec

	// Permutation Metrics
	PermutationsSampledTotal prometheus.Counter

	// Exercise Metrics
	SheetsGeneratedTotal    *prometheus.CounterVec
	SheetScheduleCount      prometheus.Histogram
	SheetGenerationDuration prometheus.Histogram

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGenerationMetrics()
	r.initPermutationMetrics()
	r.initExerciseMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
