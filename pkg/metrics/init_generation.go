package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGenerationMetrics() {
	r.SchedulesGeneratedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedkit_schedules_generated_total",
			Help: "Total number of schedules generated",
		},
		[]string{"source"}, // acyclic_graph, cyclic_graph, permutation
	)

	r.GraphsGeneratedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedkit_graphs_generated_total",
			Help: "Total number of precedence graphs generated",
		},
		[]string{"kind"}, // acyclic, cyclic
	)

	r.GenerationExhaustionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "schedkit_generation_exhaustions_total",
			Help: "Generations abandoned after exceeding the attempt budget",
		},
	)

	r.GenerationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedkit_generation_duration_seconds",
			Help:    "Duration of graph and schedule generation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"kind"},
	)
}
