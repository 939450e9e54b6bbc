package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPermutationMetrics() {
	r.PermutationsSampledTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "schedkit_permutations_sampled_total",
			Help: "Conflict-equivalent permutations produced by random sampling",
		},
	)
}
