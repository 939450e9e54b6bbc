package metrics

import (
	"time"
)

// RecordGraphGeneration records one generated precedence graph.
func (r *Registry) RecordGraphGeneration(kind string, duration time.Duration) {
	r.GraphsGeneratedTotal.WithLabelValues(kind).Inc()
	r.GenerationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordScheduleGeneration records one generated schedule.
func (r *Registry) RecordScheduleGeneration(source string) {
	r.SchedulesGeneratedTotal.WithLabelValues(source).Inc()
}

// RecordGenerationExhaustion records an abandoned generation.
func (r *Registry) RecordGenerationExhaustion() {
	r.GenerationExhaustionsTotal.Inc()
}

// RecordSampledPermutations records permutations from random sampling.
func (r *Registry) RecordSampledPermutations(count int) {
	r.PermutationsSampledTotal.Add(float64(count))
}

// RecordSheet records one exercise sheet generation.
func (r *Registry) RecordSheet(exercise, status string, schedules int, duration time.Duration) {
	r.SheetsGeneratedTotal.WithLabelValues(exercise, status).Inc()
	if status == "ok" {
		r.SheetScheduleCount.Observe(float64(schedules))
	}
	r.SheetGenerationDuration.Observe(duration.Seconds())
}
