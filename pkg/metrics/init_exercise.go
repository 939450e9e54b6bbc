package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExerciseMetrics() {
	r.SheetsGeneratedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedkit_sheets_generated_total",
			Help: "Total number of exercise sheets generated",
		},
		[]string{"exercise", "status"}, // exercise: conflict_equivalence; status: ok, error
	)

	r.SheetScheduleCount = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedkit_sheet_schedule_count",
			Help:    "Number of schedules per generated exercise sheet",
			Buckets: []float64{1, 2, 4, 8, 16, 32},
		},
	)

	r.SheetGenerationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedkit_sheet_generation_duration_seconds",
			Help:    "Duration of exercise sheet generation in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)
}
