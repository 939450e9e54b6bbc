package exercise

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovats/schedkit/pkg/generator"
	"github.com/dkovats/schedkit/pkg/logging"
	"github.com/dkovats/schedkit/pkg/metrics"
)

func TestGenerate_Sheet(t *testing.T) {
	generator.Seed(1)

	cfg := DefaultConflictEquivalentConfig()
	ex := NewConflictEquivalent(cfg, logging.NewNopLogger(), metrics.NewRegistry())

	sheet, err := ex.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, sheet.ID)
	assert.NotEmpty(t, sheet.Schedules)
	assert.LessOrEqual(t, len(sheet.Schedules), cfg.NumSchedules)
	require.Len(t, sheet.PrecedenceGraphs, len(sheet.Schedules))

	// Schedules are renumbered 1..n after shuffling.
	for i, s := range sheet.Schedules {
		assert.Equal(t, i+1, s.ID)
	}
}

func TestGenerate_AllConflictEquivalent(t *testing.T) {
	generator.Seed(42)

	ex := NewConflictEquivalent(DefaultConflictEquivalentConfig(), nil, metrics.NewRegistry())
	sheet, err := ex.Generate()
	require.NoError(t, err)

	for i := range sheet.Schedules {
		for j := range sheet.Schedules {
			assert.True(t, sheet.Schedules[i].IsConflictEquivalentWith(sheet.Schedules[j]),
				"schedules %d and %d are not conflict-equivalent", i+1, j+1)
		}
	}
}

func TestGenerate_PrecedenceGraphsMatchSchedules(t *testing.T) {
	generator.Seed(7)

	ex := NewConflictEquivalent(DefaultConflictEquivalentConfig(), nil, metrics.NewRegistry())
	sheet, err := ex.Generate()
	require.NoError(t, err)

	for i, s := range sheet.Schedules {
		want := s.PrecedenceGraph()
		got := sheet.PrecedenceGraphs[i]
		assert.Equal(t, want.VertexIDs(), got.VertexIDs())
		assert.Equal(t, want.Edges(), got.Edges())
	}
}

func TestGenerate_Serializable(t *testing.T) {
	generator.Seed(3)

	cfg := DefaultConflictEquivalentConfig()
	cfg.Serializable = true
	ex := NewConflictEquivalent(cfg, nil, metrics.NewRegistry())

	sheet, err := ex.Generate()
	require.NoError(t, err)

	for _, s := range sheet.Schedules {
		assert.True(t, s.IsConflictSerializable(), "schedule %s should be serializable", s)
	}
}

func TestGenerate_SingleSchedule(t *testing.T) {
	generator.Seed(11)

	cfg := DefaultConflictEquivalentConfig()
	cfg.NumSchedules = 1
	ex := NewConflictEquivalent(cfg, nil, metrics.NewRegistry())

	sheet, err := ex.Generate()
	require.NoError(t, err)
	assert.Len(t, sheet.Schedules, 1)
	assert.Equal(t, 1, sheet.Schedules[0].ID)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	cfg := DefaultConflictEquivalentConfig()
	cfg.NumOperations = 0
	ex := NewConflictEquivalent(cfg, nil, metrics.NewRegistry())

	_, err := ex.Generate()
	assert.Error(t, err)
}

func TestGenerate_Reproducible(t *testing.T) {
	cfg := DefaultConflictEquivalentConfig()

	generator.Seed(99)
	first, err := NewConflictEquivalent(cfg, nil, metrics.NewRegistry()).Generate()
	require.NoError(t, err)

	generator.Seed(99)
	second, err := NewConflictEquivalent(cfg, nil, metrics.NewRegistry()).Generate()
	require.NoError(t, err)

	require.Len(t, second.Schedules, len(first.Schedules))
	for i := range first.Schedules {
		assert.Equal(t, first.Schedules[i].String(), second.Schedules[i].String())
	}
	// Sheet ids are unique per run regardless of the seed.
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGenerate_RecordsMetrics(t *testing.T) {
	generator.Seed(17)

	reg := metrics.NewRegistry()
	ex := NewConflictEquivalent(DefaultConflictEquivalentConfig(), nil, reg)

	sheet, err := ex.Generate()
	require.NoError(t, err)

	counter, err := reg.GraphsGeneratedTotal.GetMetricWithLabelValues("cyclic")
	require.NoError(t, err)
	var graphs dto.Metric
	require.NoError(t, counter.Write(&graphs))
	assert.Equal(t, float64(1), graphs.GetCounter().GetValue())

	hist, err := reg.GenerationDuration.GetMetricWithLabelValues("cyclic")
	require.NoError(t, err)
	var duration dto.Metric
	require.NoError(t, hist.(prometheus.Metric).Write(&duration))
	assert.Equal(t, uint64(1), duration.GetHistogram().GetSampleCount())

	var sampled dto.Metric
	require.NoError(t, reg.PermutationsSampledTotal.Write(&sampled))
	assert.Equal(t, float64(len(sheet.Schedules)-1), sampled.GetCounter().GetValue())

	schedules, err := reg.SchedulesGeneratedTotal.GetMetricWithLabelValues("cyclic_graph")
	require.NoError(t, err)
	var seeds dto.Metric
	require.NoError(t, schedules.Write(&seeds))
	assert.Equal(t, float64(1), seeds.GetCounter().GetValue())
}

func TestGenerate_RecordsAcyclicKind(t *testing.T) {
	generator.Seed(23)

	cfg := DefaultConflictEquivalentConfig()
	cfg.Serializable = true
	reg := metrics.NewRegistry()

	_, err := NewConflictEquivalent(cfg, nil, reg).Generate()
	require.NoError(t, err)

	counter, err := reg.GraphsGeneratedTotal.GetMetricWithLabelValues("acyclic")
	require.NoError(t, err)
	var graphs dto.Metric
	require.NoError(t, counter.Write(&graphs))
	assert.Equal(t, float64(1), graphs.GetCounter().GetValue())
}

func TestNewConflictEquivalent_NilDependencies(t *testing.T) {
	ex := NewConflictEquivalent(DefaultConflictEquivalentConfig(), nil, nil)
	require.NotNil(t, ex)

	generator.Seed(5)
	_, err := ex.Generate()
	assert.NoError(t, err)
}
