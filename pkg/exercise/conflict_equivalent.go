// Package exercise synthesizes transaction-schedule exercise sheets:
// sets of related schedules for studying conflict equivalence, together
// with the precedence graphs that explain them.
package exercise

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkovats/schedkit/pkg/generator"
	"github.com/dkovats/schedkit/pkg/graph"
	"github.com/dkovats/schedkit/pkg/logging"
	"github.com/dkovats/schedkit/pkg/metrics"
	"github.com/dkovats/schedkit/pkg/schedule"
)

// Sheet is one generated exercise: a shuffled set of schedules numbered
// 1..n, with the precedence graph of each. Schedules[i] corresponds to
// PrecedenceGraphs[i].
type Sheet struct {
	ID               uuid.UUID
	Schedules        []*schedule.Schedule
	PrecedenceGraphs []*graph.DirectedGraph
}

// ConflictEquivalentExercise generates sheets where every schedule is
// conflict-equivalent to every other.
type ConflictEquivalentExercise struct {
	cfg     ConflictEquivalentConfig
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewConflictEquivalent creates an exercise for the given config. A nil
// logger discards output; a nil registry falls back to the default one.
func NewConflictEquivalent(cfg ConflictEquivalentConfig, logger logging.Logger, reg *metrics.Registry) *ConflictEquivalentExercise {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &ConflictEquivalentExercise{
		cfg:     cfg,
		logger:  logger.With(logging.Component("exercise"), logging.String("exercise", "conflict_equivalence")),
		metrics: reg,
	}
}

// Generate builds one sheet: a seed schedule realized from a random
// precedence graph, padded with random conflict-equivalent permutations
// of it, shuffled, then renumbered 1..n. Sampling may come up short of
// NumSchedules when the seed schedule admits fewer distinct linear
// extensions than requested.
func (e *ConflictEquivalentExercise) Generate() (*Sheet, error) {
	start := time.Now()

	sheet, err := e.generate()
	status := "ok"
	count := 0
	if err != nil {
		status = "error"
	} else {
		count = len(sheet.Schedules)
	}
	e.metrics.RecordSheet("conflict_equivalence", status, count, time.Since(start))

	return sheet, err
}

func (e *ConflictEquivalentExercise) generate() (*Sheet, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	kind := "cyclic"
	if e.cfg.Serializable {
		kind = "acyclic"
	}
	graphStart := time.Now()
	g, err := generator.RandomPrecedenceGraph(generator.PrecedenceGraphOptions{
		TransactionCount: e.cfg.NumTransactions,
		EdgeCount:        e.cfg.NumOperations,
		Acyclic:          e.cfg.Serializable,
		Cyclic:           !e.cfg.Serializable,
	})
	if err != nil {
		e.logger.Error("precedence graph generation failed", logging.Error(err))
		e.metrics.RecordGenerationExhaustion()
		return nil, fmt.Errorf("generate precedence graph: %w", err)
	}
	e.metrics.RecordGraphGeneration(kind, time.Since(graphStart))
	e.logger.Debug("precedence graph generated",
		logging.Int("transactions", g.VertexCount()),
		logging.Int("edges", g.EdgeCount()))

	seed, err := generator.ScheduleFromCyclicPrecedenceGraph(g, generator.ScheduleOptions{
		MustReadWritten: e.cfg.MustRead,
		MustWriteRead:   e.cfg.MustWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("realize schedule: %w", err)
	}
	e.metrics.RecordScheduleGeneration("cyclic_graph")

	equivalents := generator.RandomConflictEquivalentPermutations(seed, e.cfg.NumSchedules-1, 0)
	e.metrics.RecordSampledPermutations(len(equivalents))
	if len(equivalents) < e.cfg.NumSchedules-1 {
		e.logger.Warn("fewer distinct permutations than requested",
			logging.Count(len(equivalents)+1),
			logging.Int("requested", e.cfg.NumSchedules))
	}

	schedules := append([]*schedule.Schedule{seed}, equivalents...)
	generator.Shuffle(len(schedules), func(i, j int) {
		schedules[i], schedules[j] = schedules[j], schedules[i]
	})
	for i, s := range schedules {
		s.ID = i + 1
	}

	graphs := make([]*graph.DirectedGraph, len(schedules))
	for i, s := range schedules {
		graphs[i] = s.PrecedenceGraph()
	}

	sheet := &Sheet{
		ID:               uuid.New(),
		Schedules:        schedules,
		PrecedenceGraphs: graphs,
	}
	e.logger.Info("sheet generated",
		logging.SheetID(sheet.ID),
		logging.Count(len(schedules)))
	return sheet, nil
}
