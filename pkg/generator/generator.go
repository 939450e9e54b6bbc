// Package generator synthesizes precedence graphs, schedules realizing
// them, and conflict-equivalent schedule permutations. Randomized
// construction draws from a package-wide source; call Seed for
// reproducible output. All searches are capped by explicit attempt and
// result limits because the underlying spaces grow factorially.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/dkovats/schedkit/pkg/graph"
	"github.com/dkovats/schedkit/pkg/schedule"
)

// rng is the process-wide pseudo-random source for all generation.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// Seed re-seeds the package's random source. Tests and exercise runs use
// it to pin reproducible output.
func Seed(seed int64) {
	rng = rand.New(rand.NewSource(seed))
}

// Shuffle pseudo-randomizes the order of n elements using the package's
// random source, so seeded runs shuffle reproducibly too.
func Shuffle(n int, swap func(i, j int)) {
	rng.Shuffle(n, swap)
}

// PrecedenceGraphOptions configures random precedence-graph generation.
type PrecedenceGraphOptions struct {
	TransactionCount int  // number of vertices, ids 1..TransactionCount
	EdgeCount        int  // exact number of edges to reach
	Acyclic          bool // keep only edges that leave the graph sortable
	Cyclic           bool // plant a random cycle first
	MaxAttempts      int  // sampling budget; 0 means EdgeCount * 20
}

// RandomPrecedenceGraph builds a random precedence graph over vertices
// 1..TransactionCount. With Cyclic set, a random cycle is planted first
// so at least one cycle is guaranteed; with Acyclic set, every sampled
// edge is rolled back if it would make the graph unsortable. Sampling is
// bounded best-effort: if the attempt budget runs out before EdgeCount
// edges exist, the call fails with ErrGenerationExhausted.
func RandomPrecedenceGraph(opts PrecedenceGraphOptions) (*graph.DirectedGraph, error) {
	if opts.Cyclic && opts.Acyclic {
		return nil, ErrConflictingConstraints
	}
	if opts.TransactionCount < 1 {
		return nil, fmt.Errorf("transaction count %d: %w", opts.TransactionCount, ErrInvalidOptions)
	}
	if opts.EdgeCount < 0 {
		return nil, fmt.Errorf("edge count %d: %w", opts.EdgeCount, ErrInvalidOptions)
	}
	if opts.Cyclic && opts.TransactionCount < 2 {
		return nil, fmt.Errorf("cyclic graph needs at least 2 transactions: %w", ErrInvalidOptions)
	}

	g := graph.New()
	for tx := 1; tx <= opts.TransactionCount; tx++ {
		g.AddVertex(graph.Vertex{ID: tx, Label: tx})
	}

	added := 0

	if opts.Cyclic {
		cycleLength := rng.Intn(opts.TransactionCount-1) + 2 // 2..TransactionCount
		if cycleLength > opts.EdgeCount {
			cycleLength = opts.EdgeCount
		}
		cycle := rng.Perm(opts.TransactionCount)[:cycleLength]
		for i := 0; i < cycleLength; i++ {
			source := cycle[i] + 1
			target := cycle[(i+1)%cycleLength] + 1
			g.AddEdge(graph.Edge{Source: source, Target: target})
		}
		added = cycleLength
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = opts.EdgeCount * 20
	}

	for attempts := 0; added < opts.EdgeCount && attempts < maxAttempts; attempts++ {
		source := rng.Intn(opts.TransactionCount) + 1
		target := rng.Intn(opts.TransactionCount) + 1

		if source == target || g.HasEdge(source, target) {
			continue
		}

		g.AddEdge(graph.Edge{Source: source, Target: target})

		if opts.Acyclic && !g.IsDAG() {
			// The edge closed a cycle; roll it back.
			g.RemoveEdge(source, target)
			continue
		}
		added++
	}

	if added < opts.EdgeCount {
		return nil, fmt.Errorf("added %d of %d edges: %w", added, opts.EdgeCount, ErrGenerationExhausted)
	}

	return g, nil
}

// ScheduleOptions controls the read/write augmentation rules when turning
// a precedence graph into a schedule.
type ScheduleOptions struct {
	// MustReadWritten ensures every WRITE is preceded by a READ of the
	// same item by the same transaction.
	MustReadWritten bool
	// MustWriteRead ensures every READ is followed by a WRITE of the same
	// item by the same transaction.
	MustWriteRead bool
}

// itemName produces the data item for the i-th edge: A..Z, then AA, AB...
func itemName(i int) string {
	name := ""
	for {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
		if i < 0 {
			return name
		}
	}
}

// assignItems maps every edge to a data item: the edge's own label when
// set, otherwise a fresh item per edge. Vertices are walked in ascending
// id order and adjacency in edge-insertion order, so assignment is
// deterministic.
func assignItems(g *graph.DirectedGraph) map[[2]int]string {
	items := make(map[[2]int]string, g.EdgeCount())
	counter := 0
	for _, source := range g.VertexIDs() {
		for _, target := range g.Successors(source) {
			edge, _ := g.Edge(source, target)
			if edge.Label != "" {
				items[[2]int{source, target}] = edge.Label
			} else {
				items[[2]int{source, target}] = itemName(counter)
			}
			counter++
		}
	}
	return items
}

// ScheduleFromAcyclicPrecedenceGraph generates a schedule realizing the
// given precedence graph: each edge (i, j) becomes a WRITE by i and a
// READ by j of a dedicated item, so exactly the required write-read
// conflicts exist. Transactions are emitted in topological order; for
// each one, READs for incoming items come first (sorted by item), then
// the augmentation writes, then WRITEs for outgoing items (sorted).
// Fails if the graph is cyclic.
func ScheduleFromAcyclicPrecedenceGraph(g *graph.DirectedGraph, opts ScheduleOptions) (*schedule.Schedule, error) {
	ordering, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("precedence graph: %w", err)
	}

	items := assignItems(g)
	reads := make(map[[2]any]bool)  // (tx, item) read already emitted
	writes := make(map[[2]any]bool) // (tx, item) write already emitted

	var ops []schedule.Operation
	emit := func(tx int, t schedule.OpType, item string) {
		ops = append(ops, schedule.Operation{Tx: tx, Type: t, Item: item})
		switch t {
		case schedule.OpRead:
			reads[[2]any{tx, item}] = true
		case schedule.OpWrite:
			writes[[2]any{tx, item}] = true
		}
	}

	for _, tx := range ordering {
		var incoming []string
		for _, source := range g.VertexIDs() {
			for _, target := range g.Successors(source) {
				if target == tx {
					incoming = append(incoming, items[[2]int{source, tx}])
				}
			}
		}
		sort.Strings(incoming)

		for _, item := range incoming {
			emit(tx, schedule.OpRead, item)
		}

		outgoing := make(map[string]bool)
		var outgoingItems []string
		for _, target := range g.Successors(tx) {
			item := items[[2]int{tx, target}]
			outgoing[item] = true
			outgoingItems = append(outgoingItems, item)
		}
		sort.Strings(outgoingItems)

		if opts.MustWriteRead {
			for _, item := range incoming {
				if outgoing[item] || writes[[2]any{tx, item}] {
					continue
				}
				emit(tx, schedule.OpWrite, item)
			}
		}

		for _, item := range outgoingItems {
			if opts.MustReadWritten && !reads[[2]any{tx, item}] {
				emit(tx, schedule.OpRead, item)
			}
			emit(tx, schedule.OpWrite, item)
		}
	}

	return &schedule.Schedule{ID: 1, Operations: ops}, nil
}

// ScheduleFromCyclicPrecedenceGraph generates a schedule realizing a
// possibly cyclic precedence graph. No topological order exists, so
// edges are processed in sorted (source, target) order, emitting the
// WRITE by the source and the READ by the target per edge, with the same
// augmentation rules as the acyclic variant.
func ScheduleFromCyclicPrecedenceGraph(g *graph.DirectedGraph, opts ScheduleOptions) (*schedule.Schedule, error) {
	items := assignItems(g)

	type assignment struct {
		source, target int
		item           string
	}
	assignments := make([]assignment, 0, len(items))
	for pair, item := range items {
		assignments = append(assignments, assignment{pair[0], pair[1], item})
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].source != assignments[j].source {
			return assignments[i].source < assignments[j].source
		}
		return assignments[i].target < assignments[j].target
	})

	reads := make(map[[2]any]bool)
	writes := make(map[[2]any]bool)

	var ops []schedule.Operation
	emit := func(tx int, t schedule.OpType, item string) {
		ops = append(ops, schedule.Operation{Tx: tx, Type: t, Item: item})
		switch t {
		case schedule.OpRead:
			reads[[2]any{tx, item}] = true
		case schedule.OpWrite:
			writes[[2]any{tx, item}] = true
		}
	}

	for _, a := range assignments {
		if opts.MustReadWritten && !reads[[2]any{a.source, a.item}] {
			emit(a.source, schedule.OpRead, a.item)
		}
		emit(a.source, schedule.OpWrite, a.item)
		emit(a.target, schedule.OpRead, a.item)
		if opts.MustWriteRead && !writes[[2]any{a.target, a.item}] {
			emit(a.target, schedule.OpWrite, a.item)
		}
	}

	return &schedule.Schedule{ID: 1, Operations: ops}, nil
}
