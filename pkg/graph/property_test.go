package graph

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomDAG builds a graph with vertices 1..n and random forward edges
// (source < target), which cannot form a cycle.
func randomDAG(n int, seed int64) *DirectedGraph {
	rng := rand.New(rand.NewSource(seed))
	g := New()
	for id := 1; id <= n; id++ {
		g.AddVertex(Vertex{ID: id})
	}
	for source := 1; source <= n; source++ {
		for target := source + 1; target <= n; target++ {
			if rng.Intn(2) == 0 {
				g.AddEdge(Edge{Source: source, Target: target})
			}
		}
	}
	return g
}

// TestTopologicalSortProperties verifies the sort invariants over random
// DAGs: the output is a permutation of all vertex ids and respects every
// edge.
func TestTopologicalSortProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("sort of a DAG is a permutation of all vertices", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomDAG(n, seed)
			order, err := g.TopologicalSort()
			if err != nil {
				return false
			}
			if len(order) != g.VertexCount() {
				return false
			}
			seen := make(map[int]bool, len(order))
			for _, id := range order {
				if seen[id] || !g.HasVertex(id) {
					return false
				}
				seen[id] = true
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.Property("every edge points forward in the sort", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomDAG(n, seed)
			order, err := g.TopologicalSort()
			if err != nil {
				return false
			}
			position := make(map[int]int, len(order))
			for i, id := range order {
				position[id] = i
			}
			for _, e := range g.Edges() {
				if position[e.Source] >= position[e.Target] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.Property("sort is deterministic", prop.ForAll(
		func(n int, seed int64) bool {
			first, err1 := randomDAG(n, seed).TopologicalSort()
			second, err2 := randomDAG(n, seed).TopologicalSort()
			if err1 != nil || err2 != nil {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.Property("planting a cycle makes the sort fail", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomDAG(n, seed)
			// Close a cycle over the first and last vertex.
			if !g.HasEdge(1, n) {
				g.AddEdge(Edge{Source: 1, Target: n})
			}
			if !g.HasEdge(n, 1) {
				g.AddEdge(Edge{Source: n, Target: 1})
			}
			_, err := g.TopologicalSort()
			return err != nil
		},
		gen.IntRange(2, 8),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
