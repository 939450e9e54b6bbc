package graph

import (
	"fmt"
	"sort"
)

// TopologicalSort returns the vertices in topological order using Kahn's
// algorithm. The zero-indegree frontier is drained smallest-id-first, so
// the result is the unique deterministic ordering for a given graph.
// Returns ErrCyclicGraph (wrapped) if the graph is not a DAG; the graph is
// never modified.
func (g *DirectedGraph) TopologicalSort() ([]int, error) {
	inDegree := g.InDegrees()

	frontier := make([]int, 0, len(g.vertices))
	for id, deg := range inDegree {
		if deg == 0 {
			frontier = append(frontier, id)
		}
	}

	order := make([]int, 0, len(g.vertices))
	for len(frontier) > 0 {
		// Smallest id first, for reproducible output.
		sort.Ints(frontier)
		current := frontier[0]
		frontier = frontier[1:]
		order = append(order, current)

		for _, target := range g.adjacency[current] {
			inDegree[target]--
			if inDegree[target] == 0 {
				frontier = append(frontier, target)
			}
		}
	}

	if len(order) != len(g.vertices) {
		return nil, fmt.Errorf("topological sort emitted %d of %d vertices: %w",
			len(order), len(g.vertices), ErrCyclicGraph)
	}

	return order, nil
}

// IsDAG reports whether the graph contains no cycles.
func (g *DirectedGraph) IsDAG() bool {
	_, err := g.TopologicalSort()
	return err == nil
}
