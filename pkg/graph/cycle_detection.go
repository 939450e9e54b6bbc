package graph

// Cycle is a detected cycle as a sequence of vertex ids.
type Cycle []int

// Three-color DFS marking.
const (
	white = 0 // unvisited
	gray  = 1 // on the recursion stack
	black = 2 // finished
)

// DetectCycles finds all back-edge cycles in the graph using DFS with
// three-color marking. A gray vertex reached again during the search marks
// a back edge; the cycle is reconstructed from parent pointers. Roots are
// visited in ascending id order so the output is deterministic.
//
// TopologicalSort remains the canonical yes/no cycle signal; DetectCycles
// exists for callers that need the participating vertices, e.g. naming the
// transactions involved in a deadlock.
func (g *DirectedGraph) DetectCycles() []Cycle {
	color := make(map[int]int, len(g.vertices))
	parent := make(map[int]int)
	cycles := make([]Cycle, 0)

	for _, id := range g.VertexIDs() {
		if color[id] == white {
			g.dfsDetectCycle(id, color, parent, &cycles)
		}
	}

	return cycles
}

func (g *DirectedGraph) dfsDetectCycle(id int, color map[int]int, parent map[int]int, cycles *[]Cycle) {
	color[id] = gray

	for _, neighbor := range g.adjacency[id] {
		if neighbor == id {
			// Self-loop.
			*cycles = append(*cycles, Cycle{id})
			continue
		}

		switch color[neighbor] {
		case white:
			parent[neighbor] = id
			g.dfsDetectCycle(neighbor, color, parent, cycles)
		case gray:
			// Back edge: trace parents from id back to neighbor.
			*cycles = append(*cycles, extractCycle(neighbor, id, parent))
		}
		// Black neighbors are forward/cross edges; no cycle there.
	}

	color[id] = black
}

func extractCycle(start, end int, parent map[int]int) Cycle {
	cycle := Cycle{start}
	current := end
	for current != start {
		cycle = append(cycle, current)
		p, exists := parent[current]
		if !exists {
			break
		}
		current = p
	}
	return cycle
}

// HasCycle reports whether the graph contains at least one cycle.
func (g *DirectedGraph) HasCycle() bool {
	return !g.IsDAG()
}
