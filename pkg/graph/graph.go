// Package graph provides the directed-graph primitive underlying every
// derived structure in schedkit: conflict graphs, precedence graphs and
// wait-for graphs are all DirectedGraph instances built by the schedule
// layer and interrogated through topological sorting.
package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Vertex is an immutable graph vertex. Identity is ID; Label is opaque
// display/semantic payload (an operation, a transaction id, ...).
type Vertex struct {
	ID    int
	Label any
}

// String renders the label if present, otherwise a positional V_<id> form.
func (v Vertex) String() string {
	if v.Label != nil {
		return fmt.Sprintf("%v", v.Label)
	}
	return fmt.Sprintf("V_%d", v.ID)
}

// Edge is an immutable directed edge identified by its (Source, Target)
// pair. At most one edge may exist per ordered pair.
type Edge struct {
	Source int
	Target int
	Label  string
}

// String renders the edge in arrow notation, including the label if set.
func (e Edge) String() string {
	if e.Label != "" {
		return fmt.Sprintf("%d --[%s]--> %d", e.Source, e.Label, e.Target)
	}
	return fmt.Sprintf("%d -------> %d", e.Source, e.Target)
}

// DirectedGraph stores vertices keyed by id, edges keyed by ordered
// (source, target) pair, and adjacency lists of target ids in
// edge-insertion order. Vertices are never removed.
type DirectedGraph struct {
	vertices  map[int]Vertex
	edges     map[[2]int]Edge
	adjacency map[int][]int
}

// New creates an empty directed graph.
func New() *DirectedGraph {
	return &DirectedGraph{
		vertices:  make(map[int]Vertex),
		edges:     make(map[[2]int]Edge),
		adjacency: make(map[int][]int),
	}
}

// NewFrom creates a graph from initial vertex and edge collections.
// Vertices are added first, so edges may reference any of them.
func NewFrom(vertices []Vertex, edges []Edge) (*DirectedGraph, error) {
	g := New()
	for _, v := range vertices {
		if err := g.AddVertex(v); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddVertex inserts a vertex. Fails with ErrDuplicateVertex if a vertex
// with the same id is already present; the graph is left unmodified.
func (g *DirectedGraph) AddVertex(v Vertex) error {
	if _, exists := g.vertices[v.ID]; exists {
		return fmt.Errorf("add vertex %d: %w", v.ID, ErrDuplicateVertex)
	}
	g.vertices[v.ID] = v
	g.adjacency[v.ID] = nil
	return nil
}

// AddEdge inserts an edge. Both endpoints must already exist and the
// (source, target) pair must be free; otherwise the graph is left
// unmodified and an error is returned.
func (g *DirectedGraph) AddEdge(e Edge) error {
	if _, exists := g.vertices[e.Source]; !exists {
		return fmt.Errorf("add edge %d->%d: source: %w", e.Source, e.Target, ErrVertexNotFound)
	}
	if _, exists := g.vertices[e.Target]; !exists {
		return fmt.Errorf("add edge %d->%d: target: %w", e.Source, e.Target, ErrVertexNotFound)
	}
	key := [2]int{e.Source, e.Target}
	if _, exists := g.edges[key]; exists {
		return fmt.Errorf("add edge %d->%d: %w", e.Source, e.Target, ErrDuplicateEdge)
	}
	g.edges[key] = e
	g.adjacency[e.Source] = append(g.adjacency[e.Source], e.Target)
	return nil
}

// RemoveEdge deletes the edge with the given endpoints. Fails with
// ErrEdgeNotFound if no such edge exists.
func (g *DirectedGraph) RemoveEdge(source, target int) error {
	key := [2]int{source, target}
	if _, exists := g.edges[key]; !exists {
		return fmt.Errorf("remove edge %d->%d: %w", source, target, ErrEdgeNotFound)
	}
	delete(g.edges, key)
	targets := g.adjacency[source]
	for i, t := range targets {
		if t == target {
			g.adjacency[source] = append(targets[:i], targets[i+1:]...)
			break
		}
	}
	return nil
}

// HasVertex reports whether a vertex with the given id exists.
func (g *DirectedGraph) HasVertex(id int) bool {
	_, exists := g.vertices[id]
	return exists
}

// HasEdge reports whether an edge with the given endpoints exists.
func (g *DirectedGraph) HasEdge(source, target int) bool {
	_, exists := g.edges[[2]int{source, target}]
	return exists
}

// Vertex returns the vertex with the given id.
func (g *DirectedGraph) Vertex(id int) (Vertex, bool) {
	v, exists := g.vertices[id]
	return v, exists
}

// Edge returns the edge with the given endpoints.
func (g *DirectedGraph) Edge(source, target int) (Edge, bool) {
	e, exists := g.edges[[2]int{source, target}]
	return e, exists
}

// VertexCount returns the number of vertices.
func (g *DirectedGraph) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of directed edges.
func (g *DirectedGraph) EdgeCount() int {
	return len(g.edges)
}

// VertexIDs returns all vertex ids in ascending order.
func (g *DirectedGraph) VertexIDs() []int {
	ids := make([]int, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Edges returns all edges sorted by (source, target).
func (g *DirectedGraph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Successors returns a copy of the adjacency list of the given vertex, in
// edge-insertion order.
func (g *DirectedGraph) Successors(id int) []int {
	targets := g.adjacency[id]
	out := make([]int, len(targets))
	copy(out, targets)
	return out
}

// OutDegrees computes the out-degree of every vertex. Vertices without
// outgoing edges map to zero.
func (g *DirectedGraph) OutDegrees() map[int]int {
	out := make(map[int]int, len(g.vertices))
	for id := range g.vertices {
		out[id] = len(g.adjacency[id])
	}
	return out
}

// InDegrees computes the in-degree of every vertex. Vertices without
// incoming edges map to zero.
func (g *DirectedGraph) InDegrees() map[int]int {
	in := make(map[int]int, len(g.vertices))
	for id := range g.vertices {
		in[id] = 0
	}
	for _, targets := range g.adjacency {
		for _, t := range targets {
			in[t]++
		}
	}
	return in
}

// String renders the graph as a vertex list followed by an edge list,
// both in deterministic order.
func (g *DirectedGraph) String() string {
	var sb strings.Builder
	sb.WriteString("vertices: ")
	for i, id := range g.VertexIDs() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.vertices[id].String())
	}
	sb.WriteString("\nedges:\n")
	for _, e := range g.Edges() {
		sb.WriteString("  ")
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
