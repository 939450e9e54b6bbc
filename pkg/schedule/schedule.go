package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dkovats/schedkit/pkg/graph"
)

// Schedule is an ordered sequence of operations with an identifier.
// Transforms never mutate a schedule in place; they return new values.
// The ID is the one mutable field: callers renumber schedules after
// generation.
type Schedule struct {
	ID         int
	Operations []Operation
}

// New creates a schedule from the given operations.
func New(id int, operations ...Operation) *Schedule {
	ops := make([]Operation, len(operations))
	copy(ops, operations)
	return &Schedule{ID: id, Operations: ops}
}

// String renders the canonical notation: S_1 : R_1(A), W_2(A), ...
func (s *Schedule) String() string {
	parts := make([]string, len(s.Operations))
	for i, op := range s.Operations {
		parts[i] = op.String()
	}
	return fmt.Sprintf("S_%d : %s", s.ID, strings.Join(parts, ", "))
}

// Parse parses the canonical schedule notation `S_<id> : op, op, ...`.
// Malformed input returns a wrapped ErrInvalidFormat and no schedule.
func Parse(value string) (*Schedule, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "S_") {
		return nil, fmt.Errorf("schedule must start with S_: %w", ErrInvalidFormat)
	}

	idPart, opsPart, found := strings.Cut(value, ":")
	if !found {
		return nil, fmt.Errorf("schedule is missing the ':' separator: %w", ErrInvalidFormat)
	}

	id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(idPart), "S_")))
	if err != nil {
		return nil, fmt.Errorf("bad schedule id %q: %w", strings.TrimSpace(idPart), ErrInvalidFormat)
	}

	var operations []Operation
	for _, token := range strings.Split(opsPart, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		op, err := ParseOperation(token)
		if err != nil {
			return nil, err
		}
		operations = append(operations, op)
	}

	return &Schedule{ID: id, Operations: operations}, nil
}

// Equal reports field-by-field equality of two schedules.
func (s *Schedule) Equal(other *Schedule) bool {
	if other == nil || s.ID != other.ID || len(s.Operations) != len(other.Operations) {
		return false
	}
	for i := range s.Operations {
		if s.Operations[i] != other.Operations[i] {
			return false
		}
	}
	return true
}

// TransactionIDs returns the distinct transaction ids appearing in the
// schedule, in ascending order.
func (s *Schedule) TransactionIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, op := range s.Operations {
		if !seen[op.Tx] {
			seen[op.Tx] = true
			ids = append(ids, op.Tx)
		}
	}
	sort.Ints(ids)
	return ids
}

// ConflictGraph builds the operation-level conflict graph: one vertex per
// operation index (labelled with the operation), and an edge i->j for
// every pair i<j of conflicting operations. Edges only point from lower
// to higher index, so the result is a DAG by construction; it encodes all
// conflict-preserving orderings of the schedule.
func (s *Schedule) ConflictGraph() *graph.DirectedGraph {
	g := graph.New()
	for i, op := range s.Operations {
		g.AddVertex(graph.Vertex{ID: i, Label: op})
	}
	for i := 0; i < len(s.Operations); i++ {
		for j := i + 1; j < len(s.Operations); j++ {
			if s.Operations[i].ConflictsWith(s.Operations[j]) {
				g.AddEdge(graph.Edge{Source: i, Target: j})
			}
		}
	}
	return g
}

// PrecedenceGraph builds the transaction-level precedence graph: one
// vertex per distinct transaction id, and an edge tx(i)->tx(j) whenever
// an operation of tx(i) conflicts with and precedes one of tx(j).
// Duplicate edges between the same transaction pair are collapsed.
func (s *Schedule) PrecedenceGraph() *graph.DirectedGraph {
	g := graph.New()
	for _, tx := range s.TransactionIDs() {
		g.AddVertex(graph.Vertex{ID: tx, Label: fmt.Sprintf("T_%d", tx)})
	}
	for i := 0; i < len(s.Operations); i++ {
		for j := i + 1; j < len(s.Operations); j++ {
			if !s.Operations[i].ConflictsWith(s.Operations[j]) {
				continue
			}
			source, target := s.Operations[i].Tx, s.Operations[j].Tx
			if !g.HasEdge(source, target) {
				g.AddEdge(graph.Edge{Source: source, Target: target})
			}
		}
	}
	return g
}

// IsConflictSerializable reports whether the precedence graph is acyclic,
// the classical conflict-serializability test.
func (s *Schedule) IsConflictSerializable() bool {
	_, err := s.PrecedenceGraph().TopologicalSort()
	return err == nil
}

// Serialize returns a serial schedule that is conflict-equivalent to s:
// operations grouped by transaction, transactions in the topological
// order of the precedence graph, each transaction's internal operation
// order preserved. Fails with ErrNotSerializable if no such order exists.
func (s *Schedule) Serialize() (*Schedule, error) {
	order, err := s.PrecedenceGraph().TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("serialize S_%d: %w", s.ID, ErrNotSerializable)
	}

	operations := make([]Operation, 0, len(s.Operations))
	for _, tx := range order {
		for _, op := range s.Operations {
			if op.Tx == tx {
				operations = append(operations, op)
			}
		}
	}

	return &Schedule{ID: s.ID, Operations: operations}, nil
}

// IsConflictEquivalentWith reports whether the two schedules have equal
// conflict graphs, compared by vertex-label strings and by
// (source-label, target-label) edge pairs. This label-based check is
// sound because equivalence candidates are permutations of the same
// multiset of operations; it is deliberately not general graph
// isomorphism.
func (s *Schedule) IsConflictEquivalentWith(other *Schedule) bool {
	if other == nil || len(s.Operations) != len(other.Operations) {
		return false
	}
	g1 := s.ConflictGraph()
	g2 := other.ConflictGraph()

	if !labelSetsEqual(vertexLabels(g1), vertexLabels(g2)) {
		return false
	}

	e1 := edgeLabelPairs(g1)
	e2 := edgeLabelPairs(g2)
	if len(e1) != len(e2) {
		return false
	}
	for pair := range e1 {
		if !e2[pair] {
			return false
		}
	}
	return true
}

func vertexLabels(g *graph.DirectedGraph) map[string]bool {
	labels := make(map[string]bool, g.VertexCount())
	for _, id := range g.VertexIDs() {
		v, _ := g.Vertex(id)
		labels[v.String()] = true
	}
	return labels
}

func edgeLabelPairs(g *graph.DirectedGraph) map[[2]string]bool {
	pairs := make(map[[2]string]bool, g.EdgeCount())
	for _, e := range g.Edges() {
		source, _ := g.Vertex(e.Source)
		target, _ := g.Vertex(e.Target)
		pairs[[2]string{source.String(), target.String()}] = true
	}
	return pairs
}

func labelSetsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for label := range a {
		if !b[label] {
			return false
		}
	}
	return true
}
