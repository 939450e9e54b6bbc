package graph

import (
	"errors"
)

// Common sentinel errors for structural violations and cycle detection.
// Callers match with errors.Is; the wrapped forms carry the offending ids.
var (
	ErrDuplicateVertex = errors.New("vertex already exists")
	ErrDuplicateEdge   = errors.New("edge already exists")
	ErrVertexNotFound  = errors.New("vertex not found")
	ErrEdgeNotFound    = errors.New("edge not found")

	// ErrCyclicGraph is returned by TopologicalSort when the graph is not a
	// DAG. It is the single cycle-detection signal: serializability and
	// deadlock checks in higher layers test for it rather than running
	// their own cycle search.
	ErrCyclicGraph = errors.New("graph contains a cycle")
)
