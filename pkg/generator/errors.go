package generator

import (
	"errors"
)

var (
	// ErrGenerationExhausted is returned when random graph generation
	// spends its whole attempt budget without reaching the requested edge
	// count. Permutation sampling never returns it; running out of
	// attempts there yields a short result instead.
	ErrGenerationExhausted = errors.New("generation attempt budget exhausted")

	// ErrConflictingConstraints is returned when a graph is requested to
	// be both cyclic and acyclic.
	ErrConflictingConstraints = errors.New("graph cannot be both cyclic and acyclic")

	// ErrInvalidOptions is returned for out-of-range generation options.
	ErrInvalidOptions = errors.New("invalid generation options")
)
