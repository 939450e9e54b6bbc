package schedule

import (
	"errors"
)

var (
	// ErrInvalidFormat is returned when operation or schedule notation
	// cannot be parsed. Parsing is all-or-nothing: no partial schedule is
	// ever produced.
	ErrInvalidFormat = errors.New("invalid notation format")

	// ErrNotSerializable is returned by Serialize when the schedule's
	// precedence graph contains a cycle.
	ErrNotSerializable = errors.New("schedule is not conflict-serializable")
)
