// Package schedule models transaction schedules and their concurrency
// properties: conflict and precedence graphs, conflict-serializability,
// lock-based legality, two-phase locking and deadlock detection. All
// derived structures are built on pkg/graph and computed on demand; all
// transforms return new Schedule values.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// OpType enumerates the eight operation kinds. The set is closed: every
// consumer switches exhaustively over it.
type OpType int

const (
	OpRead OpType = iota
	OpWrite
	OpLock
	OpSharedLock
	OpExclusiveLock
	OpUnlock
	OpCommit
	OpRollback
)

// mnemonic returns the notation prefix for the operation kind.
func (t OpType) mnemonic() string {
	switch t {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	case OpLock:
		return "L"
	case OpSharedLock:
		return "SL"
	case OpExclusiveLock:
		return "XL"
	case OpUnlock:
		return "U"
	case OpCommit:
		return "COMMIT"
	case OpRollback:
		return "ROLLBACK"
	default:
		return "UNKNOWN"
	}
}

// String returns the kind's notation prefix (R, W, L, SL, XL, U, COMMIT,
// ROLLBACK).
func (t OpType) String() string {
	return t.mnemonic()
}

// hasItem reports whether the kind carries a data item in its notation.
func (t OpType) hasItem() bool {
	switch t {
	case OpRead, OpWrite, OpLock, OpSharedLock, OpExclusiveLock, OpUnlock:
		return true
	case OpCommit, OpRollback:
		return false
	default:
		return false
	}
}

// Operation is a single transaction operation. Value identity is the
// (Tx, Type, Item) triple; Item is empty for COMMIT and ROLLBACK.
type Operation struct {
	Tx   int
	Type OpType
	Item string
}

// String renders the canonical notation: R_1(A), SL_2(B), COMMIT_3, ...
func (o Operation) String() string {
	if o.Type.hasItem() {
		return fmt.Sprintf("%s_%d(%s)", o.Type.mnemonic(), o.Tx, o.Item)
	}
	return fmt.Sprintf("%s_%d", o.Type.mnemonic(), o.Tx)
}

// ConflictsWith reports whether two operations conflict: same non-empty
// item, different transactions, and not both reads. The predicate looks
// only at (item, tx, kind); lock semantics play no part here.
func (o Operation) ConflictsWith(other Operation) bool {
	if o.Item == "" || o.Item != other.Item {
		return false
	}
	if o.Tx == other.Tx {
		return false
	}
	if o.Type == OpRead && other.Type == OpRead {
		return false
	}
	return true
}

var opTypesByMnemonic = map[string]OpType{
	"R":        OpRead,
	"W":        OpWrite,
	"L":        OpLock,
	"SL":       OpSharedLock,
	"XL":       OpExclusiveLock,
	"U":        OpUnlock,
	"COMMIT":   OpCommit,
	"ROLLBACK": OpRollback,
}

// ParseOperation parses the canonical operation notation. Accepted forms
// are `<prefix>_<tx>(<item>)` for the six item-bearing kinds and
// `COMMIT_<tx>` / `ROLLBACK_<tx>`. Malformed input returns a wrapped
// ErrInvalidFormat and no operation.
func ParseOperation(value string) (Operation, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Operation{}, fmt.Errorf("empty operation: %w", ErrInvalidFormat)
	}

	for _, prefix := range []string{"COMMIT_", "ROLLBACK_"} {
		if !strings.HasPrefix(value, prefix) {
			continue
		}
		tx, err := strconv.Atoi(value[len(prefix):])
		if err != nil {
			return Operation{}, fmt.Errorf("operation %q: bad transaction id: %w", value, ErrInvalidFormat)
		}
		return Operation{Tx: tx, Type: opTypesByMnemonic[strings.TrimSuffix(prefix, "_")]}, nil
	}

	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return Operation{}, fmt.Errorf("operation %q: %w", value, ErrInvalidFormat)
	}

	head := value[:open]
	item := value[open+1 : len(value)-1]

	mnemonic, txPart, found := strings.Cut(head, "_")
	if !found {
		return Operation{}, fmt.Errorf("operation %q: missing transaction id: %w", value, ErrInvalidFormat)
	}
	opType, known := opTypesByMnemonic[mnemonic]
	if !known || !opType.hasItem() {
		return Operation{}, fmt.Errorf("operation %q: unknown kind %q: %w", value, mnemonic, ErrInvalidFormat)
	}
	tx, err := strconv.Atoi(txPart)
	if err != nil {
		return Operation{}, fmt.Errorf("operation %q: bad transaction id: %w", value, ErrInvalidFormat)
	}
	if item == "" {
		return Operation{}, fmt.Errorf("operation %q: empty item: %w", value, ErrInvalidFormat)
	}

	return Operation{Tx: tx, Type: opType, Item: item}, nil
}
