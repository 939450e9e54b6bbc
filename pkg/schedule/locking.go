package schedule

import (
	"fmt"
	"sort"

	"github.com/dkovats/schedkit/pkg/graph"
)

// itemLock is the per-item lock table entry used by the wait-for
// derivation: the set of shared holders plus at most one exclusive
// holder. Lock tables are local to a single analysis pass; no locking
// state survives between calls.
type itemLock struct {
	shared    map[int]bool
	exclusive int
	hasExcl   bool
}

func newItemLock() *itemLock {
	return &itemLock{shared: make(map[int]bool)}
}

// WaitForGraph replays SLOCK/XLOCK/UNLOCK operations against a per-item
// lock table and records who waits for whom: one vertex per distinct
// transaction, an edge tx->holder whenever tx requests a lock that a
// different transaction currently holds in a blocking mode. READ, WRITE,
// plain LOCK, COMMIT and ROLLBACK do not touch the table in this
// derivation.
func (s *Schedule) WaitForGraph() *graph.DirectedGraph {
	g := graph.New()
	for _, tx := range s.TransactionIDs() {
		g.AddVertex(graph.Vertex{ID: tx, Label: fmt.Sprintf("T_%d", tx)})
	}

	locks := make(map[string]*itemLock)
	lockOn := func(item string) *itemLock {
		l, ok := locks[item]
		if !ok {
			l = newItemLock()
			locks[item] = l
		}
		return l
	}
	addWait := func(waiter, holder int) {
		if waiter != holder && !g.HasEdge(waiter, holder) {
			g.AddEdge(graph.Edge{Source: waiter, Target: holder})
		}
	}

	for _, op := range s.Operations {
		switch op.Type {
		case OpSharedLock:
			l := lockOn(op.Item)
			if l.hasExcl && l.exclusive != op.Tx {
				addWait(op.Tx, l.exclusive)
			}
			l.shared[op.Tx] = true

		case OpExclusiveLock:
			l := lockOn(op.Item)
			// Sorted for deterministic edge-insertion order.
			holders := make([]int, 0, len(l.shared))
			for holder := range l.shared {
				holders = append(holders, holder)
			}
			sort.Ints(holders)
			for _, holder := range holders {
				addWait(op.Tx, holder)
			}
			if l.hasExcl && l.exclusive != op.Tx {
				addWait(op.Tx, l.exclusive)
			}
			l.exclusive = op.Tx
			l.hasExcl = true
			delete(l.shared, op.Tx)

		case OpUnlock:
			l := lockOn(op.Item)
			if l.hasExcl && l.exclusive == op.Tx {
				l.hasExcl = false
			}
			delete(l.shared, op.Tx)

		case OpRead, OpWrite, OpLock, OpCommit, OpRollback:
			// No effect on the wait-for lock table.
		}
	}

	return g
}

// HasDeadlock reports whether the wait-for graph contains a cycle.
func (s *Schedule) HasDeadlock() bool {
	return s.WaitForGraph().HasCycle()
}

// DeadlockCycles returns the transaction cycles in the wait-for graph,
// each one a set of mutually waiting transactions. Empty when HasDeadlock
// is false.
func (s *Schedule) DeadlockCycles() []graph.Cycle {
	return s.WaitForGraph().DetectCycles()
}

// lockMode is the strength of a lock held by one transaction on one item
// during the legality replay.
type lockMode int

const (
	lockNone lockMode = iota
	lockShared
	lockExclusive
)

// IsLegal replays the schedule against a lock table and checks that every
// READ is covered by a shared or exclusive lock and every WRITE by an
// exclusive lock held by the reading/writing transaction at that point.
// Plain LOCK counts as exclusive. COMMIT and ROLLBACK release all of the
// transaction's locks. The first violation fails the whole check.
func (s *Schedule) IsLegal() bool {
	type holderKey struct {
		tx   int
		item string
	}
	held := make(map[holderKey]lockMode)

	for _, op := range s.Operations {
		switch op.Type {
		case OpRead:
			if held[holderKey{op.Tx, op.Item}] == lockNone {
				return false
			}
		case OpWrite:
			if held[holderKey{op.Tx, op.Item}] != lockExclusive {
				return false
			}
		case OpLock, OpExclusiveLock:
			held[holderKey{op.Tx, op.Item}] = lockExclusive
		case OpSharedLock:
			if held[holderKey{op.Tx, op.Item}] != lockExclusive {
				held[holderKey{op.Tx, op.Item}] = lockShared
			}
		case OpUnlock:
			delete(held, holderKey{op.Tx, op.Item})
		case OpCommit, OpRollback:
			for key := range held {
				if key.tx == op.Tx {
					delete(held, key)
				}
			}
		}
	}

	return true
}

// txPhase tracks a transaction's two-phase-locking phase.
type txPhase int

const (
	phaseGrowing txPhase = iota
	phaseShrinking
)

// IsTwoPhaseLocked reports whether every transaction acquires all of its
// SLOCK/XLOCK locks before releasing any lock: the first UNLOCK moves the
// transaction to its shrinking phase, and any later SLOCK or XLOCK fails
// the check. Plain LOCK is not phase-checked.
func (s *Schedule) IsTwoPhaseLocked() bool {
	phases := make(map[int]txPhase)

	for _, op := range s.Operations {
		switch op.Type {
		case OpSharedLock, OpExclusiveLock:
			if phases[op.Tx] == phaseShrinking {
				return false
			}
		case OpUnlock:
			phases[op.Tx] = phaseShrinking
		case OpRead, OpWrite, OpLock, OpCommit, OpRollback:
			// Not phase-sensitive.
		}
	}

	return true
}
