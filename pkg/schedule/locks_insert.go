package schedule

import (
	"sort"
)

// lockKey identifies one transaction's lock on one item.
type lockKey struct {
	tx   int
	item string
}

// AddLocks returns a new schedule with lock operations inserted around
// every data access: a lock immediately before a transaction's first
// access to an item, an unlock immediately after its last access to that
// item (eager release, not two-phase). With useSharedLocks, reads take
// SLOCK and writes take XLOCK, upgrading SLOCK to XLOCK on a write that
// follows a prior read; otherwise a plain LOCK is used. Locks still open
// at COMMIT/ROLLBACK or at the end of the schedule are released there.
func (s *Schedule) AddLocks(useSharedLocks bool) *Schedule {
	return s.insertLocks(useSharedLocks, false)
}

// AddLocksTwoPhase is AddLocks with two-phase release: lock acquisition
// points are identical, but every unlock of a transaction is deferred
// until after that transaction's last lock acquisition, so each
// transaction acquires all its locks before releasing any.
func (s *Schedule) AddLocksTwoPhase(useSharedLocks bool) *Schedule {
	return s.insertLocks(useSharedLocks, true)
}

func (s *Schedule) insertLocks(useSharedLocks, twoPhase bool) *Schedule {
	// Access positions per (tx, item): first and last READ/WRITE, and the
	// first WRITE (the upgrade point when the first access was a read).
	firstAccess := make(map[lockKey]int)
	lastAccess := make(map[lockKey]int)
	firstWrite := make(map[lockKey]int)
	for i, op := range s.Operations {
		if op.Type != OpRead && op.Type != OpWrite {
			continue
		}
		key := lockKey{op.Tx, op.Item}
		if _, seen := firstAccess[key]; !seen {
			firstAccess[key] = i
		}
		lastAccess[key] = i
		if op.Type == OpWrite {
			if _, seen := firstWrite[key]; !seen {
				firstWrite[key] = i
			}
		}
	}

	// Index of each transaction's final lock acquisition: the latest first
	// access, or upgrade point in shared mode. Unlocks may not precede it
	// under two-phase release.
	lastAcquisition := make(map[int]int)
	for key, first := range firstAccess {
		idx := first
		if useSharedLocks {
			if write, ok := firstWrite[key]; ok && write > idx {
				idx = write
			}
		}
		if prev, seen := lastAcquisition[key.tx]; !seen || idx > prev {
			lastAcquisition[key.tx] = idx
		}
	}

	held := make(map[lockKey]lockMode)
	out := make([]Operation, 0, len(s.Operations)*2)

	unlock := func(key lockKey) {
		out = append(out, Operation{Tx: key.tx, Type: OpUnlock, Item: key.item})
		delete(held, key)
	}

	// releaseDue emits the unlocks whose release point is position i: the
	// last access of the item, pushed back to the transaction's last lock
	// acquisition under two-phase release.
	releaseDue := func(i, tx int) {
		var due []lockKey
		for key := range held {
			if key.tx != tx {
				continue
			}
			point := lastAccess[key]
			if twoPhase && lastAcquisition[tx] > point {
				point = lastAcquisition[tx]
			}
			if point == i {
				due = append(due, key)
			}
		}
		sort.Slice(due, func(a, b int) bool { return due[a].item < due[b].item })
		for _, key := range due {
			unlock(key)
		}
	}

	// releaseAll emits unlocks for every lock the transaction still holds,
	// used at COMMIT/ROLLBACK. tx < 0 releases everything (schedule end).
	releaseAll := func(tx int) {
		var open []lockKey
		for key := range held {
			if tx < 0 || key.tx == tx {
				open = append(open, key)
			}
		}
		sort.Slice(open, func(a, b int) bool {
			if open[a].tx != open[b].tx {
				return open[a].tx < open[b].tx
			}
			return open[a].item < open[b].item
		})
		for _, key := range open {
			unlock(key)
		}
	}

	for i, op := range s.Operations {
		switch op.Type {
		case OpRead, OpWrite:
			key := lockKey{op.Tx, op.Item}
			switch {
			case held[key] == lockNone:
				switch {
				case !useSharedLocks:
					out = append(out, Operation{Tx: op.Tx, Type: OpLock, Item: op.Item})
					held[key] = lockExclusive
				case op.Type == OpRead:
					out = append(out, Operation{Tx: op.Tx, Type: OpSharedLock, Item: op.Item})
					held[key] = lockShared
				default:
					out = append(out, Operation{Tx: op.Tx, Type: OpExclusiveLock, Item: op.Item})
					held[key] = lockExclusive
				}
			case held[key] == lockShared && op.Type == OpWrite:
				// Upgrade the read lock for the write.
				out = append(out, Operation{Tx: op.Tx, Type: OpExclusiveLock, Item: op.Item})
				held[key] = lockExclusive
			}
			out = append(out, op)
			releaseDue(i, op.Tx)

		case OpCommit, OpRollback:
			releaseAll(op.Tx)
			out = append(out, op)

		case OpLock, OpSharedLock, OpExclusiveLock, OpUnlock:
			out = append(out, op)
		}
	}

	releaseAll(-1)

	return &Schedule{ID: s.ID, Operations: out}
}
