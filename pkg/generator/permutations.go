package generator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dkovats/schedkit/pkg/schedule"
)

// ConflictEquivalentPermutations enumerates the conflict-equivalent
// permutations of a schedule: all linear extensions of the partial order
// given by its conflict graph. The backtracking search branches over the
// zero-indegree frontier in sorted order, copying the indegree map and
// frontier per branch, so output order is deterministic. A positive
// maxPermutations stops the enumeration once that many schedules have
// been produced; zero or negative means no limit. A schedule of n
// mutually non-conflicting operations yields n! permutations, so callers
// should cap accordingly.
func ConflictEquivalentPermutations(s *schedule.Schedule, maxPermutations int) []*schedule.Schedule {
	n := len(s.Operations)
	g := s.ConflictGraph()

	indegree := g.InDegrees()
	var frontier []int
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			frontier = append(frontier, i)
		}
	}

	var results []*schedule.Schedule
	done := func() bool {
		return maxPermutations > 0 && len(results) >= maxPermutations
	}

	path := make([]int, 0, n)

	var backtrack func(indegree map[int]int, frontier []int)
	backtrack = func(indegree map[int]int, frontier []int) {
		if done() {
			return
		}
		if len(path) == n {
			results = append(results, materialize(s, path))
			return
		}

		ordered := make([]int, len(frontier))
		copy(ordered, frontier)
		sort.Ints(ordered)

		for _, idx := range ordered {
			if done() {
				return
			}

			// Snapshot-copy per branch instead of undoing mutations.
			nextIndegree := make(map[int]int, len(indegree))
			for k, v := range indegree {
				nextIndegree[k] = v
			}
			nextFrontier := make([]int, 0, len(frontier))
			for _, f := range frontier {
				if f != idx {
					nextFrontier = append(nextFrontier, f)
				}
			}
			for _, successor := range g.Successors(idx) {
				nextIndegree[successor]--
				if nextIndegree[successor] == 0 {
					nextFrontier = append(nextFrontier, successor)
				}
			}

			path = append(path, idx)
			backtrack(nextIndegree, nextFrontier)
			path = path[:len(path)-1]
		}
	}

	backtrack(indegree, frontier)

	return results
}

// RandomConflictEquivalentPermutations samples unique conflict-equivalent
// permutations by drawing random linear extensions: a randomized Kahn
// walk that picks uniformly from the frontier instead of smallest-first.
// Duplicates are filtered by index tuple. Sampling stops after count
// unique schedules or maxAttempts draws (count*100 when maxAttempts is
// not positive); a short result is the documented outcome of an
// exhausted budget, not an error.
func RandomConflictEquivalentPermutations(s *schedule.Schedule, count, maxAttempts int) []*schedule.Schedule {
	n := len(s.Operations)
	if count <= 0 || n == 0 {
		return nil
	}

	g := s.ConflictGraph()
	baseIndegree := g.InDegrees()

	if maxAttempts <= 0 {
		maxAttempts = count * 100
	}

	seen := make(map[string]bool)
	var results []*schedule.Schedule

	for attempts := 0; len(results) < count && attempts < maxAttempts; attempts++ {
		indegree := make(map[int]int, n)
		for k, v := range baseIndegree {
			indegree[k] = v
		}
		var frontier []int
		for i := 0; i < n; i++ {
			if indegree[i] == 0 {
				frontier = append(frontier, i)
			}
		}

		permutation := make([]int, 0, n)
		for len(frontier) > 0 {
			pick := rng.Intn(len(frontier))
			idx := frontier[pick]
			frontier = append(frontier[:pick], frontier[pick+1:]...)
			permutation = append(permutation, idx)

			for _, successor := range g.Successors(idx) {
				indegree[successor]--
				if indegree[successor] == 0 {
					frontier = append(frontier, successor)
				}
			}
		}

		key := permutationKey(permutation)
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, materialize(s, permutation))
	}

	return results
}

// materialize builds a new schedule whose operations follow the given
// index permutation of the source schedule.
func materialize(s *schedule.Schedule, permutation []int) *schedule.Schedule {
	ops := make([]schedule.Operation, len(permutation))
	for i, idx := range permutation {
		ops[i] = s.Operations[idx]
	}
	return &schedule.Schedule{ID: s.ID, Operations: ops}
}

func permutationKey(permutation []int) string {
	var sb strings.Builder
	for i, idx := range permutation {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}
