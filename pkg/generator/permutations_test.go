package generator

import (
	"testing"

	"github.com/dkovats/schedkit/pkg/schedule"
)

func parseSchedule(t *testing.T, value string) *schedule.Schedule {
	t.Helper()
	s, err := schedule.Parse(value)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", value, err)
	}
	return s
}

func TestConflictEquivalentPermutations_DiamondSchedule(t *testing.T) {
	// The conflict graph is four disjoint 2-chains over 8 operations:
	// 8!/2^4 = 2520 linear extensions.
	s := parseSchedule(t, "S_1 : W_1(A), W_1(B), R_2(A), W_2(C), R_3(B), W_3(D), R_4(C), R_4(D)")

	permutations := ConflictEquivalentPermutations(s, 0)
	if len(permutations) != 2520 {
		t.Fatalf("got %d permutations, want 2520", len(permutations))
	}

	for i := 0; i < 5; i++ {
		if !s.IsConflictEquivalentWith(permutations[i]) {
			t.Errorf("permutation %d is not conflict-equivalent: %s", i, permutations[i])
		}
	}
}

func TestConflictEquivalentPermutations_MaxCap(t *testing.T) {
	s := parseSchedule(t, "S_1 : R_1(A), W_1(A), R_1(B), W_1(B), R_2(A), W_2(A), R_2(C), W_2(C), R_3(B), W_3(B), R_3(D), W_3(D), R_4(C), R_4(D), W_4(C), W_4(D)")

	permutations := ConflictEquivalentPermutations(s, 100)
	if len(permutations) != 100 {
		t.Fatalf("got %d permutations, want 100", len(permutations))
	}
	for i := 0; i < 5; i++ {
		if !s.IsConflictEquivalentWith(permutations[i]) {
			t.Errorf("permutation %d is not conflict-equivalent: %s", i, permutations[i])
		}
	}
}

func TestConflictEquivalentPermutations_FullyConflicting(t *testing.T) {
	// Every pair conflicts, so the only linear extension is the schedule
	// itself.
	s := parseSchedule(t, "S_1 : W_1(A), W_2(A), W_3(A)")

	permutations := ConflictEquivalentPermutations(s, 0)
	if len(permutations) != 1 {
		t.Fatalf("got %d permutations, want 1", len(permutations))
	}
	if !permutations[0].Equal(s) {
		t.Errorf("permutation = %s, want the original order", permutations[0])
	}
}

func TestConflictEquivalentPermutations_NoConflicts(t *testing.T) {
	// Three independent operations: 3! = 6 permutations, and the first
	// one enumerated is the identity (frontier branched in sorted order).
	s := parseSchedule(t, "S_1 : R_1(A), R_2(B), R_3(C)")

	permutations := ConflictEquivalentPermutations(s, 0)
	if len(permutations) != 6 {
		t.Fatalf("got %d permutations, want 6", len(permutations))
	}
	if !permutations[0].Equal(s) {
		t.Errorf("first permutation = %s, want identity", permutations[0])
	}

	seen := make(map[string]bool)
	for _, p := range permutations {
		seen[p.String()] = true
	}
	if len(seen) != 6 {
		t.Errorf("permutations are not distinct: %d unique of 6", len(seen))
	}
}

func TestConflictEquivalentPermutations_Deterministic(t *testing.T) {
	s := parseSchedule(t, "S_1 : W_1(A), W_1(B), R_2(A), W_2(C), R_3(B), W_3(D), R_4(C), R_4(D)")

	first := ConflictEquivalentPermutations(s, 50)
	second := ConflictEquivalentPermutations(s, 50)
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("enumeration order differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestRandomConflictEquivalentPermutations(t *testing.T) {
	Seed(7)

	s := parseSchedule(t, "S_1 : W_1(A), W_1(B), R_2(A), W_2(C), R_3(B), W_3(D), R_4(C), R_4(D)")

	permutations := RandomConflictEquivalentPermutations(s, 10, 0)
	if len(permutations) != 10 {
		t.Fatalf("got %d permutations, want 10", len(permutations))
	}

	seen := make(map[string]bool)
	for _, p := range permutations {
		if !s.IsConflictEquivalentWith(p) {
			t.Errorf("sampled permutation is not conflict-equivalent: %s", p)
		}
		seen[p.String()] = true
	}
	if len(seen) != 10 {
		t.Errorf("sampled permutations are not unique: %d of 10", len(seen))
	}
}

func TestRandomConflictEquivalentPermutations_BudgetShortfall(t *testing.T) {
	Seed(8)

	// Only one linear extension exists; asking for five returns the one,
	// short result, not an error.
	s := parseSchedule(t, "S_1 : W_1(A), W_2(A), W_3(A)")

	permutations := RandomConflictEquivalentPermutations(s, 5, 0)
	if len(permutations) != 1 {
		t.Fatalf("got %d permutations, want 1", len(permutations))
	}
	if !permutations[0].Equal(s) {
		t.Errorf("permutation = %s, want the original order", permutations[0])
	}
}

func TestRandomConflictEquivalentPermutations_EmptyInputs(t *testing.T) {
	s := parseSchedule(t, "S_1 : R_1(A)")
	if got := RandomConflictEquivalentPermutations(s, 0, 0); got != nil {
		t.Errorf("count 0: got %v, want nil", got)
	}

	empty := &schedule.Schedule{ID: 1}
	if got := RandomConflictEquivalentPermutations(empty, 3, 0); got != nil {
		t.Errorf("empty schedule: got %v, want nil", got)
	}
}
