package csp

import "testing"

func TestRankLessBySizeThenOverlap(t *testing.T) {
	smaller := Rank{NegSize: -1, Overlap: 0}
	larger := Rank{NegSize: -5, Overlap: 10}

	if !larger.Less(smaller) {
		t.Errorf("Rank{-5,10}.Less({-1,0}) = false, want true (fewer admissible assignments ranks higher)")
	}

	tieA := Rank{NegSize: -2, Overlap: 1}
	tieB := Rank{NegSize: -2, Overlap: 3}
	if !tieA.Less(tieB) {
		t.Errorf("expected tiebreak on Overlap to favor the more connected constraint")
	}
}

type stubConstraint struct {
	size int
}

func (s stubConstraint) Size() int                                  { return s.size }
func (s stubConstraint) Variables() []int                           { return nil }
func (s stubConstraint) Decompositions() []Constraint[int]          { return nil }
func (s stubConstraint) Reduce(Constraint[int]) (bool, error)       { return false, nil }
func (s stubConstraint) PopSolution() (Assignment[int], bool)       { return Assignment[int]{}, false }
func (s stubConstraint) Hash() uint64                               { return uint64(s.size) }
func (s stubConstraint) Clone() Constraint[int]                     { return s }

func TestDefaultHeuristicPrefersSmallest(t *testing.T) {
	h := DefaultHeuristic[int]{}
	small := h.Rank(stubConstraint{size: 1}, []Constraint[int]{stubConstraint{size: 9}})
	big := h.Rank(stubConstraint{size: 9}, nil)

	if !big.Less(small) {
		t.Errorf("expected the size-1 constraint to outrank the size-9 constraint")
	}
}
