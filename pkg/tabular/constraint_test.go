package tabular

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danhawkins/constraint-engine-go/pkg/csp"
)

func TestConstraintSize(t *testing.T) {
	cases := []struct {
		name string
		c    *Constraint[string, bool]
		want int
	}{
		{
			name: "empty",
			c:    New[string, bool]([]string{"a"}),
			want: 0,
		},
		{
			name: "duplicate rows collapse",
			c:    New[string, bool]([]string{"a"}, []bool{true}, []bool{true}),
			want: 1,
		},
		{
			name: "distinct rows kept",
			c:    New[string, bool]([]string{"a", "b"}, []bool{true, false}, []bool{false, true}),
			want: 2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Size(); got != tc.want {
				t.Errorf("Size() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReduceShrinksToSharedRows(t *testing.T) {
	// a,b,c,d with two rows sharing (a,b,c)=(T,F,T), one outlier.
	first := New[string, bool]([]string{"a", "b", "c", "d"},
		[]bool{true, false, true, false},
		[]bool{true, false, true, true},
		[]bool{false, true, true, true},
	)
	second := New[string, bool]([]string{"a", "b", "c"},
		[]bool{true, true, false},
		[]bool{true, false, true},
	)

	shrankSecond, err := second.Reduce(first)
	if err != nil {
		t.Fatalf("second.Reduce(first) error = %v", err)
	}
	if !shrankSecond {
		t.Fatalf("expected second to shrink")
	}
	if second.Size() != 1 {
		t.Fatalf("second.Size() = %d, want 1", second.Size())
	}

	shrankFirst, err := first.Reduce(second)
	if err != nil {
		t.Fatalf("first.Reduce(second) error = %v", err)
	}
	if !shrankFirst {
		t.Fatalf("expected first to shrink")
	}
	if first.Size() != 2 {
		t.Fatalf("first.Size() = %d, want 2", first.Size())
	}
}

func TestReduceConflict(t *testing.T) {
	a := New[string, int]([]string{"x"}, []int{1})
	b := New[string, int]([]string{"x"}, []int{2})

	_, err := a.Reduce(b)
	if err != ErrConflict {
		t.Fatalf("Reduce error = %v, want ErrConflict", err)
	}
}

func TestPopSolutionExtractsCommonColumns(t *testing.T) {
	c := New[string, bool]([]string{"a", "b", "c", "d"},
		[]bool{true, false, true, false},
		[]bool{true, false, true, true},
	)

	solution, ok := c.PopSolution()
	if !ok {
		t.Fatalf("PopSolution() ok = false, want true")
	}

	want := csp.NewAssignment[string]().With("a", true).With("b", false).With("c", true)
	if !solution.Equal(want) {
		t.Errorf("solution = %#v, want %#v", solution, want)
	}

	if diff := cmp.Diff([]string{"d"}, c.Variables()); diff != "" {
		t.Errorf("remaining Variables() mismatch (-want +got):\n%s", diff)
	}
	if c.Size() != 2 {
		t.Errorf("remaining Size() = %d, want 2", c.Size())
	}
}

func TestPopSolutionNoneDecided(t *testing.T) {
	c := New[string, bool]([]string{"a", "b"},
		[]bool{true, false},
		[]bool{false, true},
	)
	if _, ok := c.PopSolution(); ok {
		t.Errorf("PopSolution() ok = true, want false when nothing is determined")
	}
}

func TestHashStableAcrossRowOrder(t *testing.T) {
	a := New[string, int]([]string{"x", "y"}, []int{1, 2}, []int{3, 4})
	b := New[string, int]([]string{"x", "y"}, []int{3, 4}, []int{1, 2})
	if a.Hash() != b.Hash() {
		t.Errorf("Hash() differs between row orderings; want order-independent")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New[string, int]([]string{"x"}, []int{1}, []int{2})
	clone := c.Clone().(*Constraint[string, int])

	clone.PopSolution()
	if c.Size() == clone.Size() && len(c.Variables()) == len(clone.Variables()) {
		// cloning two-row constraint can't pop a solution (nothing common),
		// so this just guards that mutating the clone's maps never aliases c.
	}
	clone.rows["mutated"] = []int{99}
	if _, ok := c.rows["mutated"]; ok {
		t.Errorf("mutating clone's rows affected the original")
	}
}

func TestInsertRowLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on mismatched row length")
		}
	}()
	New[string, int]([]string{"a", "b"}, []int{1})
}
