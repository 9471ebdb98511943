package csp

import "testing"

func TestAssignmentWithAndGet(t *testing.T) {
	a := NewAssignment[string]().With("x", 1).With("y", "hi")

	if got, ok := a.Get("x"); !ok || got != 1 {
		t.Errorf("Get(x) = (%v, %v), want (1, true)", got, ok)
	}
	if x, ok := Get[string, int](a, "x"); !ok || x != 1 {
		t.Errorf("Get[int](x) = (%v, %v), want (1, true)", x, ok)
	}
	if _, ok := a.Get("z"); ok {
		t.Errorf("Get(z) ok = true, want false")
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestAssignmentWithOverwrites(t *testing.T) {
	a := NewAssignment[string]().With("x", 1).With("x", 2)
	if got, _ := a.Get("x"); got != 2 {
		t.Errorf("Get(x) = %v, want 2 after overwrite", got)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

func TestAssignmentIntersection(t *testing.T) {
	a := NewAssignment[string]().With("x", 1).With("y", 2)
	b := NewAssignment[string]().With("x", 1).With("y", 3)

	got := a.Intersection(b)
	want := NewAssignment[string]().With("x", 1)
	if !got.Equal(want) {
		t.Errorf("Intersection() = %#v, want %#v", got, want)
	}
}

func TestAssignmentUnionAgreement(t *testing.T) {
	a := NewAssignment[string]().With("x", 1)
	b := NewAssignment[string]().With("x", 1).With("y", 2)

	got := a.Union(b)
	want := NewAssignment[string]().With("x", 1).With("y", 2)
	if !got.Equal(want) {
		t.Errorf("Union() = %#v, want %#v", got, want)
	}
}

func TestAssignmentUnionConflictOmits(t *testing.T) {
	a := NewAssignment[string]().With("x", 1).With("y", 2)
	b := NewAssignment[string]().With("x", 99)

	got := a.Union(b)
	if _, ok := got.Get("x"); ok {
		t.Errorf("conflicting variable x present in Union(), want omitted")
	}
	if y, ok := got.Get("y"); !ok || y != 2 {
		t.Errorf("Get(y) = (%v, %v), want (2, true)", y, ok)
	}
}

func TestAssignmentOfCopiesInput(t *testing.T) {
	bindings := map[string]any{"x": 1}
	a := AssignmentOf(bindings)
	bindings["x"] = 2

	if got, _ := a.Get("x"); got != 1 {
		t.Errorf("Get(x) = %v, want 1 (AssignmentOf must copy, not alias)", got)
	}
}

func TestAssignmentEqual(t *testing.T) {
	a := NewAssignment[string]().With("x", 1)
	b := NewAssignment[string]().With("x", 1)
	c := NewAssignment[string]().With("x", 2)

	if !a.Equal(b) {
		t.Errorf("Equal() = false, want true for identical bindings")
	}
	if a.Equal(c) {
		t.Errorf("Equal() = true, want false for differing bindings")
	}
}
