// Package csp implements a generic constraint satisfaction engine: a System
// of pluggable Constraints, propagated to a fixed point and then searched
// with backtracking to enumerate every satisfying Assignment.
package csp

// Assignment is a partial map from variables of type V to opaque, family-defined
// values. Each variable appears at most once. The zero value is not ready for
// use; construct with NewAssignment.
//
// Assignment is a value type: Intersection and Union are pure functions that
// return a new Assignment rather than mutating either argument.
type Assignment[V comparable] struct {
	values map[V]any
}

// NewAssignment returns an empty assignment.
func NewAssignment[V comparable]() Assignment[V] {
	return Assignment[V]{values: map[V]any{}}
}

// AssignmentOf builds an assignment directly from a binding map. The caller's
// map is copied, never aliased.
func AssignmentOf[V comparable](bindings map[V]any) Assignment[V] {
	out := make(map[V]any, len(bindings))
	for v, val := range bindings {
		out[v] = val
	}
	return Assignment[V]{values: out}
}

// Len reports the number of bound variables.
func (a Assignment[V]) Len() int {
	return len(a.values)
}

// Get returns the value bound to v, if any.
func (a Assignment[V]) Get(v V) (any, bool) {
	val, ok := a.values[v]
	return val, ok
}

// Variables returns every bound variable, in unspecified order.
func (a Assignment[V]) Variables() []V {
	out := make([]V, 0, len(a.values))
	for v := range a.values {
		out = append(out, v)
	}
	return out
}

// With returns a copy of a with v bound to val, overwriting any prior binding.
// Used by constraint families to build up a Solution before returning it.
func (a Assignment[V]) With(v V, val any) Assignment[V] {
	out := make(map[V]any, len(a.values)+1)
	for k, existing := range a.values {
		out[k] = existing
	}
	out[v] = val
	return Assignment[V]{values: out}
}

// Intersection returns the assignment containing v iff both a and other bind
// v to identical values.
func (a Assignment[V]) Intersection(other Assignment[V]) Assignment[V] {
	out := make(map[V]any, len(a.values))
	for v, val := range a.values {
		if otherVal, ok := other.values[v]; ok && valuesEqual(val, otherVal) {
			out[v] = val
		}
	}
	return Assignment[V]{values: out}
}

// Union returns the assignment starting from a, adding every binding from
// other. A variable bound differently by both sides is omitted from the
// result rather than treated as an error - contradictions are the concern of
// Constraint.Reduce, not assignment merging.
func (a Assignment[V]) Union(other Assignment[V]) Assignment[V] {
	out := make(map[V]any, len(a.values)+len(other.values))
	for v, val := range a.values {
		out[v] = val
	}
	for v, val := range other.values {
		existing, ok := out[v]
		switch {
		case !ok:
			out[v] = val
		case valuesEqual(existing, val):
			// already agrees, keep it
		default:
			delete(out, v)
		}
	}
	return Assignment[V]{values: out}
}

// Equal reports whether a and other bind exactly the same variables to
// exactly the same values. Mainly useful in tests.
func (a Assignment[V]) Equal(other Assignment[V]) bool {
	if len(a.values) != len(other.values) {
		return false
	}
	for v, val := range a.values {
		otherVal, ok := other.values[v]
		if !ok || !valuesEqual(val, otherVal) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	return a == b
}

// Get extracts a typed value bound to v from assignment a. It is a free
// function (rather than a method) since Go methods cannot introduce an
// additional type parameter.
func Get[V comparable, T any](a Assignment[V], v V) (T, bool) {
	raw, ok := a.Get(v)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := raw.(T)
	return t, ok
}
