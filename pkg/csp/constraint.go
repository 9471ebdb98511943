package csp

// Constraint is the plug-in capability a constraint family must provide to
// take part in a System. It represents the set of assignments that satisfy
// it - equivalently, a predicate over assignments.
//
// Invariants a conforming implementation must uphold:
//  1. If Variables() is empty, Size() must be 1 (the trivially-satisfiable
//     empty assignment).
//  2. If Variables() is non-empty, Decompositions() must yield at least one
//     element.
//  3. Reduce must only mutate the receiver, never the argument.
//  4. After PopSolution returns true, the receiver's Variables() must no
//     longer mention any popped variable.
type Constraint[V comparable] interface {
	// Size approximates the number of unique assignments this constraint
	// admits. It must return 0 when unsatisfiable and 1 when exactly one
	// assignment remains; other values only need to be useful to a Heuristic.
	Size() int

	// Variables lists every variable this constraint mentions, each exactly
	// once. Order is unspecified but stable across calls on an unchanged
	// constraint.
	Variables() []V

	// Decompositions returns sub-constraints whose variable sets are subsets
	// of this constraint's, each with Size() == 1, whose union covers every
	// assignment this constraint admits. Decompositions may overlap.
	Decompositions() []Constraint[V]

	// Reduce removes from the receiver any assignments inconsistent with
	// other, returning whether the receiver strictly shrank. It fails with a
	// family-specific conflict error iff the receiver and other cannot both
	// hold simultaneously.
	Reduce(other Constraint[V]) (bool, error)

	// PopSolution extracts and removes every variable this constraint has
	// forced to a single, unique value. It reports false if nothing is yet
	// decided.
	PopSolution() (Assignment[V], bool)

	// Hash returns a content hash used by System for duplicate detection. It
	// must be order-independent over any unordered internal collections, and
	// equal for constraints that are semantically identical.
	Hash() uint64

	// Clone returns a deep, independent copy, used when System forks a
	// search branch.
	Clone() Constraint[V]
}
