package csp

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// System is the constraint solving engine: a set of Constraints over
// variables of type V, plus a reverse index from each variable to the
// constraints that mention it. Constraints are propagated against one
// another to a fixed point (Minimise) and then searched exhaustively
// (Solve/SolveWith) to enumerate every complete, satisfying Assignment.
//
// System is not safe for concurrent use; a caller that wants to explore a
// problem space from multiple goroutines must synchronize externally or
// give each goroutine its own Clone.
type System[V comparable] struct {
	// constraints holds every resident constraint, indexable by position.
	// A position is stable until something is removed at or before it.
	constraints []Constraint[V]
	// idxMap maps a constraint's content hash to its current position,
	// used for duplicate detection and O(1) removal-by-value.
	idxMap map[uint64]int
	// references maps a variable to the set of positions whose constraint
	// mentions it.
	references map[V]map[int]struct{}
	// toMinimise holds positions whose propagation might still shrink an
	// overlapping constraint.
	toMinimise *pendingSet

	log *logrus.Entry
}

// New builds a System from zero or more constraints, silently dropping
// duplicates (by content hash).
func New[V comparable](constraints ...Constraint[V]) *System[V] {
	sys := &System[V]{
		idxMap:     map[uint64]int{},
		references: map[V]map[int]struct{}{},
		toMinimise: newPendingSet(),
		log:        noopEntry(),
	}
	for _, c := range constraints {
		sys.Insert(c)
	}
	return sys
}

// Collect builds a System from an existing slice of constraints, silently
// dropping duplicates (by content hash). It is equivalent to New(cs...),
// provided for the case where the caller already holds its constraints as
// a slice rather than assembling them as variadic arguments.
func Collect[V comparable](cs []Constraint[V]) *System[V] {
	return New(cs...)
}

// WithLogger attaches a structured logger used to trace propagation and
// search activity at Debug/Trace level. Passing nil restores the no-op
// default. Returns the receiver for chaining.
func (s *System[V]) WithLogger(log *logrus.Entry) *System[V] {
	if log == nil {
		log = noopEntry()
	}
	s.log = log
	return s
}

// Len reports the number of resident constraints.
func (s *System[V]) Len() int {
	return len(s.constraints)
}

// IsEmpty reports whether the system holds no constraints.
func (s *System[V]) IsEmpty() bool {
	return len(s.constraints) == 0
}

// Constraints returns a snapshot slice of every resident constraint, in
// position order. Mutating the returned slice does not affect the System.
func (s *System[V]) Constraints() []Constraint[V] {
	out := make([]Constraint[V], len(s.constraints))
	copy(out, s.constraints)
	return out
}

// Drain removes and returns every resident constraint, leaving the System
// empty.
func (s *System[V]) Drain() []Constraint[V] {
	out := s.constraints
	s.constraints = nil
	s.idxMap = map[uint64]int{}
	s.references = map[V]map[int]struct{}{}
	s.toMinimise = newPendingSet()
	return out
}

// Insert adds constraint to the system, reporting whether it was already
// present (by content hash). A duplicate is a no-op.
func (s *System[V]) Insert(constraint Constraint[V]) bool {
	hash := constraint.Hash()
	if _, ok := s.idxMap[hash]; ok {
		return true
	}

	idx := len(s.constraints)
	for _, v := range constraint.Variables() {
		s.addRef(v, idx)
	}
	s.idxMap[hash] = idx
	s.constraints = append(s.constraints, constraint)
	s.toMinimise.push(idx)
	return false
}

// Remove deletes constraint from the system (matched by content hash),
// returning the removed constraint and whether it was present.
func (s *System[V]) Remove(constraint Constraint[V]) (Constraint[V], bool) {
	idx, ok := s.idxMap[constraint.Hash()]
	if !ok {
		return nil, false
	}
	return s.removeIdx(idx)
}

// QueueAll forces every resident constraint to be re-propagated on the next
// Minimise call. This is an escape hatch for callers that have mutated
// constraints outside the System's own API.
func (s *System[V]) QueueAll() *System[V] {
	s.toMinimise.queueAll(len(s.constraints))
	return s
}

func (s *System[V]) addRef(v V, idx int) {
	set, ok := s.references[v]
	if !ok {
		set = map[int]struct{}{}
		s.references[v] = set
	}
	set[idx] = struct{}{}
}

func (s *System[V]) removeRef(v V, idx int) {
	set, ok := s.references[v]
	if !ok {
		return
	}
	delete(set, idx)
	if len(set) == 0 {
		delete(s.references, v)
	}
}

// removeIdx vacates position idx using swap-remove: the last constraint
// takes idx's place, and references/idxMap/toMinimise are repaired so
// Invariant R (back-references correct and complete) holds afterward.
func (s *System[V]) removeIdx(idx int) (Constraint[V], bool) {
	n := len(s.constraints)
	if n == 0 {
		return nil, false
	}

	last := n - 1
	lastConstraint := s.constraints[last]
	for _, v := range lastConstraint.Variables() {
		s.removeRef(v, last)
	}

	removed := s.constraints[idx]
	delete(s.idxMap, removed.Hash())
	s.toMinimise.remove(idx)

	if idx == last {
		s.constraints = s.constraints[:last]
		return removed, true
	}

	for _, v := range s.constraints[idx].Variables() {
		s.removeRef(v, idx)
	}
	s.constraints[idx] = lastConstraint
	for _, v := range lastConstraint.Variables() {
		s.addRef(v, idx)
	}
	s.idxMap[lastConstraint.Hash()] = idx

	// The constraint that used to live at `last` now lives at `idx`; carry
	// forward its pending-propagation status to the new position rather
	// than leaving a stale, out-of-range entry in toMinimise.
	if s.toMinimise.contains(last) {
		s.toMinimise.remove(last)
		s.toMinimise.push(idx)
	} else {
		s.toMinimise.remove(last)
	}

	s.constraints = s.constraints[:last]
	return removed, true
}

// overlapsAt returns the positions (other than idx) of every constraint that
// shares at least one variable with constraints[idx], in ascending order.
func (s *System[V]) overlapsAt(idx int) []int {
	seen := map[int]struct{}{idx: {}}
	var out []int
	for _, v := range s.constraints[idx].Variables() {
		for j := range s.references[v] {
			if _, ok := seen[j]; ok {
				continue
			}
			seen[j] = struct{}{}
			out = append(out, j)
		}
	}
	sort.Ints(out)
	return out
}

// Minimise runs pairwise reduction across all overlapping constraints to a
// fixed point. It returns the receiver (for chaining) or the first conflict
// encountered, wrapped with positional context.
func (s *System[V]) Minimise() (*System[V], error) {
	for {
		idx, ok := s.toMinimise.popMin()
		if !ok {
			return s, nil
		}

		overlaps := s.overlapsAt(idx)
		s.log.WithFields(logrus.Fields{"position": idx, "overlaps": len(overlaps)}).Trace("minimise: processing position")

		// Withdraw the overlapping constraints from references so that
		// re-registration below reflects any shrunken variable sets.
		for _, j := range overlaps {
			for _, v := range s.constraints[j].Variables() {
				s.removeRef(v, j)
			}
		}

		constraint := s.constraints[idx]
		var reduced []int
		var conflict error
		for _, j := range overlaps {
			shrank, err := s.constraints[j].Reduce(constraint)
			if err != nil {
				conflict = errors.Wrapf(err, "minimise: reducing constraint at position %d against position %d", j, idx)
				break
			}
			if shrank {
				reduced = append(reduced, j)
			}
		}

		for _, j := range overlaps {
			for _, v := range s.constraints[j].Variables() {
				s.addRef(v, j)
			}
		}
		if conflict != nil {
			return s, conflict
		}

		for _, j := range reduced {
			s.toMinimise.push(j)
		}
	}
}

// PopSolution extracts the partial assignment for every currently-decided
// variable across all resident constraints, propagating first if needed.
// Constraints that become empty (no variables left) are swept away.
func (s *System[V]) PopSolution() (Assignment[V], error) {
	if !s.toMinimise.isEmpty() {
		if _, err := s.Minimise(); err != nil {
			return Assignment[V]{}, err
		}
	}

	solution := NewAssignment[V]()
	for idx := 0; idx < len(s.constraints); idx++ {
		constraint := s.constraints[idx]
		before := constraint.Variables()

		popped, ok := constraint.PopSolution()
		if !ok {
			continue
		}
		solution = solution.Union(popped)

		after := make(map[V]struct{}, len(before))
		for _, v := range constraint.Variables() {
			after[v] = struct{}{}
		}
		for _, v := range before {
			if _, stillThere := after[v]; !stillThere {
				s.removeRef(v, idx)
			}
		}
	}

	s.removeEmpty()
	return solution, nil
}

// removeEmpty deletes every constraint with no remaining variables.
func (s *System[V]) removeEmpty() {
	var idxs []int
	for idx, c := range s.constraints {
		if len(c.Variables()) == 0 {
			idxs = append(idxs, idx)
		}
	}
	if len(idxs) == 0 {
		return
	}
	if len(idxs) == len(s.constraints) {
		s.constraints = nil
		s.idxMap = map[uint64]int{}
		s.references = map[V]map[int]struct{}{}
		return
	}
	// Remove in descending order so earlier removals don't invalidate the
	// positions collected for later ones.
	for i := len(idxs) - 1; i >= 0; i-- {
		s.removeIdx(idxs[i])
	}
}

// bestConstraint asks heuristic to rank every resident constraint against
// its overlapping constraints, returning the position of the highest-ranked
// one.
func (s *System[V]) bestConstraint(heuristic Heuristic[V]) (int, bool) {
	bestIdx := -1
	var bestRank Rank
	for idx, c := range s.constraints {
		overlapIdxs := s.overlapsAt(idx)
		overlaps := make([]Constraint[V], len(overlapIdxs))
		for i, j := range overlapIdxs {
			overlaps[i] = s.constraints[j]
		}
		rank := heuristic.Rank(c, overlaps)
		if bestIdx == -1 || bestRank.Less(rank) {
			bestIdx, bestRank = idx, rank
		}
	}
	return bestIdx, bestIdx != -1
}

// Clone returns a deep, independent copy of the System: every resident
// constraint is cloned, and the index structures are copied rather than
// shared. Used by search to fork a branch per decomposition.
func (s *System[V]) Clone() *System[V] {
	clone := &System[V]{
		constraints: make([]Constraint[V], len(s.constraints)),
		idxMap:      make(map[uint64]int, len(s.idxMap)),
		references:  make(map[V]map[int]struct{}, len(s.references)),
		toMinimise:  s.toMinimise.clone(),
		log:         s.log,
	}
	for i, c := range s.constraints {
		clone.constraints[i] = c.Clone()
	}
	for hash, idx := range s.idxMap {
		clone.idxMap[hash] = idx
	}
	for v, set := range s.references {
		cloned := make(map[int]struct{}, len(set))
		for idx := range set {
			cloned[idx] = struct{}{}
		}
		clone.references[v] = cloned
	}
	return clone
}

// Solve returns a lazy iterator over every complete solution, using
// DefaultHeuristic to choose which constraint to branch on at each step.
func (s *System[V]) Solve() *Solutions[V] {
	return s.SolveWith(DefaultHeuristic[V]{})
}

// SolveWith is like Solve but lets the caller supply the branching
// heuristic.
func (s *System[V]) SolveWith(heuristic Heuristic[V]) *Solutions[V] {
	solution, err := s.PopSolution()
	if err != nil {
		s.log.WithError(err).Debug("solve: initial pop_solution found the system unsatisfiable")
		return &Solutions[V]{}
	}
	return &Solutions[V]{
		stack:     []searchFrame[V]{{system: s, partial: solution}},
		heuristic: heuristic,
		log:       s.log,
	}
}
