package csp

import "github.com/sirupsen/logrus"

// searchFrame is one entry on the backtracking stack: a System still to be
// resolved, paired with the partial assignment accumulated to reach it.
type searchFrame[V comparable] struct {
	system  *System[V]
	partial Assignment[V]
}

// Solutions is a pull-based, lazy iterator over the complete solutions to a
// System, produced by Solve/SolveWith. It drives an explicit depth-first
// backtracking search: no work happens between calls to Next.
//
// A Solutions value owns the System clones pushed onto its stack; they are
// released to the garbage collector once the iterator itself is no longer
// referenced, or eagerly via Close.
type Solutions[V comparable] struct {
	stack     []searchFrame[V]
	heuristic Heuristic[V]
	log       *logrus.Entry
}

// Next advances the search and returns the next complete solution, or false
// once every branch has been explored.
func (it *Solutions[V]) Next() (Assignment[V], bool) {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if top.system.IsEmpty() {
			return top.partial, true
		}

		bestIdx, ok := top.system.bestConstraint(it.heuristic)
		if !ok {
			// bestConstraint only reports false for a System with no
			// constraints, which the IsEmpty check above has already
			// handled; if it ever did here, the frame is dropped silently.
			continue
		}
		best := top.system.constraints[bestIdx]

		decompositions := best.Decompositions()
		it.log.WithFields(logrus.Fields{
			"position":        bestIdx,
			"decompositions":  len(decompositions),
			"remaining_stack": len(it.stack),
		}).Trace("search: branching on constraint")

		for _, decomposition := range decompositions {
			branch := top.system.Clone()
			branch.Insert(decomposition)

			solution, err := branch.PopSolution()
			if err != nil {
				// This decomposition is inconsistent with the rest of the
				// System; prune the branch and move on to the next one.
				continue
			}
			it.stack = append(it.stack, searchFrame[V]{
				system:  branch,
				partial: top.partial.Union(solution),
			})
		}
	}

	return Assignment[V]{}, false
}

// All drains the iterator, materializing every remaining solution. Prefer
// Next for large search spaces where the full solution set may not fit in
// memory.
func (it *Solutions[V]) All() []Assignment[V] {
	var out []Assignment[V]
	for {
		solution, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, solution)
	}
}

// Close releases the backtracking stack immediately rather than waiting for
// the garbage collector, so callers that want deterministic cancellation of
// an in-progress search have an explicit hook.
func (it *Solutions[V]) Close() {
	it.stack = nil
}
