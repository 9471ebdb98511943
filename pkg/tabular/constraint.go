// Package tabular implements a generic constraint family backed by an
// explicit enumeration of allowed tuples: the most flexible possible
// constraint shape, at the cost of storing every satisfying assignment
// directly.
package tabular

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danhawkins/constraint-engine-go/pkg/csp"
)

// ErrConflict is returned by Reduce when two tabular constraints share no
// common tuple - the family's sole conflict payload. Richer diagnostics
// (which rows were eliminated and why) are a noted future improvement.
var ErrConflict = errors.New("tabular: no tuple satisfies both constraints")

// Constraint represents "the variables in Variables() may only take on one
// of the tuples in this set" by storing the tuple set explicitly. V is the
// variable type, T the (comparable) value type shared by every column.
type Constraint[V comparable, T comparable] struct {
	variables []V
	// rows is keyed by a stable string encoding of the tuple, so that
	// identical tuples collapse into a single entry regardless of how many
	// times they were supplied at construction.
	rows map[string][]T
}

// New builds a Constraint over variables, with one admissible tuple per
// entry in rows. Every row must have exactly len(variables) values, in the
// same order as variables - mismatched row lengths are a programmer error
// and panic, mirroring the family's construction precondition.
func New[V comparable, T comparable](variables []V, rows ...[]T) *Constraint[V, T] {
	c := &Constraint[V, T]{
		variables: append([]V(nil), variables...),
		rows:      make(map[string][]T, len(rows)),
	}
	for _, row := range rows {
		c.insertRow(row)
	}
	return c
}

func (c *Constraint[V, T]) insertRow(row []T) {
	if len(row) != len(c.variables) {
		panic(fmt.Sprintf(
			"tabular: row has %d values but constraint has %d variables; "+
				"help: every row must assign exactly the constructed variable list", len(row), len(c.variables)))
	}
	c.rows[rowKey(row)] = append([]T(nil), row...)
}

func rowKey[T comparable](row []T) string {
	var b strings.Builder
	for _, v := range row {
		fmt.Fprintf(&b, "%v\x1f", v)
	}
	return b.String()
}

// Size returns the number of distinct admissible tuples.
func (c *Constraint[V, T]) Size() int {
	return len(c.rows)
}

// Variables returns the ordered variable list this constraint was built
// with.
func (c *Constraint[V, T]) Variables() []V {
	return append([]V(nil), c.variables...)
}

// Decompositions returns one single-tuple constraint per admissible row.
func (c *Constraint[V, T]) Decompositions() []csp.Constraint[V] {
	out := make([]csp.Constraint[V], 0, len(c.rows))
	for _, row := range c.rows {
		out = append(out, &Constraint[V, T]{
			variables: c.Variables(),
			rows:      map[string][]T{rowKey(row): append([]T(nil), row...)},
		})
	}
	return out
}

// Reduce removes every row of c inconsistent with other at their shared
// variables, failing with ErrConflict if no row of c survives.
func (c *Constraint[V, T]) Reduce(other csp.Constraint[V]) (bool, error) {
	o, ok := other.(*Constraint[V, T])
	if !ok {
		return false, fmt.Errorf("tabular: cannot reduce against %T", other)
	}

	// otherIdx maps each of o's variables to its position in o.variables;
	// shared pairs c's position with o's position for each shared variable.
	otherIdx := make(map[V]int, len(o.variables))
	for i, v := range o.variables {
		otherIdx[v] = i
	}
	type pair = struct{ self, other int }
	var shared []pair
	for i, v := range c.variables {
		if j, ok := otherIdx[v]; ok {
			shared = append(shared, pair{i, j})
		}
	}

	before := len(c.rows)
	for key, row := range c.rows {
		if !supportedBy(row, shared, o.rows) {
			delete(c.rows, key)
		}
	}

	if len(c.rows) == 0 {
		return false, ErrConflict
	}
	return len(c.rows) < before, nil
}

func supportedBy[T comparable](row []T, shared []struct{ self, other int }, otherRows map[string][]T) bool {
	for _, candidate := range otherRows {
		agrees := true
		for _, idx := range shared {
			if row[idx.self] != candidate[idx.other] {
				agrees = false
				break
			}
		}
		if agrees {
			return true
		}
	}
	return false
}

// PopSolution extracts every column whose value is identical across all
// remaining rows, removing those columns (and the now-redundant rows they
// collapse) from c.
func (c *Constraint[V, T]) PopSolution() (csp.Assignment[V], bool) {
	idxs := c.commonIdxs()
	if len(idxs) == 0 {
		return csp.Assignment[V]{}, false
	}

	solution := csp.NewAssignment[V]()
	var anyRow []T
	for _, row := range c.rows {
		anyRow = row
		break
	}
	for _, idx := range idxs {
		solution = solution.With(c.variables[idx], anyRow[idx])
	}

	isPopped := make(map[int]struct{}, len(idxs))
	for _, idx := range idxs {
		isPopped[idx] = struct{}{}
	}

	newVariables := make([]V, 0, len(c.variables)-len(idxs))
	for i, v := range c.variables {
		if _, ok := isPopped[i]; !ok {
			newVariables = append(newVariables, v)
		}
	}

	newRows := make(map[string][]T, len(c.rows))
	for _, row := range c.rows {
		remainder := make([]T, 0, len(newVariables))
		for i, v := range row {
			if _, ok := isPopped[i]; !ok {
				remainder = append(remainder, v)
			}
		}
		newRows[rowKey(remainder)] = remainder
	}

	c.variables = newVariables
	c.rows = newRows
	return solution, true
}

// commonIdxs returns the column positions whose value agrees across every
// remaining row.
func (c *Constraint[V, T]) commonIdxs() []int {
	if len(c.rows) == 0 {
		return nil
	}
	var reference []T
	var candidates []int
	first := true
	for _, row := range c.rows {
		if first {
			reference = row
			candidates = make([]int, len(row))
			for i := range row {
				candidates[i] = i
			}
			first = false
			continue
		}
		kept := candidates[:0]
		for _, idx := range candidates {
			if row[idx] == reference[idx] {
				kept = append(kept, idx)
			}
		}
		candidates = kept
	}
	return candidates
}

// Hash returns a content hash order-independent over the row set but
// sensitive to variable order, matching Hash's contract.
func (c *Constraint[V, T]) Hash() uint64 {
	varHashes := make([]uint64, len(c.variables))
	for i, v := range c.variables {
		varHashes[i] = csp.HashValue(v)
	}

	rowHashes := make([]uint64, 0, len(c.rows))
	for _, row := range c.rows {
		valHashes := make([]uint64, len(row))
		for i, v := range row {
			valHashes[i] = csp.HashValue(v)
		}
		rowHashes = append(rowHashes, csp.HashOrdered(valHashes...))
	}

	return csp.HashOrdered(
		csp.HashOrdered(varHashes...),
		csp.HashUnordered(rowHashes...),
	)
}

// Clone returns a deep, independent copy.
func (c *Constraint[V, T]) Clone() csp.Constraint[V] {
	rows := make(map[string][]T, len(c.rows))
	for key, row := range c.rows {
		rows[key] = append([]T(nil), row...)
	}
	return &Constraint[V, T]{
		variables: append([]V(nil), c.variables...),
		rows:      rows,
	}
}
