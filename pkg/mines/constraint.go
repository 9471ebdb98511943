// Package mines implements a constraint family for minesweeper-style
// counting puzzles: "exactly count of these tiles are mines", without
// enumerating which ones.
package mines

import (
	"errors"
	"fmt"

	"github.com/danhawkins/constraint-engine-go/pkg/csp"
)

// ErrConflict is returned by Reduce when two mine constraints require a
// negative or over-capacity mine count.
var ErrConflict = errors.New("mines: constraints require an impossible mine count")

// Constraint represents "exactly Count of Tiles are mines" without
// committing to which ones. A Constraint over zero tiles is vacuous (an
// already-solved count of 0 mines among 0 tiles).
type Constraint[V comparable] struct {
	tiles map[V]struct{}
	count int
}

// New builds a Constraint asserting that exactly count of tiles are mines.
// Duplicate tiles collapse. count must not exceed len(tiles) - violating
// this is a programmer error and panics.
func New[V comparable](tiles []V, count int) *Constraint[V] {
	set := make(map[V]struct{}, len(tiles))
	for _, t := range tiles {
		set[t] = struct{}{}
	}
	if count > len(set) {
		panic(fmt.Sprintf("mines: count %d exceeds %d distinct tiles", count, len(set)))
	}
	return &Constraint[V]{tiles: set, count: count}
}

// Size returns the number of distinct ways to choose count mines among the
// resident tiles.
func (c *Constraint[V]) Size() int {
	return choose(len(c.tiles), c.count)
}

// Variables returns the tiles this constraint still covers.
func (c *Constraint[V]) Variables() []V {
	out := make([]V, 0, len(c.tiles))
	for t := range c.tiles {
		out = append(out, t)
	}
	return out
}

// Decompositions returns, for each tile, the single-tile constraints
// consistent with this one: "tile is a mine" when count > 0, and "tile is
// safe" when count < len(tiles).
func (c *Constraint[V]) Decompositions() []csp.Constraint[V] {
	out := make([]csp.Constraint[V], 0, 2*len(c.tiles))
	for t := range c.tiles {
		if c.count > 0 {
			out = append(out, &Constraint[V]{tiles: map[V]struct{}{t: {}}, count: 1})
		}
		if c.count < len(c.tiles) {
			out = append(out, &Constraint[V]{tiles: map[V]struct{}{t: {}}, count: 0})
		}
	}
	return out
}

// Reduce narrows c using whatever other already knows about the tiles they
// share: all-safe, all-mine, or a partial subset count.
func (c *Constraint[V]) Reduce(other csp.Constraint[V]) (bool, error) {
	o, ok := other.(*Constraint[V])
	if !ok {
		return false, fmt.Errorf("mines: cannot reduce against %T", other)
	}

	difference := make(map[V]struct{}, len(c.tiles))
	for t := range c.tiles {
		if _, shared := o.tiles[t]; !shared {
			difference[t] = struct{}{}
		}
	}

	// 1. other says every one of its tiles is safe.
	if o.count == 0 {
		if len(difference) < c.count {
			return false, ErrConflict
		}
		c.tiles = difference
		return true, nil
	}

	// 2. other says every one of its tiles is a mine.
	if o.count == len(o.tiles) {
		overlap := 0
		for t := range o.tiles {
			if _, shared := c.tiles[t]; shared {
				overlap++
			}
		}
		if c.count < overlap {
			return false, ErrConflict
		}
		c.count -= overlap
		c.tiles = difference
		return true, nil
	}

	// 3. other's tiles are a subset of ours (possibly all of them), with its
	// own known count.
	if isSubset(o.tiles, c.tiles) {
		if c.count < o.count || len(difference) < c.count-o.count {
			return false, ErrConflict
		}
		c.count -= o.count
		c.tiles = difference
		return true, nil
	}

	return false, nil
}

func isSubset[V comparable](sub, super map[V]struct{}) bool {
	for t := range sub {
		if _, ok := super[t]; !ok {
			return false
		}
	}
	return true
}

// PopSolution resolves c if every tile's status is forced: all safe (count
// == 0) or all mines (count == len(tiles)).
func (c *Constraint[V]) PopSolution() (csp.Assignment[V], bool) {
	if c.count == 0 {
		solution := csp.NewAssignment[V]()
		for t := range c.tiles {
			solution = solution.With(t, false)
		}
		c.tiles = map[V]struct{}{}
		return solution, true
	}

	if c.count == len(c.tiles) {
		solution := csp.NewAssignment[V]()
		for t := range c.tiles {
			solution = solution.With(t, true)
		}
		c.tiles = map[V]struct{}{}
		c.count = 0
		return solution, true
	}

	return csp.Assignment[V]{}, false
}

// Hash returns a content hash order-independent over the tile set.
func (c *Constraint[V]) Hash() uint64 {
	tileHashes := make([]uint64, 0, len(c.tiles))
	for t := range c.tiles {
		tileHashes = append(tileHashes, csp.HashValue(t))
	}
	return csp.HashOrdered(csp.HashUnordered(tileHashes...), csp.HashValue(c.count))
}

// Clone returns a deep, independent copy.
func (c *Constraint[V]) Clone() csp.Constraint[V] {
	tiles := make(map[V]struct{}, len(c.tiles))
	for t := range c.tiles {
		tiles[t] = struct{}{}
	}
	return &Constraint[V]{tiles: tiles, count: c.count}
}
