// Command minesweeper solves a small fixed board of minesweeper clues using
// the mines constraint family, printing every assignment of safe/mine tiles
// consistent with the revealed counts.
package main

import (
	"fmt"
	"sort"

	"github.com/danhawkins/constraint-engine-go/pkg/csp"
	"github.com/danhawkins/constraint-engine-go/pkg/mines"
)

// Tile indexes a 3x3 board of hidden cells, numbered left-to-right,
// top-to-bottom:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Tile int

func main() {
	constraints := []csp.Constraint[Tile]{
		// the "2" clue touches tiles 0, 1, 3
		mines.New([]Tile{0, 1, 3}, 2),
		// the "1" clue touches tiles 1, 2
		mines.New([]Tile{1, 2}, 1),
		// the "1" clue touches tiles 3, 6
		mines.New([]Tile{3, 6}, 1),
	}

	system := csp.New(constraints...)

	solutions := system.Solve().All()
	if len(solutions) == 0 {
		fmt.Println("no assignment of mines satisfies every clue")
		return
	}

	for i, solution := range solutions {
		fmt.Printf("Solution %d:\n", i+1)
		var tiles []Tile
		for _, t := range solution.Variables() {
			tiles = append(tiles, t)
		}
		sort.Slice(tiles, func(a, b int) bool { return tiles[a] < tiles[b] })
		for _, t := range tiles {
			isMine, _ := csp.Get[Tile, bool](solution, t)
			status := "safe"
			if isMine {
				status = "mine"
			}
			fmt.Printf("  tile %d: %s\n", t, status)
		}
	}
}
