// Command nqueens places N non-attacking queens on an NxN board, modeling
// each pair of rows as a tabular constraint over the admissible column
// pairs: a binary decomposition of the classic N-queens puzzle.
package main

import (
	"fmt"
	"os"

	"github.com/danhawkins/constraint-engine-go/pkg/csp"
	"github.com/danhawkins/constraint-engine-go/pkg/tabular"
)

const Size = 8

type Row int

// nonAttackingRows enumerates every (colI, colJ) pair that does not put the
// queens in row i and row j on the same column or shared diagonal.
func nonAttackingRows(rowI, rowJ, n int) [][]int {
	rows := make([][]int, 0, n*n)
	for colI := 1; colI <= n; colI++ {
		for colJ := 1; colJ <= n; colJ++ {
			if colI == colJ {
				continue
			}
			if abs(colI-colJ) == abs(rowI-rowJ) {
				continue
			}
			rows = append(rows, []int{colI, colJ})
		}
	}
	return rows
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func main() {
	var constraints []csp.Constraint[Row]
	for i := 1; i <= Size; i++ {
		for j := i + 1; j <= Size; j++ {
			constraints = append(constraints, tabular.New([]Row{Row(i), Row(j)}, nonAttackingRows(i, j, Size)...))
		}
	}

	system := csp.New(constraints...)

	solution, ok := system.Solve().Next()
	if !ok {
		fmt.Fprintln(os.Stderr, "no placement of", Size, "non-attacking queens exists")
		os.Exit(1)
	}

	fmt.Println("Solution:")
	for row := Row(1); row <= Size; row++ {
		col, _ := csp.Get[Row, int](solution, row)
		fmt.Printf("QUEEN: Row %d, Column %d\n", row, col)
	}
}
