// Command mapcoloring colors the provinces and territories of Canada so
// that no two that share a border receive the same color, using the
// tabular constraint family to enumerate each border's allowed color pairs.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/danhawkins/constraint-engine-go/pkg/csp"
	"github.com/danhawkins/constraint-engine-go/pkg/tabular"
)

type Province string
type Color string

var (
	Regions = []Province{
		"Yukon",
		"British Columbia",
		"Northwest Territories",
		"Nunavut",
		"Alberta",
		"Saskatchewan",
		"Manitoba",
		"Ontario",
		"Quebec",
		"Newfoundland and Labrador",
		"New Brunswick",
		"Nova Scotia",
		"Prince Edward Island",
	}

	Colors = []Color{"Red", "Yellow", "Blue", "Green"}

	Borders = [][2]Province{
		{"Yukon", "British Columbia"},
		{"Yukon", "Northwest Territories"},
		{"British Columbia", "Alberta"},
		{"British Columbia", "Northwest Territories"},
		{"Northwest Territories", "Alberta"},
		{"Alberta", "Saskatchewan"},
		{"Saskatchewan", "Northwest Territories"},
		{"Nunavut", "Northwest Territories"},
		{"Saskatchewan", "Manitoba"},
		{"Manitoba", "Nunavut"},
		{"Manitoba", "Ontario"},
		{"Ontario", "Quebec"},
		{"Newfoundland and Labrador", "Quebec"},
		{"Newfoundland and Labrador", "Prince Edward Island"},
		{"Newfoundland and Labrador", "New Brunswick"},
		{"Newfoundland and Labrador", "Nova Scotia"},
		{"New Brunswick", "Quebec"},
		{"Nova Scotia", "New Brunswick"},
		{"Prince Edward Island", "New Brunswick"},
		{"Nova Scotia", "Prince Edward Island"},
	}
)

// notEqualRows enumerates every (c1, c2) pair of distinct colors, the
// admissible tuple set for a "these two provinces differ" border.
func notEqualRows() [][]Color {
	rows := make([][]Color, 0, len(Colors)*(len(Colors)-1))
	for _, c1 := range Colors {
		for _, c2 := range Colors {
			if c1 != c2 {
				rows = append(rows, []Color{c1, c2})
			}
		}
	}
	return rows
}

func newBorder(a, b Province) csp.Constraint[Province] {
	return tabular.New([]Province{a, b}, notEqualRows()...)
}

func main() {
	log := logrus.NewEntry(logrus.StandardLogger())

	constraints := make([]csp.Constraint[Province], 0, len(Borders))
	for _, border := range Borders {
		constraints = append(constraints, newBorder(border[0], border[1]))
	}

	system := csp.New(constraints...).WithLogger(log)

	solution, ok := system.Solve().Next()
	if !ok {
		fmt.Fprintln(os.Stderr, "no coloring satisfies every border")
		os.Exit(1)
	}

	for _, region := range Regions {
		color, _ := csp.Get[Province, Color](solution, region)
		fmt.Printf("%s => %s\n", region, color)
	}
}
