// Package patterns is a small library of well-known Life oscillators and
// spaceships.
package patterns

import (
	"fmt"
	"sort"
	"strings"

	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/pattern"
)

// Category distinguishes patterns that stay in place from those that move.
type Category string

const (
	Oscillator Category = "oscillator"
	Spaceship  Category = "spaceship"
)

// Pattern is a named starting state with its known behaviour under B3/S23.
// After Period generations an oscillator returns to State and a spaceship
// returns to State shifted by Displacement.
type Pattern struct {
	Name         string
	Category     Category
	Period       int
	Displacement cellstate.Coord
	Width        int
	Height       int
	State        cellstate.CellState
}

var library = map[string]Pattern{}

func define(name string, cat Category, period int, disp cellstate.Coord, rows ...string) {
	res := pattern.Parse(strings.Join(rows, "\n"))
	if err := res.Err(); err != nil {
		panic(fmt.Sprintf("patterns: %s: %v", name, err))
	}
	box, _ := res.State.BoundingBox()
	library[name] = Pattern{
		Name:         name,
		Category:     cat,
		Period:       period,
		Displacement: disp,
		Width:        box.Width(),
		Height:       box.Height(),
		State:        res.State,
	}
}

func init() {
	define("blinker", Oscillator, 2, cellstate.Coord{}, "OOO")
	define("toad", Oscillator, 2, cellstate.Coord{},
		".OOO",
		"OOO.")
	define("beacon", Oscillator, 2, cellstate.Coord{},
		"OO..",
		"OO..",
		"..OO",
		"..OO")
	define("clock", Oscillator, 2, cellstate.Coord{},
		"..O.",
		"O.O.",
		".O.O",
		".O..")
	define("pulsar", Oscillator, 3, cellstate.Coord{},
		"..OOO...OOO..",
		".............",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		"..OOO...OOO..",
		".............",
		"..OOO...OOO..",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		".............",
		"..OOO...OOO..")
	define("pentadecathlon", Oscillator, 15, cellstate.Coord{},
		"..O....O..",
		"OO.OOOO.OO",
		"..O....O..")
	define("glider", Spaceship, 4, cellstate.Coord{X: 1, Y: 1},
		".O.",
		"..O",
		"OOO")
	define("lwss", Spaceship, 4, cellstate.Coord{X: -2},
		".O..O",
		"O....",
		"O...O",
		"OOOO.")
}

// Lookup returns the pattern with the given name.
func Lookup(name string) (Pattern, bool) {
	p, ok := library[strings.ToLower(name)]
	return p, ok
}

// Names returns every pattern name in sorted order.
func Names() []string {
	names := make([]string, 0, len(library))
	for n := range library {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns every pattern, sorted by name.
func All() []Pattern {
	out := make([]Pattern, 0, len(library))
	for _, n := range Names() {
		out = append(out, library[n])
	}
	return out
}

// At returns the pattern's state translated so its top-left corner is at.
func (p Pattern) At(at cellstate.Coord) cellstate.CellState {
	return p.State.OffsetBy(at.X, at.Y)
}
