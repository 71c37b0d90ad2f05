// Package soup generates deterministic random patterns.
package soup

import (
	"math/rand/v2"

	"unbounded-life/pkg/cellstate"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Random fills area with live cells at the given density. The same seed,
// area and density always produce the same state.
func Random(seed int64, area cellstate.Rect, density float64) cellstate.CellState {
	r := newRand(seed)
	set := make(map[cellstate.Coord]struct{})
	for y := area.Top; y <= area.Bottom; y++ {
		for x := area.Left; x <= area.Right; x++ {
			if r.Float64() < density {
				set[cellstate.Coord{X: x, Y: y}] = struct{}{}
			}
		}
	}
	return cellstate.FromSet(set)
}

// Centered returns a size x size soup around the origin.
func Centered(seed int64, size int, density float64) cellstate.CellState {
	if size <= 0 {
		return cellstate.Empty()
	}
	half := size / 2
	return Random(seed, cellstate.Rect{Left: -half, Top: -half, Right: size - half - 1, Bottom: size - half - 1}, density)
}
