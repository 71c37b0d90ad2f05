// Package cellstate holds the immutable set of live cells that every engine
// consumes and produces.
package cellstate

import (
	"iter"
	"slices"
	"sort"
	"strings"
)

// CellState is an immutable set of live cells on the unbounded plane. The zero
// value is the empty state.
type CellState struct {
	// cells is sorted row-major and free of duplicates.
	cells  []Coord
	set    map[Coord]struct{}
	bounds Rect
}

// Empty returns the state with no live cells.
func Empty() CellState { return CellState{} }

// New builds a state from the given coordinates. Duplicates are collapsed.
func New(coords ...Coord) CellState {
	if len(coords) == 0 {
		return CellState{}
	}
	set := make(map[Coord]struct{}, len(coords))
	for _, c := range coords {
		set[c] = struct{}{}
	}
	return fromOwnedSet(set)
}

// FromSet builds a state from a coordinate set. The set is copied.
func FromSet(set map[Coord]struct{}) CellState {
	if len(set) == 0 {
		return CellState{}
	}
	owned := make(map[Coord]struct{}, len(set))
	for c := range set {
		owned[c] = struct{}{}
	}
	return fromOwnedSet(owned)
}

// FromSeq builds a state from a sequence of coordinates.
func FromSeq(seq iter.Seq[Coord]) CellState {
	set := make(map[Coord]struct{})
	for c := range seq {
		set[c] = struct{}{}
	}
	if len(set) == 0 {
		return CellState{}
	}
	return fromOwnedSet(set)
}

// fromOwnedSet takes ownership of set; callers must not retain it.
func fromOwnedSet(set map[Coord]struct{}) CellState {
	if len(set) == 0 {
		return CellState{}
	}
	cells := make([]Coord, 0, len(set))
	for c := range set {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, compareRowMajor)
	return CellState{cells: cells, set: set, bounds: boundsOf(cells)}
}

func compareRowMajor(a, b Coord) int {
	if a.Y != b.Y {
		if a.Y < b.Y {
			return -1
		}
		return 1
	}
	switch {
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	}
	return 0
}

func boundsOf(sorted []Coord) Rect {
	r := Rect{
		Left:   sorted[0].X,
		Top:    sorted[0].Y,
		Right:  sorted[0].X,
		Bottom: sorted[len(sorted)-1].Y,
	}
	for _, c := range sorted[1:] {
		r.Left = min(r.Left, c.X)
		r.Right = max(r.Right, c.X)
	}
	return r
}

// Len returns the number of live cells.
func (s CellState) Len() int { return len(s.cells) }

// IsEmpty reports whether no cell is alive.
func (s CellState) IsEmpty() bool { return len(s.cells) == 0 }

// BoundingBox returns the tightest rectangle containing every live cell. The
// second result is false for the empty state.
func (s CellState) BoundingBox() (Rect, bool) {
	if len(s.cells) == 0 {
		return Rect{}, false
	}
	return s.bounds, true
}

// Contains reports whether the cell at c is alive.
func (s CellState) Contains(c Coord) bool {
	_, ok := s.set[c]
	return ok
}

// Cells yields every live cell in row-major order.
func (s CellState) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for _, c := range s.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// AliveCellsInWindow yields the live cells inside the closed rectangle window,
// in row-major order.
func (s CellState) AliveCellsInWindow(window Rect) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		if window.Right < window.Left || window.Bottom < window.Top {
			return
		}
		start := sort.Search(len(s.cells), func(i int) bool {
			return compareRowMajor(s.cells[i], Coord{X: window.Left, Y: window.Top}) >= 0
		})
		for _, c := range s.cells[start:] {
			if c.Y > window.Bottom {
				return
			}
			if c.X < window.Left || c.X > window.Right {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Union returns the state alive wherever s or o is alive.
func (s CellState) Union(o CellState) CellState {
	if o.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return o
	}
	set := make(map[Coord]struct{}, len(s.cells)+len(o.cells))
	for _, c := range s.cells {
		set[c] = struct{}{}
	}
	for _, c := range o.cells {
		set[c] = struct{}{}
	}
	return fromOwnedSet(set)
}

// OffsetBy translates every live cell by (dx, dy).
func (s CellState) OffsetBy(dx, dy int) CellState {
	if s.IsEmpty() || (dx == 0 && dy == 0) {
		return s
	}
	d := Coord{X: dx, Y: dy}
	cells := make([]Coord, len(s.cells))
	set := make(map[Coord]struct{}, len(s.cells))
	for i, c := range s.cells {
		moved := c.Add(d)
		cells[i] = moved
		set[moved] = struct{}{}
	}
	// Translation preserves row-major order.
	return CellState{cells: cells, set: set, bounds: s.bounds.Offset(dx, dy)}
}

// Equal reports whether both states have exactly the same live cells.
func (s CellState) Equal(o CellState) bool {
	return slices.Equal(s.cells, o.cells)
}

// String renders the bounding box with 'O' for live and '.' for dead cells.
func (s CellState) String() string {
	if s.IsEmpty() {
		return "<empty>"
	}
	var b strings.Builder
	r := s.bounds
	for y := r.Top; y <= r.Bottom; y++ {
		for x := r.Left; x <= r.Right; x++ {
			if s.Contains(Coord{X: x, Y: y}) {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		if y != r.Bottom {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
