package core

import "unbounded-life/pkg/cellstate"

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[g.Index(x, y)] }

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	clear(g.data)
}

// Viewport is a window onto the unbounded plane, centred on Center.
type Viewport struct {
	Center cellstate.Coord
	W, H   int
}

// Window returns the closed rectangle of plane coordinates the viewport shows.
func (v Viewport) Window() cellstate.Rect {
	left, top := v.Center.X-v.W/2, v.Center.Y-v.H/2
	return cellstate.Rect{Left: left, Top: top, Right: left + v.W - 1, Bottom: top + v.H - 1}
}

// Pan moves the viewport by (dx, dy) cells.
func (v *Viewport) Pan(dx, dy int) {
	v.Center = v.Center.Add(cellstate.Coord{X: dx, Y: dy})
}

// Rasterize writes 1 into g for each live cell of state inside the viewport
// and 0 elsewhere. g must be at least v.W by v.H.
func (v Viewport) Rasterize(state cellstate.CellState, g *ByteGrid) {
	g.Clear()
	window := v.Window()
	for c := range state.AliveCellsInWindow(window) {
		g.data[g.Index(c.X-window.Left, c.Y-window.Top)] = 1
	}
}
