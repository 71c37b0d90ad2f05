package cellstate

import "fmt"

// Coord addresses a single cell on the unbounded plane. Y grows downwards.
type Coord struct {
	X, Y int
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

// Rect is a closed, axis-aligned rectangle: both corners are inside it.
type Rect struct {
	Left, Top, Right, Bottom int
}

// RectFromCorners returns the rectangle spanned by two opposite corners.
func RectFromCorners(a, b Coord) Rect {
	return Rect{
		Left:   min(a.X, b.X),
		Top:    min(a.Y, b.Y),
		Right:  max(a.X, b.X),
		Bottom: max(a.Y, b.Y),
	}
}

// Width returns the number of columns covered by the rectangle.
func (r Rect) Width() int { return r.Right - r.Left + 1 }

// Height returns the number of rows covered by the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// TopLeft returns the corner with the smallest coordinates.
func (r Rect) TopLeft() Coord { return Coord{X: r.Left, Y: r.Top} }

// Contains reports whether c lies inside the rectangle, edges included.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Left && c.X <= r.Right && c.Y >= r.Top && c.Y <= r.Bottom
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Offset translates the rectangle.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d..%d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}
