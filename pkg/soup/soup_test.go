package soup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unbounded-life/pkg/cellstate"
)

func TestRandomDeterministic(t *testing.T) {
	area := cellstate.Rect{Left: -8, Top: -4, Right: 23, Bottom: 11}
	a := Random(42, area, 0.4)
	b := Random(42, area, 0.4)
	assert.True(t, a.Equal(b), "same seed must produce the same soup")
	assert.False(t, a.Equal(Random(43, area, 0.4)), "different seeds should differ")

	box, ok := a.BoundingBox()
	assert.True(t, ok)
	assert.True(t, area.Contains(box.TopLeft()))
	assert.True(t, area.Contains(cellstate.Coord{X: box.Right, Y: box.Bottom}))
}

func TestRandomDensityBounds(t *testing.T) {
	area := cellstate.Rect{Right: 9, Bottom: 9}
	assert.True(t, Random(1, area, 0).IsEmpty())
	assert.Equal(t, 100, Random(1, area, 1).Len())
}

func TestCentered(t *testing.T) {
	s := Centered(7, 4, 1)
	assert.Equal(t, 16, s.Len())
	box, _ := s.BoundingBox()
	assert.Equal(t, cellstate.Rect{Left: -2, Top: -2, Right: 1, Bottom: 1}, box)
	assert.True(t, Centered(7, 0, 1).IsEmpty())
}
