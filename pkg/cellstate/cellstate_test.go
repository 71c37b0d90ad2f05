package cellstate

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glider() CellState {
	return New(Coord{1, 0}, Coord{2, 1}, Coord{0, 2}, Coord{1, 2}, Coord{2, 2})
}

func TestNewCollapsesDuplicates(t *testing.T) {
	s := New(Coord{0, 0}, Coord{0, 0}, Coord{3, -1})
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(Coord{3, -1}))
	assert.False(t, s.Contains(Coord{1, 1}))
}

func TestBoundingBoxIsTight(t *testing.T) {
	_, ok := Empty().BoundingBox()
	assert.False(t, ok, "empty state has no bounding box")

	box, ok := New(Coord{-2, 5}, Coord{4, 1}, Coord{0, 3}).BoundingBox()
	require.True(t, ok)
	assert.Equal(t, Rect{Left: -2, Top: 1, Right: 4, Bottom: 5}, box)
	assert.Equal(t, 7, box.Width())
	assert.Equal(t, 5, box.Height())
}

func TestEqualityIgnoresConstructionOrder(t *testing.T) {
	a := New(Coord{1, 1}, Coord{0, 0}, Coord{2, 0})
	b := FromSet(map[Coord]struct{}{{2, 0}: {}, {1, 1}: {}, {0, 0}: {}})
	assert.True(t, a.Equal(b))
	assert.True(t, Empty().Equal(New()))
	assert.False(t, a.Equal(a.OffsetBy(1, 0)), "translation is not identity")
}

func TestUnionLaws(t *testing.T) {
	a := glider()
	b := New(Coord{10, 10}, Coord{1, 0}, Coord{-3, 4})
	c := New(Coord{7, 7})

	assert.True(t, a.Union(a).Equal(a), "union is idempotent")
	assert.True(t, a.Union(b).Equal(b.Union(a)), "union is commutative")
	assert.True(t, a.Union(b).Union(c).Equal(a.Union(b.Union(c))), "union is associative")
	assert.True(t, a.Union(Empty()).Equal(a))

	sub := New(Coord{1, 0}, Coord{2, 2})
	assert.True(t, a.Union(sub).Equal(a), "union with a subset is a no-op")
	assert.Equal(t, 7, a.Union(b).Len())
}

func TestOffsetByGroupLaw(t *testing.T) {
	s := glider()
	assert.True(t, s.OffsetBy(0, 0).Equal(s))
	assert.True(t, s.OffsetBy(3, -2).OffsetBy(-7, 11).Equal(s.OffsetBy(-4, 9)))
	assert.True(t, s.OffsetBy(5, 5).OffsetBy(-5, -5).Equal(s))

	box, _ := s.OffsetBy(10, -20).BoundingBox()
	assert.Equal(t, Rect{Left: 10, Top: -20, Right: 12, Bottom: -18}, box)
	assert.True(t, s.OffsetBy(10, -20).Contains(Coord{11, -20}))
}

func TestAliveCellsInWindow(t *testing.T) {
	s := glider().Union(New(Coord{100, 1}, Coord{-5, 1}))

	got := slices.Collect(s.AliveCellsInWindow(Rect{Left: 0, Top: 1, Right: 2, Bottom: 2}))
	assert.Equal(t, []Coord{{2, 1}, {0, 2}, {1, 2}, {2, 2}}, got)

	again := slices.Collect(s.AliveCellsInWindow(Rect{Left: 0, Top: 1, Right: 2, Bottom: 2}))
	assert.Equal(t, got, again, "sequence is restartable and deterministic")

	assert.Empty(t, slices.Collect(s.AliveCellsInWindow(Rect{Left: 20, Top: 20, Right: 30, Bottom: 30})))
	assert.Empty(t, slices.Collect(s.AliveCellsInWindow(Rect{Left: 2, Top: 0, Right: 1, Bottom: 5})))

	all := slices.Collect(s.AliveCellsInWindow(Rect{Left: -10, Top: -10, Right: 200, Bottom: 10}))
	assert.Equal(t, slices.Collect(s.Cells()), all)
}

func TestAliveCellsInWindowStopsEarly(t *testing.T) {
	s := glider()
	n := 0
	for range s.AliveCellsInWindow(Rect{Left: -1, Top: -1, Right: 3, Bottom: 3}) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestString(t *testing.T) {
	assert.Equal(t, ".O.\n..O\nOOO", glider().String())
	assert.Equal(t, "<empty>", Empty().String())
}

func TestMutableSnapshotDoesNotAlias(t *testing.T) {
	m := NewMutable(glider())
	m.SetDead(Coord{1, 0})
	m.SetAlive(Coord{5, 5})
	snap := m.Snapshot()

	assert.True(t, m.Toggle(Coord{9, 9}))
	assert.False(t, m.Toggle(Coord{5, 5}))

	assert.Equal(t, 5, snap.Len())
	assert.True(t, snap.Contains(Coord{5, 5}))
	assert.False(t, snap.Contains(Coord{9, 9}))
	assert.False(t, snap.Contains(Coord{1, 0}))
	assert.Equal(t, 5, m.Len())
}
