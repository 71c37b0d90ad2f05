package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unbounded-life/internal/config"
	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
)

type c = cellstate.Coord

func TestViewportWindow(t *testing.T) {
	v := Viewport{W: 4, H: 3}
	assert.Equal(t, cellstate.Rect{Left: -2, Top: -1, Right: 1, Bottom: 1}, v.Window())
	v.Pan(10, -5)
	assert.Equal(t, cellstate.Rect{Left: 8, Top: -6, Right: 11, Bottom: -4}, v.Window())
}

func TestRasterize(t *testing.T) {
	v := Viewport{W: 4, H: 3}
	g := NewByteGrid(v.W, v.H)
	g.Cells()[5] = 7

	state := cellstate.New(c{X: -2, Y: -1}, c{X: 1, Y: 1}, c{X: 0, Y: 0}, c{X: 2, Y: 0}, c{X: -3, Y: 0}, c{X: 0, Y: 9})
	v.Rasterize(state, g)

	want := []uint8{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	assert.Equal(t, want, g.Cells())
	assert.Equal(t, uint8(1), g.At(3, 2))
}

func TestStatusSnapshot(t *testing.T) {
	s := Status{
		Algorithm:  algorithm.KindNaive,
		Rule:       "B3/S23",
		Step:       4,
		Generation: 128,
		Population: 5,
		Bounds:     cellstate.Rect{Right: 2, Bottom: 2},
		LastStep:   1500 * time.Microsecond,
	}
	snap := s.Snapshot()
	for key, want := range map[string]string{
		"algorithm": "naive", "step": "4", "generation": "128", "population": "5",
		"last_step_ms": "1.50", "paused": "false",
	} {
		p, ok := snap.Lookup(key)
		require.True(t, ok, key)
		assert.Equal(t, want, p.Value, key)
	}
	_, ok := snap.Lookup("missing")
	assert.False(t, ok)

	p, _ := Status{}.Snapshot().Lookup("bounds")
	assert.Equal(t, "-", p.Value)
}

func TestInitialState(t *testing.T) {
	cfg := config.Default().Simulation

	cfg.Pattern = "glider"
	st, err := InitialState(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Len())

	cfg.Pattern = ""
	cfg.SoupSize, cfg.SoupDensity = 10, 1
	st, err = InitialState(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, st.Len())
	box, _ := st.BoundingBox()
	assert.Equal(t, cellstate.Rect{Left: -5, Top: -5, Right: 4, Bottom: 4}, box)

	path := filepath.Join(t.TempDir(), "p.life")
	require.NoError(t, os.WriteFile(path, []byte("#Life 1.05\nOO\nO\n"), 0o644))
	cfg.Pattern = path
	st, err = InitialState(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Len())

	cfg.Pattern = filepath.Join(t.TempDir(), "missing.life")
	_, err = InitialState(cfg, nil)
	assert.Error(t, err)
}
