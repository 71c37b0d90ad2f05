package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unbounded-life/internal/config"
	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/rule"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Algorithm = "naive"
	cfg.Simulation.Step = 3
	cfg.Viewer.CenterX = 7

	opts, err := OptionsFromConfig(cfg, cellstate.Empty(), nil)
	require.NoError(t, err)
	assert.Equal(t, algorithm.KindNaive, opts.Kind)
	assert.Equal(t, 3, opts.Step)
	assert.Equal(t, rule.Conway, opts.Algorithm.Rule)
	assert.Equal(t, cellstate.Coord{X: 7}, opts.Viewport.Center)
	assert.Equal(t, cfg.Viewer.CellSize, opts.Scale)

	cfg.Simulation.Algorithm = "quantum"
	_, err = OptionsFromConfig(cfg, cellstate.Empty(), nil)
	assert.ErrorIs(t, err, algorithm.ErrUnknownKind)
}

func TestOptionsNormalized(t *testing.T) {
	o := Options{}.normalized()
	assert.Equal(t, 1, o.Step)
	assert.Equal(t, 1, o.Scale)
	assert.Positive(t, o.GenerationsPerSecond)
	assert.Equal(t, 160, o.Viewport.W)
	assert.NotNil(t, o.Logger)
	assert.Equal(t, rule.Conway, o.Algorithm.Rule)
}
