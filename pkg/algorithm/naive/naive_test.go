package naive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/rule"
)

type c = cellstate.Coord

func newConway(t *testing.T) *Naive {
	t.Helper()
	n, err := New(rule.Conway)
	require.NoError(t, err)
	return n
}

func TestBlinkerOscillation(t *testing.T) {
	life := newConway(t)
	ctx := context.Background()
	vertical := cellstate.New(c{X: 2, Y: 1}, c{X: 2, Y: 2}, c{X: 2, Y: 3})
	horizontal := cellstate.New(c{X: 1, Y: 2}, c{X: 2, Y: 2}, c{X: 3, Y: 2})

	got, err := life.Step(ctx, vertical, 1)
	require.NoError(t, err)
	if !got.Equal(horizontal) {
		t.Fatalf("after one step got\n%s\nexpected\n%s", got, horizontal)
	}

	got, err = life.Step(ctx, vertical, 2)
	require.NoError(t, err)
	if !got.Equal(vertical) {
		t.Fatalf("after second step got\n%s\nexpected\n%s", got, vertical)
	}
}

func TestStillLifeIsFixed(t *testing.T) {
	block := cellstate.New(c{X: 0, Y: 0}, c{X: 1, Y: 0}, c{X: 0, Y: 1}, c{X: 1, Y: 1})
	got, err := newConway(t).Step(context.Background(), block, 25)
	require.NoError(t, err)
	assert.True(t, got.Equal(block))
}

func TestGliderTravels(t *testing.T) {
	glider := cellstate.New(c{X: 1, Y: 0}, c{X: 2, Y: 1}, c{X: 0, Y: 2}, c{X: 1, Y: 2}, c{X: 2, Y: 2})
	got, err := newConway(t).Step(context.Background(), glider, 4)
	require.NoError(t, err)
	assert.True(t, got.Equal(glider.OffsetBy(1, 1)), "glider moves one cell diagonally every 4 generations, got\n%s", got)
}

func TestLonelyCellsDie(t *testing.T) {
	got, err := newConway(t).Step(context.Background(), cellstate.New(c{X: 0, Y: 0}, c{X: 10, Y: 10}), 1)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestZeroAndNegativeSteps(t *testing.T) {
	life := newConway(t)
	s := cellstate.New(c{X: 0, Y: 0}, c{X: 1, Y: 0})

	got, err := life.Step(context.Background(), s, 0)
	require.NoError(t, err)
	assert.True(t, got.Equal(s))

	_, err = life.Step(context.Background(), s, -1)
	assert.ErrorIs(t, err, algorithm.ErrNegativeStep)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blinker := cellstate.New(c{X: 0, Y: 0}, c{X: 1, Y: 0}, c{X: 2, Y: 0})
	_, err := newConway(t).Step(ctx, blinker, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCustomRule(t *testing.T) {
	// B1/S: a single cell becomes its ring of eight neighbors.
	r := rule.Rule{Birth: 1 << 1}
	life, err := New(r)
	require.NoError(t, err)
	got, err := life.Step(context.Background(), cellstate.New(c{X: 0, Y: 0}), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Len())
	assert.False(t, got.Contains(c{X: 0, Y: 0}))
}

func TestSurvivalOnZeroNeighbors(t *testing.T) {
	r := rule.Rule{Birth: 1 << 3, Survival: 1}
	life, err := New(r)
	require.NoError(t, err)
	got, err := life.Step(context.Background(), cellstate.New(c{X: 0, Y: 0}), 3)
	require.NoError(t, err)
	assert.True(t, got.Equal(cellstate.New(c{X: 0, Y: 0})))
}

func TestRejectsUnboundedRule(t *testing.T) {
	_, err := New(rule.Rule{Birth: 1})
	assert.ErrorIs(t, err, rule.ErrUnboundedRule)
}

func TestRegistered(t *testing.T) {
	a, err := algorithm.New(algorithm.KindNaive, algorithm.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "naive", a.Name())
}
