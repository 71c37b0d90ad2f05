package patterns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unbounded-life/pkg/algorithm"
	_ "unbounded-life/pkg/algorithm/hashlife"
	_ "unbounded-life/pkg/algorithm/naive"
	"unbounded-life/pkg/cellstate"
)

func TestLibrary(t *testing.T) {
	wantBoxes := map[string][2]int{
		"blinker": {3, 1}, "toad": {4, 2}, "beacon": {4, 4}, "clock": {4, 4},
		"pulsar": {13, 13}, "pentadecathlon": {10, 3}, "glider": {3, 3}, "lwss": {5, 4},
	}
	assert.Len(t, Names(), len(wantBoxes))
	for name, box := range wantBoxes {
		p, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, box, [2]int{p.Width, p.Height}, name)
		tl, _ := p.State.BoundingBox()
		assert.Equal(t, cellstate.Coord{}, tl.TopLeft(), name)
	}
	_, ok := Lookup("Glider")
	assert.True(t, ok)
	_, ok = Lookup("unicorn")
	assert.False(t, ok)
}

func TestPeriods(t *testing.T) {
	ctx := context.Background()
	for _, kind := range algorithm.Kinds() {
		engine, err := algorithm.New(kind, algorithm.DefaultConfig())
		require.NoError(t, err)
		for _, p := range All() {
			t.Run(kind.String()+"/"+p.Name, func(t *testing.T) {
				start := p.At(cellstate.Coord{X: -3, Y: 5})
				want := start.OffsetBy(p.Displacement.X, p.Displacement.Y)

				got, err := engine.Step(ctx, start, p.Period)
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "after one period\n%s", got)

				got, err = engine.Step(ctx, start, 10*p.Period)
				require.NoError(t, err)
				assert.True(t, start.OffsetBy(10*p.Displacement.X, 10*p.Displacement.Y).Equal(got))

				state := start
				for gen := 1; gen < p.Period; gen++ {
					state, err = engine.Step(ctx, state, 1)
					require.NoError(t, err)
					assert.False(t, start.Equal(state), "phase %d repeats the start", gen)
				}
			})
		}
	}
}
