// Package naive implements the reference engine: every generation counts the
// neighbors of each live cell and of each dead cell next to one.
package naive

import (
	"context"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/rule"
)

var neighborOffsets = [8]cellstate.Coord{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Naive is the direct neighbor-counting engine.
type Naive struct {
	rule rule.Rule
}

// New returns a Naive engine for r.
func New(r rule.Rule) (*Naive, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Naive{rule: r}, nil
}

// Name returns the engine identifier.
func (n *Naive) Name() string { return "naive" }

// Step advances state by steps generations, checking ctx between generations.
func (n *Naive) Step(ctx context.Context, state cellstate.CellState, steps int) (cellstate.CellState, error) {
	if err := algorithm.CheckStep(steps); err != nil {
		return cellstate.CellState{}, err
	}
	for i := 0; i < steps; i++ {
		if state.IsEmpty() {
			return state, nil
		}
		if err := ctx.Err(); err != nil {
			return cellstate.CellState{}, err
		}
		state = n.Next(state)
	}
	return state, nil
}

// Next computes a single generation.
func (n *Naive) Next(state cellstate.CellState) cellstate.CellState {
	counts := make(map[cellstate.Coord]int, state.Len()*4)
	for c := range state.Cells() {
		for _, d := range neighborOffsets {
			counts[c.Add(d)]++
		}
	}
	next := make(map[cellstate.Coord]struct{}, state.Len())
	for c, neighbors := range counts {
		if n.rule.Next(state.Contains(c), neighbors) {
			next[c] = struct{}{}
		}
	}
	// Live cells with no live neighbors never appear in counts.
	if n.rule.Survival&1 != 0 {
		for c := range state.Cells() {
			if _, seen := counts[c]; !seen {
				next[c] = struct{}{}
			}
		}
	}
	return cellstate.FromSet(next)
}

func init() {
	algorithm.Register(algorithm.KindNaive, func(cfg algorithm.Config) (algorithm.Algorithm, error) {
		return New(cfg.Rule)
	})
}
