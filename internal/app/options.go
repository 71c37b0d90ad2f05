package app

import (
	"go.uber.org/zap"

	"unbounded-life/internal/config"
	"unbounded-life/internal/core"
	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
)

// Options configures a Game.
type Options struct {
	Algorithm            algorithm.Config
	Kind                 algorithm.Kind
	Initial              cellstate.CellState
	Step                 int
	GenerationsPerSecond float64
	Viewport             core.Viewport
	Scale                int
	Logger               *zap.Logger
	Observers            []algorithm.Observer
}

// OptionsFromConfig derives Game options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, initial cellstate.CellState, logger *zap.Logger) (Options, error) {
	kind, err := cfg.Simulation.Kind()
	if err != nil {
		return Options{}, err
	}
	r, err := cfg.Simulation.ParsedRule()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Algorithm:            algorithm.Config{Rule: r, MaxNodes: cfg.Simulation.MaxNodes, Logger: logger},
		Kind:                 kind,
		Initial:              initial,
		Step:                 cfg.Simulation.Step,
		GenerationsPerSecond: cfg.Simulation.GenerationsPerSecond,
		Viewport: core.Viewport{
			Center: cellstate.Coord{X: cfg.Viewer.CenterX, Y: cfg.Viewer.CenterY},
			W:      cfg.Viewer.Width,
			H:      cfg.Viewer.Height,
		},
		Scale:  cfg.Viewer.CellSize,
		Logger: logger,
	}, nil
}

func (o Options) normalized() Options {
	o.Algorithm = o.Algorithm.Normalized()
	if o.Step <= 0 {
		o.Step = 1
	}
	if o.GenerationsPerSecond <= 0 {
		o.GenerationsPerSecond = 10
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Viewport.W <= 0 || o.Viewport.H <= 0 {
		o.Viewport.W, o.Viewport.H = 160, 100
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
