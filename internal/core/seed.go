package core

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"unbounded-life/internal/config"
	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/pattern"
	"unbounded-life/pkg/patterns"
	"unbounded-life/pkg/soup"
)

// InitialState builds the starting state for cfg: a named library pattern,
// a pattern file, or a random soup centred on the origin when no pattern is
// set. Parse diagnostics are logged as warnings.
func InitialState(cfg config.SimulationConfig, logger *zap.Logger) (cellstate.CellState, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Pattern == "" {
		return soup.Centered(cfg.Seed, cfg.SoupSize, cfg.SoupDensity), nil
	}
	if p, ok := patterns.Lookup(cfg.Pattern); ok {
		return p.State, nil
	}
	return LoadPattern(cfg.Pattern, logger)
}

// LoadPattern parses a pattern file, logging each diagnostic.
func LoadPattern(path string, logger *zap.Logger) (cellstate.CellState, error) {
	f, err := os.Open(path)
	if err != nil {
		return cellstate.CellState{}, fmt.Errorf("open pattern: %w", err)
	}
	defer f.Close()
	res, err := pattern.ParseReader(f)
	if err != nil {
		return cellstate.CellState{}, err
	}
	for _, d := range res.Diagnostics {
		logger.Warn("pattern diagnostic",
			zap.String("path", path),
			zap.Stringer("kind", d.Kind),
			zap.Int("line", d.Line),
			zap.String("message", d.String()))
	}
	return res.State, nil
}
