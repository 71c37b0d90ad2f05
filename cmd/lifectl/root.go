package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unbounded-life/internal/config"
	"unbounded-life/internal/core"
	"unbounded-life/internal/logging"
	"unbounded-life/pkg/algorithm"
	_ "unbounded-life/pkg/algorithm/hashlife"
	_ "unbounded-life/pkg/algorithm/naive"
	"unbounded-life/pkg/cellstate"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "lifectl",
		Short: "Run and inspect Conway's Game of Life on an unbounded plane",
		Long: `lifectl drives the HashLife and naive Life engines.

Examples:
  lifectl patterns                       # list the built-in library
  lifectl step --pattern glider -n 1000  # advance and print a pattern
  lifectl run --config life.toml --watch # stream, switching engines on edits
  lifectl check --strict my.life         # fail on any parse diagnostic
  lifectl compare --soups 64             # cross-check the two engines`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML or YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "override logging.format (json, console, auto)")

	root.AddCommand(
		newRunCmd(opts),
		newStepCmd(opts),
		newCheckCmd(),
		newConvertCmd(opts),
		newCompareCmd(opts),
		newPatternsCmd(),
	)
	return root
}

// load returns the effective configuration and a logger built from it.
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, nil, err
		}
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// simulationFlags are the overrides shared by run and step.
type simulationFlags struct {
	pattern   string
	algorithm string
	rule      string
	step      int
}

func (f *simulationFlags) bind(cmd *cobra.Command, stepUsage string) {
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "library pattern name or pattern file (default: random soup)")
	cmd.Flags().StringVar(&f.algorithm, "algorithm", "", "hashlife or naive")
	cmd.Flags().StringVar(&f.rule, "rule", "", "birth/survival rule, e.g. B3/S23")
	cmd.Flags().IntVarP(&f.step, "step", "n", -1, stepUsage)
}

// apply copies the flags that were set onto cfg and validates the result.
func (f *simulationFlags) apply(cfg *config.Config) error {
	if f.pattern != "" {
		cfg.Simulation.Pattern = f.pattern
	}
	if f.algorithm != "" {
		cfg.Simulation.Algorithm = f.algorithm
	}
	if f.rule != "" {
		cfg.Simulation.Rule = f.rule
	}
	if f.step >= 0 {
		cfg.Simulation.Step = f.step
	}
	return cfg.Validate()
}

// engineConfig builds the algorithm configuration for cfg.
func engineConfig(cfg *config.Config, logger *zap.Logger) (algorithm.Config, error) {
	r, err := cfg.Simulation.ParsedRule()
	if err != nil {
		return algorithm.Config{}, err
	}
	return algorithm.Config{Rule: r, MaxNodes: cfg.Simulation.MaxNodes, Logger: logger}, nil
}

func initialState(cfg *config.Config, logger *zap.Logger) (cellstate.CellState, error) {
	return core.InitialState(cfg.Simulation, logger)
}
