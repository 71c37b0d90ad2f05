package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/pattern"
)

type stepOptions struct {
	sim simulationFlags
	out string
}

func newStepCmd(root *rootOptions) *cobra.Command {
	o := &stepOptions{}
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Advance a pattern and print the result in Life 1.05 format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer logger.Sync()
			if err := o.sim.apply(cfg); err != nil {
				return err
			}
			initial, err := initialState(cfg, logger)
			if err != nil {
				return err
			}
			engineCfg, err := engineConfig(cfg, logger)
			if err != nil {
				return err
			}
			kind, err := cfg.Simulation.Kind()
			if err != nil {
				return err
			}
			engine, err := algorithm.New(kind, engineCfg)
			if err != nil {
				return err
			}
			result, err := engine.Step(cmd.Context(), initial, cfg.Simulation.Step)
			if err != nil {
				return fmt.Errorf("step %d generations with %s: %w", cfg.Simulation.Step, kind, err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if o.out != "" {
				f, err := os.Create(o.out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return pattern.Write(w, result)
		},
	}
	o.sim.bind(cmd, "generations to advance")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
