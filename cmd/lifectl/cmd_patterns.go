package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"unbounded-life/pkg/patterns"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns [NAME]",
		Short: "List the built-in patterns, or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				p, ok := patterns.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown pattern %q", args[0])
				}
				fmt.Fprintln(out, p.State.String())
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tPERIOD\tSIZE\tDISPLACEMENT")
			for _, p := range patterns.All() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d\t%d,%d\n",
					p.Name, p.Category, p.Period, p.Width, p.Height, p.Displacement.X, p.Displacement.Y)
			}
			return tw.Flush()
		},
	}
}
