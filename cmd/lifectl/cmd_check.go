package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"unbounded-life/pkg/pattern"
)

func newCheckCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report parse diagnostics for pattern files",
		Long: `Parse each file and print its diagnostics.

Parsing is best effort, so check succeeds unless a file cannot be read.
With --strict any diagnostic is an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				res, err := pattern.ParseReader(f)
				f.Close()
				if err != nil {
					return err
				}
				for _, d := range res.Diagnostics {
					fmt.Fprintf(out, "%s: %s\n", path, d)
				}
				if len(res.Diagnostics) > 0 {
					failed++
				}
				fmt.Fprintf(out, "%s: %d cells, %d diagnostics\n", path, res.State.Len(), len(res.Diagnostics))
			}
			if strict && failed > 0 {
				return fmt.Errorf("%d of %d files have diagnostics", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat any diagnostic as an error")
	return cmd
}
