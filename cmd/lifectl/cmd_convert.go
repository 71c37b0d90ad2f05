package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unbounded-life/pkg/pattern"
)

func newConvertCmd(root *rootOptions) *cobra.Command {
	var (
		out    string
		dx, dy int
	)
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-encode a pattern file in canonical Life 1.05 form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := root.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			res, err := pattern.ParseReader(f)
			f.Close()
			if err != nil {
				return err
			}
			for _, d := range res.Diagnostics {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[0], d)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return pattern.Write(w, res.State.OffsetBy(dx, dy))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().IntVar(&dx, "dx", 0, "translate horizontally")
	cmd.Flags().IntVar(&dy, "dy", 0, "translate vertically")
	return cmd
}
