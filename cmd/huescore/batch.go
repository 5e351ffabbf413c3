package main

import (
	"fmt"

	"github.com/setanarut/huescore/pipeline"
	"github.com/spf13/cobra"
)

func newBatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyze every .jpg and .png image of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			results, err := pipeline.New(g.cfg).Batch(cmd.Context(), dir)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return fmt.Errorf("no images found in %s", dir)
			}

			out := cmd.OutOrStdout()
			rw := g.reportWriter(out)
			fmt.Fprintf(out, "Analyzing %d images in %s/\n\n", len(results), dir)
			if err := rw.Rule(); err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					g.logger.Warn("analysis failed", "path", r.Path, "err", r.Err)
				}
				if err := rw.Image(r.Name, r.Scores, r.Err); err != nil {
					return err
				}
			}
			fmt.Fprintln(out)
			if err := rw.Rule(); err != nil {
				return err
			}
			g.logger.Debug("batch done", "images", len(results), "failed", failed)
			return nil
		},
	}
}
