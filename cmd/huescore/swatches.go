package main

import (
	"fmt"

	"github.com/setanarut/huescore/utils"
	"github.com/spf13/cobra"
)

func newSwatchesCmd(g *globals) *cobra.Command {
	var (
		k      int
		method string
		out    string
		sorted bool
	)
	cmd := &cobra.Command{
		Use:   "swatches <path>",
		Short: "List the dominant colours of an image and their categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := utils.ParsePaletteMethod(method)
			if err != nil {
				return err
			}
			img, err := utils.ReadImage(args[0])
			if err != nil {
				return err
			}
			swatches := utils.ExtractSwatches(utils.Fit(img, g.cfg.Analysis.MaxSize), k, m)
			if sorted {
				utils.SortSwatchesByBrightness(swatches)
			}
			w := cmd.OutOrStdout()
			for _, s := range swatches {
				category := s.Category
				if category == "" {
					category = "-"
				}
				fmt.Fprintf(w, "  %s  %-8s %5.1f%%  (match %.2f)\n", s.Hex(), category, s.Weight*100, s.Score)
			}
			if out != "" {
				return utils.SaveSwatches(swatches, 64, out)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&k, "k", "k", 6, "number of swatches")
	f.StringVar(&method, "method", "dominantcolor", "extraction method (dominantcolor, kmeans)")
	f.StringVarP(&out, "out", "o", "", "write the swatches as a PNG")
	f.BoolVar(&sorted, "by-brightness", false, "order swatches dark to bright instead of by weight")
	return cmd
}
