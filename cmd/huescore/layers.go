package main

import (
	"os"
	"path/filepath"

	"github.com/setanarut/huescore"
	"github.com/setanarut/huescore/utils"
	"github.com/spf13/cobra"
)

func newLayersCmd(g *globals) *cobra.Command {
	var rgba bool
	cmd := &cobra.Command{
		Use:   "layers <path> <out-dir>",
		Short: "Write per-category membership masks of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := utils.ReadImage(args[0])
			if err != nil {
				return err
			}
			dir := args[1]
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			l := huescore.NewLayers(utils.Fit(img, g.cfg.Analysis.MaxSize))
			if rgba {
				err = utils.SaveLayers(l.RGBALayers(), huescore.Names(), dir, "rgba")
			} else {
				err = utils.SaveLayers(l.GrayLayers(), huescore.Names(), dir, "gray")
			}
			if err != nil {
				return err
			}
			g.logger.Debug("layers written", "dir", dir, "w", l.W, "h", l.H)
			return utils.SaveImage(l.Dominant(), filepath.Join(dir, "dominant.png"))
		},
	}
	cmd.Flags().BoolVar(&rgba, "rgba", false, "write tinted RGBA layers instead of gray masks")
	return cmd
}
