// Command huescore reports how much of an image looks like each named
// colour.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globals
	root := &cobra.Command{
		Use:           "huescore",
		Short:         "Classify the dominant named colours of images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&g.configPath, "config", "", "TOML config file")
	f.StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.IntVar(&g.maxSize, "max-size", 0, "longest image side before sampling (overrides config)")
	f.IntVar(&g.sampleCap, "sample-cap", 0, "maximum sampled pixels per image (overrides config)")
	f.IntVar(&g.workers, "workers", 0, "goroutines scoring one image (overrides config)")
	f.BoolVar(&g.color, "color", false, "colour the report bars")

	root.AddCommand(
		newAnalyzeCmd(&g),
		newBatchCmd(&g),
		newSwatchesCmd(&g),
		newLayersCmd(&g),
	)
	return root
}
