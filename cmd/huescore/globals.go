package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/setanarut/huescore/config"
	"github.com/setanarut/huescore/report"
	"github.com/spf13/cobra"
)

type globals struct {
	configPath string
	logLevel   string
	maxSize    int
	sampleCap  int
	workers    int
	color      bool

	cfg    config.Config
	logger *slog.Logger
}

func (g *globals) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.logger)

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("max-size") {
		cfg.Analysis.MaxSize = g.maxSize
	}
	if flags.Changed("sample-cap") {
		cfg.Analysis.SampleCap = g.sampleCap
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = g.workers
	}
	if flags.Changed("color") {
		cfg.Report.Color = g.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	g.logger.Debug("config loaded", "path", g.configPath, "max_size", cfg.Analysis.MaxSize,
		"sample_cap", cfg.Analysis.SampleCap, "workers", cfg.Analysis.Workers)
	return nil
}

func (g *globals) reportWriter(w io.Writer) *report.Writer {
	rw := report.NewWriter(w, g.cfg.Report.BarWidth)
	if g.cfg.Report.Color {
		if f, ok := w.(*os.File); ok {
			rw.WithColor(termenv.NewOutput(f))
		}
	}
	return rw
}
