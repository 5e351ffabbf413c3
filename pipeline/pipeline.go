// Package pipeline ties fetching, decoding and scoring together.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/setanarut/huescore"
	"github.com/setanarut/huescore/config"
	"github.com/setanarut/huescore/source"
	"github.com/setanarut/huescore/utils"
	"golang.org/x/sync/errgroup"
)

// ErrAnalysisUnavailable wraps every failure that prevents a result. A
// caller holding this error has no distribution, not a uniform one.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// BatchExtensions are the file extensions picked up by Batch, in the order
// their groups are reported.
var BatchExtensions = []string{".jpg", ".png"}

type Analyzer struct {
	Fetcher  *source.Fetcher
	Options  huescore.Options
	Parallel int
}

func New(cfg config.Config) *Analyzer {
	return &Analyzer{
		Fetcher:  source.NewFetcher(cfg.Fetch.Timeout.Duration),
		Options:  cfg.Options(),
		Parallel: cfg.Analysis.Parallel,
	}
}

// Run loads the image behind ref (URL or path) and scores it.
func (a *Analyzer) Run(ctx context.Context, ref string) (huescore.Scores, error) {
	data, err := a.Fetcher.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisUnavailable, err)
	}
	return a.Bytes(data)
}

// Bytes decodes an encoded image, bounds it to Options.MaxSize and scores it.
func (a *Analyzer) Bytes(data []byte) (huescore.Scores, error) {
	img, _, err := utils.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisUnavailable, err)
	}
	pixels := huescore.Pixels(utils.Fit(img, a.Options.MaxSize))
	if len(pixels) == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrAnalysisUnavailable)
	}
	return huescore.Analyze(pixels, a.Options), nil
}

type Result struct {
	// Name is the file name without extension.
	Name   string
	Path   string
	Scores huescore.Scores
	Err    error
}

// ListImages returns the batch images of dir: every BatchExtensions group
// sorted by name, groups in BatchExtensions order.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, ext := range BatchExtensions {
		var group []string
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ext {
				continue
			}
			group = append(group, filepath.Join(dir, e.Name()))
		}
		slices.Sort(group)
		out = append(out, group...)
	}
	return out, nil
}

// Batch analyzes every image of dir with up to Parallel images in flight.
// Results keep ListImages order; failures are recorded per result. The
// returned error is set only when dir cannot be listed or ctx ends.
func (a *Analyzer) Batch(ctx context.Context, dir string) ([]Result, error) {
	paths, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, a.Parallel))
	for i, path := range paths {
		base := filepath.Base(path)
		results[i] = Result{Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: path}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Scores, results[i].Err = a.Run(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
