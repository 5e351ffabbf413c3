// Package report formats colour distributions for terminals.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/setanarut/huescore"
)

const (
	DefaultWidth = 30

	fullBlock  = "█"
	lightShade = "░"
)

// Bar renders score in [0, 1] as a bar of width cells.
func Bar(score float64, width int) string {
	filled := int(score * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat(fullBlock, filled) + strings.Repeat(lightShade, width-filled)
}

type Writer struct {
	w       io.Writer
	width   int
	profile termenv.Profile
}

// NewWriter writes plain reports with bars of width cells.
func NewWriter(w io.Writer, width int) *Writer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Writer{w: w, width: width, profile: termenv.Ascii}
}

// WithColor paints each bar in its category's colour using the colour
// profile detected for out.
func (r *Writer) WithColor(out *termenv.Output) *Writer {
	r.profile = out.Profile
	return r
}

// Scores writes one line per category, strongest first:
//
//	Red      ██████░░░░░░░░░░░░░░░░░░░░░░░░  21.4%
func (r *Writer) Scores(scores huescore.Scores) error {
	for _, s := range scores.Ranked() {
		bar := Bar(s.Score, r.width)
		if cat, ok := huescore.Lookup(s.Name); ok && r.profile != termenv.Ascii {
			hex := fmt.Sprintf("#%02x%02x%02x", cat.Swatch.R, cat.Swatch.G, cat.Swatch.B)
			bar = r.profile.String(bar).Foreground(r.profile.Color(hex)).String()
		}
		if _, err := fmt.Fprintf(r.w, "  %-8s %s %5.1f%%\n", s.Name, bar, s.Score*100); err != nil {
			return err
		}
	}
	return nil
}

// Image writes a titled section for one analyzed image, or a failure line
// when err is set.
func (r *Writer) Image(name string, scores huescore.Scores, err error) error {
	if _, werr := fmt.Fprintf(r.w, "\n%s\n%s\n", name, strings.Repeat("-", 80)); werr != nil {
		return werr
	}
	if err != nil {
		_, werr := fmt.Fprintf(r.w, "  ✗ Failed to analyze: %v\n", err)
		return werr
	}
	return r.Scores(scores)
}

func (r *Writer) Rule() error {
	_, err := fmt.Fprintln(r.w, strings.Repeat("=", 80))
	return err
}
