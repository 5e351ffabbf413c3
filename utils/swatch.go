package utils

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/huescore"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "dominantcolor", "dominant", "":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

// Swatch is a dominant colour of an image labelled with the palette
// category it scores highest in.
type Swatch struct {
	Color colorful.Color
	// Share of the image represented by the swatch. Weights of one
	// extraction sum to 1.
	Weight float64
	// Category is empty when the colour matches no category.
	Category string
	Score    float64
}

func (s Swatch) Hex() string {
	return s.Color.Clamped().Hex()
}

// candidate is a colour proposed by an extractor, labelled with the palette
// category it scores highest in. Uncategorised colours share the empty
// category.
type candidate struct {
	col      colorful.Color
	weight   float64
	category string
	score    float64
}

func newCandidate(col colorful.Color, weight float64) candidate {
	col = col.Clamped()
	c := candidate{col: col, weight: max(weight, 1e-6)}
	r, g, b := col.RGB255()
	if cat, score, ok := huescore.Best(huescore.Pixel{R: r, G: g, B: b}.ToHSV()); ok {
		c.category = cat.Name
		c.score = score
	}
	return c
}

// ExtractSwatches returns up to k dominant colours of img, strongest first.
// Each palette category present in the image gets at most one swatch
// until every category is represented; a swatch's weight is the share of
// its category.
func ExtractSwatches(img image.Image, k int, method PaletteMethod) []Swatch {
	var cands []candidate
	switch method {
	case PaletteMethodKMeans:
		cands = kmeansCandidates(img, k)
		if len(cands) == 0 {
			slog.Warn("swatches: kmeans returned no clusters, falling back to dominantcolor")
			cands = dominantCandidates(img, k)
		}
	default:
		cands = dominantCandidates(img, k)
	}
	picked := pickByCategory(cands, k)
	if len(picked) == 0 {
		return nil
	}

	total := 0.0
	for _, c := range picked {
		total += c.weight
	}
	out := make([]Swatch, 0, len(picked))
	for _, c := range picked {
		out = append(out, Swatch{Color: c.col, Weight: c.weight / total, Category: c.category, Score: c.score})
	}
	slices.SortStableFunc(out, func(a, b Swatch) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
	return out
}

// SortSwatchesByBrightness orders swatches from darkest to brightest by
// relative luminance.
func SortSwatchesByBrightness(swatches []Swatch) {
	slices.SortFunc(swatches, func(a, b Swatch) int {
		ri, gi, bi := a.Color.LinearRgb()
		rj, gj, bj := b.Color.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

func dominantCandidates(img image.Image, k int) []candidate {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(24, k*8))
	if len(found) == 0 {
		// Blank or fully transparent input still yields one swatch.
		found = append(found, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}
	cands := make([]candidate, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, newCandidate(col, c.Weight))
	}
	return cands
}

// kmeansSamples bounds the pixels handed to kmeans.
const kmeansSamples = 12000

func kmeansCandidates(img image.Image, k int) []candidate {
	if k <= 0 {
		return nil
	}
	sample := huescore.Sample(huescore.Pixels(img), kmeansSamples)
	if len(sample) == 0 {
		return nil
	}
	dataset := make(clusters.Observations, 0, len(sample))
	for _, p := range sample {
		dataset = append(dataset, clusters.Coordinates{
			float64(p.R) / 255,
			float64(p.G) / 255,
			float64(p.B) / 255,
		})
	}

	// Over-partition so small categories get their own cluster.
	n := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, n)
	if err != nil || len(cc) == 0 {
		return nil
	}
	cands := make([]candidate, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		cands = append(cands, newCandidate(col, float64(len(c.Observations))))
	}
	return cands
}

// pickByCategory chooses up to k candidates. Categories are visited by their
// pooled candidate weight and each contributes the candidate that best
// matches it, carrying the whole pooled weight. Remaining slots go to the
// candidates farthest in Lab from everything picked, and their weight is
// moved out of their category's representative.
func pickByCategory(cands []candidate, k int) []candidate {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	pooled := make(map[string]float64)
	rep := make(map[string]int)
	var order []string
	for i, c := range cands {
		if _, seen := rep[c.category]; !seen {
			order = append(order, c.category)
			rep[c.category] = i
		}
		pooled[c.category] += c.weight
		if r := cands[rep[c.category]]; c.weight*c.score > r.weight*r.score ||
			(c.weight*c.score == r.weight*r.score && c.weight > r.weight) {
			rep[c.category] = i
		}
	}
	slices.SortStableFunc(order, func(a, b string) int {
		switch {
		case pooled[a] > pooled[b]:
			return -1
		case pooled[a] < pooled[b]:
			return 1
		}
		return 0
	})

	taken := make([]bool, len(cands))
	picked := make([]candidate, 0, k)
	slot := make(map[string]int)
	for _, name := range order {
		if len(picked) == k {
			break
		}
		i := rep[name]
		taken[i] = true
		c := cands[i]
		c.weight = pooled[name]
		slot[name] = len(picked)
		picked = append(picked, c)
	}

	for len(picked) < k {
		best, bestD := -1, -1.0
		for i, c := range cands {
			if taken[i] {
				continue
			}
			d := math.MaxFloat64
			for _, p := range picked {
				d = min(d, c.col.DistanceLab(p.col))
			}
			if d > bestD {
				best, bestD = i, d
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		c := cands[best]
		if s, ok := slot[c.category]; ok && picked[s].weight-c.weight > 0 {
			picked[s].weight -= c.weight
		}
		picked = append(picked, c)
	}
	return picked
}
