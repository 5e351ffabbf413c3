package utils

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/setanarut/huescore"
)

// ErrEmptyDistribution is returned when there is nothing to render.
var ErrEmptyDistribution = errors.New("empty distribution")

// DistributionImage renders scores as a horizontal strip, strongest
// category on the left. Each segment is painted with the category's swatch
// colour and is as wide as its share of width; the last drawn segment takes
// any rounding remainder.
func DistributionImage(scores huescore.Scores, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	ranked := scores.Ranked()
	x0 := 0
	for i, r := range ranked {
		if x0 >= width {
			break
		}
		x1 := x0 + int(math.Round(r.Score*float64(width)))
		if i == len(ranked)-1 || x1 > width {
			x1 = width
		}
		c := color.RGBA{R: 128, G: 128, B: 128, A: 255}
		if cat, ok := huescore.Lookup(r.Name); ok {
			c = cat.Swatch
		}
		for y := range height {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		x0 = x1
	}
	return img
}

func SaveDistribution(scores huescore.Scores, width, height int, filename string) error {
	if len(scores) == 0 {
		return ErrEmptyDistribution
	}
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 40
	}
	return SaveImage(DistributionImage(scores, width, height), filename)
}

func SaveSwatches(swatches []Swatch, tileSize int, filename string) error {
	if len(swatches) == 0 {
		return ErrEmptyDistribution
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(swatches)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, s := range swatches {
		r, g, b := s.Color.Clamped().RGB255()
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := range h {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}

	return SaveImage(img, filename)
}
