package huescore

import (
	"image"
	"image/color"
)

// Layers holds the per-pixel membership of an image in every palette
// category. It shows where in the image each score comes from.
type Layers struct {
	W, H int
	// Weights is interleaved per pixel, len = W*H*len(Palette()).
	Weights []float64
}

func NewLayers(img image.Image) *Layers {
	pixels := Pixels(img)
	b := img.Bounds()
	n := len(palette)
	l := &Layers{
		W:       b.Dx(),
		H:       b.Dy(),
		Weights: make([]float64, len(pixels)*n),
	}
	for i, p := range pixels {
		scoreInto(l.Weights[i*n:(i+1)*n], p.ToHSV())
	}
	return l
}

func (l *Layers) weight(x, y, ch int) float64 {
	n := len(palette)
	return l.Weights[pixOffset(l.W, x, y)*n+ch]
}

// GrayLayers returns one mask per category, palette order, with membership
// 1 mapped to white.
func (l *Layers) GrayLayers() []*image.Gray {
	if l.W == 0 || l.H == 0 {
		return nil
	}
	out := make([]*image.Gray, len(palette))
	for ch := range palette {
		layer := image.NewGray(image.Rect(0, 0, l.W, l.H))
		for y := range l.H {
			for x := range l.W {
				layer.SetGray(x, y, color.Gray{Y: uint8(l.weight(x, y, ch)*255 + 0.5)})
			}
		}
		out[ch] = layer
	}
	return out
}

// RGBALayers returns one layer per category painted in its swatch colour
// with membership as alpha.
func (l *Layers) RGBALayers() []*image.NRGBA {
	if l.W == 0 || l.H == 0 {
		return nil
	}
	out := make([]*image.NRGBA, len(palette))
	for ch, cat := range palette {
		layer := image.NewNRGBA(image.Rect(0, 0, l.W, l.H))
		sw := cat.Swatch
		for y := range l.H {
			for x := range l.W {
				a := uint8(l.weight(x, y, ch)*255 + 0.5)
				layer.SetNRGBA(x, y, color.NRGBA{R: sw.R, G: sw.G, B: sw.B, A: a})
			}
		}
		out[ch] = layer
	}
	return out
}

// Dominant paints every pixel with the swatch of its best category, or
// transparent where nothing matches.
func (l *Layers) Dominant() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, l.W, l.H))
	for y := range l.H {
		for x := range l.W {
			best, bestScore := -1, 0.0
			for ch := range palette {
				if s := l.weight(x, y, ch); s > bestScore {
					best, bestScore = ch, s
				}
			}
			if best < 0 {
				continue
			}
			sw := palette[best].Swatch
			img.SetNRGBA(x, y, color.NRGBA{R: sw.R, G: sw.G, B: sw.B, A: 255})
		}
	}
	return img
}
