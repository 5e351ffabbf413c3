package huescore

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel is an 8-bit RGB triple. Alpha is never carried.
type Pixel struct {
	R, G, B uint8
}

// HSV holds hue in degrees [0, 360), saturation and value in [0, 1].
type HSV struct {
	H, S, V float64
}

// ToHSV converts p to HSV. Achromatic pixels get hue 0.
func (p Pixel) ToHSV() HSV {
	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
	h, s, v := c.Hsv()
	if h >= 360 {
		h -= 360
	}
	return HSV{H: h, S: s, V: v}
}

// HueDistance returns the shortest distance between two hues on the colour
// wheel, in [0, 180].
func HueDistance(h1, h2 float64) float64 {
	diff := h1 - h2
	if diff < 0 {
		diff = -diff
	}
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Pixels flattens img into row-major order. Alpha is dropped from the
// non-premultiplied colour, so translucent pixels keep their stored RGB.
func Pixels(img image.Image) []Pixel {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]Pixel, w*h)
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range h {
			row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
			for x := range w {
				out[pixOffset(w, x, y)] = Pixel{R: row[x*4], G: row[x*4+1], B: row[x*4+2]}
			}
		}
		return out
	}
	for y := range h {
		for x := range w {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			out[pixOffset(w, x, y)] = Pixel{R: c.R, G: c.G, B: c.B}
		}
	}
	return out
}

func pixOffset(w, x, y int) int {
	return y*w + x
}
