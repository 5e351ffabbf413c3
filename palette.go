package huescore

import (
	"image/color"
	"slices"
)

// Kind selects the scoring function used for a category.
type Kind int

const (
	// KindHue scores pure hue families (Red, Orange, Yellow, Green, Blue, Purple).
	KindHue Kind = iota
	KindBrown
	KindPink
	KindBlack
	KindWhite
	KindGray
)

func (k Kind) String() string {
	switch k {
	case KindBrown:
		return "brown"
	case KindPink:
		return "pink"
	case KindBlack:
		return "black"
	case KindWhite:
		return "white"
	case KindGray:
		return "gray"
	default:
		return "hue"
	}
}

// Chromatic reports whether categories of this kind are bound to a hue window.
func (k Kind) Chromatic() bool {
	return k == KindHue || k == KindBrown || k == KindPink
}

// Category is one named entry of the palette.
//
// Chromatic kinds use HueCenter and HueRange. Achromatic kinds carry the
// nominal saturation/value bounds of the family in SaturationMax, ValueMin
// and ValueMax (zero means unbounded); the scorers themselves apply their
// own soft falloffs around those bounds.
type Category struct {
	Name string
	Kind Kind

	HueCenter float64
	HueRange  float64

	SaturationMax float64
	ValueMin      float64
	ValueMax      float64

	// Swatch is a representative colour used when rendering a distribution.
	Swatch color.RGBA
}

var palette = [...]Category{
	{Name: "Red", Kind: KindHue, HueCenter: 0, HueRange: 20, Swatch: color.RGBA{255, 0, 0, 255}},
	{Name: "Orange", Kind: KindHue, HueCenter: 20, HueRange: 20, Swatch: color.RGBA{255, 165, 0, 255}},
	{Name: "Yellow", Kind: KindHue, HueCenter: 50, HueRange: 30, Swatch: color.RGBA{255, 255, 0, 255}},
	{Name: "Green", Kind: KindHue, HueCenter: 115, HueRange: 140, Swatch: color.RGBA{0, 255, 0, 255}},
	{Name: "Blue", Kind: KindHue, HueCenter: 220, HueRange: 100, Swatch: color.RGBA{0, 0, 255, 255}},
	{Name: "Purple", Kind: KindHue, HueCenter: 290, HueRange: 60, Swatch: color.RGBA{128, 0, 128, 255}},
	{Name: "Brown", Kind: KindBrown, HueCenter: 25, HueRange: 40, Swatch: color.RGBA{139, 69, 19, 255}},
	{Name: "Black", Kind: KindBlack, ValueMax: 0.2, Swatch: color.RGBA{0, 0, 0, 255}},
	{Name: "White", Kind: KindWhite, SaturationMax: 0.2, ValueMin: 0.8, Swatch: color.RGBA{255, 255, 255, 255}},
	{Name: "Gray", Kind: KindGray, SaturationMax: 0.2, ValueMin: 0.2, ValueMax: 0.8, Swatch: color.RGBA{128, 128, 128, 255}},
	{Name: "Pink", Kind: KindPink, HueCenter: 310, HueRange: 100, Swatch: color.RGBA{255, 192, 203, 255}},
}

// Palette returns the fixed category table in declaration order.
// The returned slice is a copy; callers may modify it freely.
func Palette() []Category {
	return slices.Clone(palette[:])
}

// Names returns the category names in declaration order.
func Names() []string {
	names := make([]string, len(palette))
	for i := range palette {
		names[i] = palette[i].Name
	}
	return names
}

// Lookup returns the palette category with the given name.
func Lookup(name string) (Category, bool) {
	for i := range palette {
		if palette[i].Name == name {
			return palette[i], true
		}
	}
	return Category{}, false
}
