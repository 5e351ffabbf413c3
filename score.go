package huescore

// Scorer breakpoints. They define the perceptual shape of each family;
// every published distribution depends on them.
const (
	blackFull   = 0.2 // value below which a pixel is fully black
	blackCutoff = 0.3 // value at which the black ramp reaches 0

	whiteValueMin = 0.7
	whiteSatMax   = 0.3

	graySatMax   = 0.3
	grayValueMin = 0.15
	grayValueMid = 0.5
	grayValueMax = 0.85

	brownMin  = 0.2
	brownMax  = 0.7
	brownPeak = 0.5

	pinkSatMin   = 0.2
	pinkValueMin = 0.4
	pinkSatPeak  = 0.6

	hueSatMin   = 0.2
	hueValueMin = 0.1
)

// Score returns the membership of c in cat, in [0, 1].
func Score(c HSV, cat Category) float64 {
	switch cat.Kind {
	case KindBlack:
		return scoreBlack(c)
	case KindWhite:
		return scoreWhite(c)
	case KindGray:
		return scoreGray(c)
	case KindBrown:
		return scoreBrown(c, cat)
	case KindPink:
		return scorePink(c, cat)
	default:
		return scoreHue(c, cat)
	}
}

// ScoreAll scores c against every palette category, in palette order.
func ScoreAll(c HSV) []float64 {
	out := make([]float64, len(palette))
	scoreInto(out, c)
	return out
}

func scoreInto(dst []float64, c HSV) {
	for i := range palette {
		dst[i] = Score(c, palette[i])
	}
}

// Best returns the palette category that c scores highest in. Ties go to
// the earlier category; a pixel that matches nothing returns false.
func Best(c HSV) (Category, float64, bool) {
	best, bestScore := -1, 0.0
	for i := range palette {
		if s := Score(c, palette[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Category{}, 0, false
	}
	return palette[best], bestScore, true
}

func scoreBlack(c HSV) float64 {
	if c.V < blackFull {
		return 1.0
	}
	return max(0, (blackCutoff-c.V)/blackCutoff)
}

func scoreWhite(c HSV) float64 {
	if c.V < whiteValueMin {
		return 0
	}
	sat := 0.0
	if c.S < whiteSatMax {
		sat = (whiteSatMax - c.S) / whiteSatMax
	}
	val := (c.V - whiteValueMin) / (1 - whiteValueMin)
	return sat * val
}

func scoreGray(c HSV) float64 {
	if c.S > graySatMax || c.V < grayValueMin || c.V > grayValueMax {
		return 0
	}
	sat := max(0, (graySatMax-c.S)/graySatMax)
	var val float64
	if c.V < grayValueMid {
		val = (c.V - grayValueMin) / (grayValueMid - grayValueMin)
	} else {
		val = (grayValueMax - c.V) / (grayValueMax - grayValueMid)
	}
	return sat * val
}

// hueScore is 1 at the centre of the category's hue window falling to 0 at
// its edge; ok is false outside the window.
func hueScore(h float64, cat Category) (score float64, ok bool) {
	d := HueDistance(h, cat.HueCenter)
	if d > cat.HueRange {
		return 0, false
	}
	return 1.0 - d/cat.HueRange, true
}

// triangle peaks at 1 on peak and reaches 0 at peak±halfWidth.
func triangle(x, peak, halfWidth float64) float64 {
	d := x - peak
	if d < 0 {
		d = -d
	}
	return 1.0 - d/halfWidth
}

func scoreBrown(c HSV, cat Category) float64 {
	hue, ok := hueScore(c.H, cat)
	if !ok {
		return 0
	}
	if c.S < brownMin || c.S > brownMax || c.V < brownMin || c.V > brownMax {
		return 0
	}
	sat := triangle(c.S, brownPeak, brownPeak)
	val := triangle(c.V, brownPeak, brownPeak)
	return hue * sat * val
}

func scorePink(c HSV, cat Category) float64 {
	hue, ok := hueScore(c.H, cat)
	if !ok {
		return 0
	}
	if c.S < pinkSatMin || c.V < pinkValueMin {
		return 0
	}
	sat := triangle(c.S, pinkSatPeak, pinkSatPeak)
	val := (c.V - pinkValueMin) / (1 - pinkValueMin)
	return hue * sat * val
}

func scoreHue(c HSV, cat Category) float64 {
	hue, ok := hueScore(c.H, cat)
	if !ok {
		return 0
	}
	if c.S < hueSatMin || c.V < hueValueMin {
		return 0
	}
	sat := 0.0
	if c.S > hueSatMin {
		sat = (c.S - hueSatMin) / (1 - hueSatMin)
	}
	// Value does not discriminate saturated hues once the minimum is met.
	val := 1.0
	return hue * sat * val
}
