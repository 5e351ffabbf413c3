package huescore

import (
	"cmp"
	"image"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

type Options struct {
	// Longest side, in pixels, an image is scaled down to before sampling.
	// The core never resizes; decoders use this to bound their output.
	MaxSize int
	// Upper bound on the number of pixels scored per image. Larger inputs
	// are subsampled at evenly spaced indices. 0 or less disables the cap.
	SampleCap int
	// Number of goroutines splitting the sample. Partial sums are added in
	// chunk order, so the result is deterministic for a fixed value.
	// Values below 2 score on the calling goroutine.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		MaxSize:   400,
		SampleCap: 10000,
		Workers:   1,
	}
}

// Scores maps every palette category name to its share of the image.
type Scores map[string]float64

// Ranked is one entry of a Scores sorted for presentation.
type Ranked struct {
	Name  string
	Score float64
}

// Ranked returns the entries ordered by descending score. Equal scores keep
// palette order; names outside the palette go last, alphabetically.
func (s Scores) Ranked() []Ranked {
	order := make(map[string]int, len(palette))
	for i := range palette {
		order[palette[i].Name] = i
	}
	rank := func(name string) int {
		if i, ok := order[name]; ok {
			return i
		}
		return len(palette)
	}
	out := make([]Ranked, 0, len(s))
	for name, v := range s {
		out = append(out, Ranked{Name: name, Score: v})
	}
	slices.SortFunc(out, func(a, b Ranked) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(rank(a.Name), rank(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Top returns the highest scoring category.
func (s Scores) Top() (Ranked, bool) {
	r := s.Ranked()
	if len(r) == 0 {
		return Ranked{}, false
	}
	return r[0], true
}

// Total returns the sum of all entries; 1 for any analysis result.
func (s Scores) Total() float64 {
	vals := make([]float64, 0, len(s))
	for _, v := range s {
		vals = append(vals, v)
	}
	return floats.Sum(vals)
}

// SampleIndices returns limit indices evenly spaced over [0, n-1], the
// first and last included. Positions are interpolated linearly and
// truncated to integers. If n does not exceed limit (or limit <= 0) every
// index is returned.
func SampleIndices(n, limit int) []int {
	if n <= 0 {
		return nil
	}
	if limit <= 0 || n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, limit)
	if limit == 1 {
		return idx
	}
	step := float64(n-1) / float64(limit-1)
	for i := range limit - 1 {
		idx[i] = int(float64(i) * step)
	}
	idx[limit-1] = n - 1
	return idx
}

// Sample returns the pixels at SampleIndices(len(pixels), limit). The
// input is returned as is when no subsampling is needed.
func Sample(pixels []Pixel, limit int) []Pixel {
	if limit <= 0 || len(pixels) <= limit {
		return pixels
	}
	idx := SampleIndices(len(pixels), limit)
	out := make([]Pixel, len(idx))
	for i, j := range idx {
		out[i] = pixels[j]
	}
	return out
}

// Analyze scores a row-major pixel sequence against the palette and returns
// the normalized distribution. An empty sequence, or one where nothing
// matches any category, yields the uniform distribution.
func Analyze(pixels []Pixel, opt Options) Scores {
	sample := Sample(pixels, opt.SampleCap)
	return accumulate(sample, opt.Workers).scores()
}

// AnalyzeImage flattens img and analyzes it. img is expected to be bounded
// to opt.MaxSize already; see utils.Fit.
func AnalyzeImage(img image.Image, opt Options) Scores {
	return Analyze(Pixels(img), opt)
}

// ============ Aggregation ============

// accumulator holds per-category score sums over a number of pixels.
// Accumulators over disjoint chunks combine by addition.
type accumulator struct {
	sums  []float64 // palette order
	count int
	buf   []float64
}

func newAccumulator() *accumulator {
	return &accumulator{
		sums: make([]float64, len(palette)),
		buf:  make([]float64, len(palette)),
	}
}

func (a *accumulator) add(p Pixel) {
	scoreInto(a.buf, p.ToHSV())
	for i, s := range a.buf {
		a.sums[i] += s
	}
	a.count++
}

func (a *accumulator) merge(o *accumulator) {
	floats.Add(a.sums, o.sums)
	a.count += o.count
}

func (a *accumulator) scores() Scores {
	if a.count == 0 {
		return uniform()
	}
	means := make([]float64, len(a.sums))
	for i, s := range a.sums {
		means[i] = s / float64(a.count)
	}
	total := floats.Sum(means)
	if !(total > 0) {
		return uniform()
	}
	out := make(Scores, len(palette))
	for i := range palette {
		out[palette[i].Name] = means[i] / total
	}
	return out
}

func uniform() Scores {
	out := make(Scores, len(palette))
	for i := range palette {
		out[palette[i].Name] = 1.0 / float64(len(palette))
	}
	return out
}

func accumulate(sample []Pixel, workers int) *accumulator {
	if workers < 2 || len(sample) < 2*workers {
		acc := newAccumulator()
		for _, p := range sample {
			acc.add(p)
		}
		return acc
	}

	parts := make([]*accumulator, workers)
	chunk := (len(sample) + workers - 1) / workers
	var g errgroup.Group
	for w := range workers {
		lo := min(w*chunk, len(sample))
		hi := min(lo+chunk, len(sample))
		part := newAccumulator()
		parts[w] = part
		g.Go(func() error {
			for _, p := range sample[lo:hi] {
				part.add(p)
			}
			return nil
		})
	}
	// Workers never fail.
	_ = g.Wait()

	acc := newAccumulator()
	for _, part := range parts {
		acc.merge(part)
	}
	return acc
}
