package huescore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorZeroTotalIsUniform(t *testing.T) {
	acc := newAccumulator()
	acc.count = 42

	got := acc.scores()
	require.Len(t, got, len(palette))
	for name, v := range got {
		assert.Equal(t, 1.0/float64(len(palette)), v, name)
	}
}

func TestAccumulatorMerge(t *testing.T) {
	px := []Pixel{{255, 0, 0}, {0, 0, 0}, {12, 200, 99}, {255, 255, 255}}

	whole := newAccumulator()
	for _, p := range px {
		whole.add(p)
	}

	a, b := newAccumulator(), newAccumulator()
	a.add(px[0])
	a.add(px[1])
	b.add(px[2])
	b.add(px[3])
	a.merge(b)

	assert.Equal(t, whole.count, a.count)
	assert.InDeltaSlice(t, whole.sums, a.sums, 1e-12)
}
