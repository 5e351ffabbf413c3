package utils

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func TestPickByCategory(t *testing.T) {
	cands := []candidate{
		newCandidate(rgb(255, 0, 0), 1),
		newCandidate(rgb(120, 0, 0), 0.5),
		newCandidate(rgb(255, 100, 0), 0.5),
	}
	require.Equal(t, "Red", cands[1].category)
	require.Equal(t, "Orange", cands[2].category)

	t.Run("one per category first", func(t *testing.T) {
		got := pickByCategory(cands, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "Red", got[0].category)
		assert.Equal(t, cands[0].col, got[0].col)
		assert.InDelta(t, 1.5, got[0].weight, 1e-9)
		assert.Equal(t, "Orange", got[1].category)
		assert.InDelta(t, 0.5, got[1].weight, 1e-9)
	})

	t.Run("spare slots split a category", func(t *testing.T) {
		got := pickByCategory(cands, 3)
		require.Len(t, got, 3)
		assert.Equal(t, cands[1].col, got[2].col)
		assert.InDelta(t, 1.0, got[0].weight, 1e-9)
		assert.InDelta(t, 0.5, got[2].weight, 1e-9)
	})

	assert.Empty(t, pickByCategory(cands, 0))
	assert.Empty(t, pickByCategory(nil, 3))
}
