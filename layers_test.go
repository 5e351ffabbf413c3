package huescore_test

import (
	"image"
	"image/color"
	"testing"

	. "github.com/setanarut/huescore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayers(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})

	l := NewLayers(img)
	require.Equal(t, 2, l.W)
	require.Equal(t, 1, l.H)
	require.Len(t, l.Weights, 2*len(Names()))

	gray := l.GrayLayers()
	require.Len(t, gray, len(Names()))
	black, red := 7, 0
	assert.Equal(t, uint8(255), gray[black].GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), gray[black].GrayAt(1, 0).Y)
	assert.Equal(t, uint8(255), gray[red].GrayAt(1, 0).Y)

	rgba := l.RGBALayers()
	require.Len(t, rgba, len(Names()))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, rgba[red].NRGBAAt(1, 0))
	assert.Equal(t, uint8(0), rgba[red].NRGBAAt(0, 0).A)

	dom := l.Dominant()
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, dom.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, dom.NRGBAAt(1, 0))
}

func TestLayersEmpty(t *testing.T) {
	l := NewLayers(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.Nil(t, l.GrayLayers())
	assert.Nil(t, l.RGBALayers())
}
