package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/setanarut/huescore/config"
	"github.com/setanarut/huescore/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := range 16 {
		for x := range 16 {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "white.png")
	writePNG(t, path, color.White)
	strip := filepath.Join(dir, "strip.png")

	out, err := run(t, "analyze", "img-1", path, "--strip", strip)
	require.NoError(t, err)
	assert.Contains(t, out, "Analyzing img-1...")
	assert.Contains(t, out, "  White    "+strings.Repeat("█", 30)+" 100.0%")
	assert.FileExists(t, strip)

	_, err = run(t, "analyze", "img-2", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestAnalyzeUpload(t *testing.T) {
	var got upload.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"ok":true,"image_id":"`+got.ImageID+`","message":"Color analysis uploaded successfully"}`)
	}))
	defer srv.Close()

	t.Setenv(config.EnvToken, "tok")
	t.Setenv(config.EnvBaseURL, srv.URL)

	path := filepath.Join(t.TempDir(), "black.png")
	writePNG(t, path, color.Black)
	_, err := run(t, "analyze", "img-3", path, "--upload")
	require.NoError(t, err)
	assert.Equal(t, "img-3", got.ImageID)
	assert.Equal(t, path, got.ImageURL)
	assert.InDelta(t, 1.0, got.Colors["Black"], 1e-9)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "red.png"), color.RGBA{255, 0, 0, 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("nope"), 0o644))

	out, err := run(t, "batch", dir, "--sample-cap", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Analyzing 2 images")
	assert.Contains(t, out, "\nred\n")
	assert.Contains(t, out, "✗ Failed to analyze")
	assert.Less(t, strings.Index(out, "\nbad\n"), strings.Index(out, "\nred\n"))

	_, err = run(t, "batch", t.TempDir())
	assert.Error(t, err)
}

func TestSwatchesCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blue.png")
	writePNG(t, path, color.RGBA{0, 0, 255, 255})

	out, err := run(t, "swatches", path, "-k", "2", "-o", filepath.Join(dir, "sw.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "Blue")

	_, err = run(t, "swatches", path, "--method", "median-cut")
	assert.Error(t, err)
}

func TestBadFlags(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "batch", t.TempDir())
	assert.Error(t, err)

	_, err = run(t, "--sample-cap", "-5", "batch", t.TempDir())
	assert.Error(t, err)
}

func TestLayersCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "red.png")
	writePNG(t, path, color.RGBA{255, 0, 0, 255})
	outDir := filepath.Join(dir, "layers")

	_, err := run(t, "layers", path, outDir, "--rgba")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "rgba_red.png"))
	assert.FileExists(t, filepath.Join(outDir, "dominant.png"))
}
