package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when the input bytes are not a decodable image.
var ErrNotImage = errors.New("not an image")

// DecodeImage sniffs data and decodes it with the registered decoders
// (gif, jpeg, png, bmp, tiff, webp). It returns the format name.
func DecodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty input", ErrNotImage)
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		if kind == filetype.Unknown {
			return nil, "", fmt.Errorf("%w: unknown content", ErrNotImage)
		}
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

func ReadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Fit returns an opaque NRGBA copy of img with its longest side scaled
// down to maxSize. Alpha is dropped before resampling so pixels keep their
// stored colour regardless of transparency. New dimensions are truncated,
// never below one pixel. Images already within bounds keep their size;
// maxSize <= 0 disables scaling.
func Fit(img image.Image, maxSize int) *image.NRGBA {
	src := opaque(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	longest := max(w, h)
	if maxSize <= 0 || longest <= maxSize {
		return src
	}
	ratio := float64(maxSize) / float64(longest)
	nw := max(1, int(float64(w)*ratio))
	nh := max(1, int(float64(h)*ratio))
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// opaque copies img into a zero-origin NRGBA with non-premultiplied colour
// and alpha forced to 255.
func opaque(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var c color.NRGBA
			if n, ok := img.(*image.NRGBA); ok {
				c = n.NRGBAAt(x, y)
			} else {
				c = color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			}
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = 0xff
			i += 4
		}
	}
	return dst
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveLayers writes one PNG per category layer into dir, named
// "<prefix>_<category>.png" in lower case.
func SaveLayers[T image.Image](layers []T, names []string, dir, prefix string) error {
	if len(layers) != len(names) {
		return fmt.Errorf("save layers: %d layers for %d names", len(layers), len(names))
	}
	for i := range layers {
		name := fmt.Sprintf("%s_%s.png", prefix, strings.ToLower(names[i]))
		if err := SaveImage(layers[i], filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
