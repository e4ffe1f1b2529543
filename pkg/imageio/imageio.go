// Package imageio moves images between encoded files and the float matrices
// consumed by the transform packages. Decoded images are reduced to a single
// luminance channel.
package imageio

import (
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Extensions accepted for uploads
var Extensions = []string{"png", "jpg", "jpeg"}

// CheckExt validates the extension of name against Extensions
func CheckExt(name string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, e := range Extensions {
		if e == ext {
			return nil
		}
	}
	return errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
}

// Decode reads a png or jpeg image
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "image decoding failed")
	}
	return img, nil
}

// Load opens and decodes the image at path
func Load(path string) (image.Image, error) {
	if err := CheckExt(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()
	return Decode(f)
}

// Matrix converts img to a rows×cols matrix of luminance values in [0, 255]
func Matrix(img image.Image) *mat.Dense {
	g := imaging.Grayscale(img)
	b := g.Bounds()
	m := mat.NewDense(b.Dy(), b.Dx(), nil)
	for y := 0; y < b.Dy(); y++ {
		row := g.Pix[y*g.Stride:]
		for x := 0; x < b.Dx(); x++ {
			m.Set(y, x, float64(row[x*4]))
		}
	}
	return m
}

// Fit scales img down so neither side exceeds size, keeping its aspect.
// size <= 0 disables it.
func Fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() <= size && b.Dy() <= size) {
		return img
	}
	return resize.Thumbnail(uint(size), uint(size), img, resize.Lanczos3)
}

// Align center crops img so both sides are multiples of block.
func Align(img image.Image, block int) (image.Image, error) {
	b := img.Bounds()
	w, h := b.Dx()-b.Dx()%block, b.Dy()-b.Dy()%block
	if w == 0 || h == 0 {
		return nil, errors.Errorf("image %dx%d is smaller than one %dx%d block", b.Dx(), b.Dy(), block, block)
	}
	if w == b.Dx() && h == b.Dy() {
		return img, nil
	}
	return imaging.CropAnchor(img, w, h, imaging.Center), nil
}

// Gray clamps m to [0, 255] and rounds it into a displayable image
func Gray(m mat.Matrix) *image.Gray {
	r, c := m.Dims()
	g := image.NewGray(image.Rect(0, 0, c, r))
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			g.SetGray(x, y, color.Gray{Y: clamp(m.At(y, x))})
		}
	}
	return g
}

// Normalize linearly stretches m onto [0, 255]. A flat m maps to zero.
func Normalize(m mat.Matrix) *image.Gray {
	lo, hi := mat.Min(m), mat.Max(m)
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	if hi > lo {
		out.Apply(func(i, j int, v float64) float64 {
			return (v - lo) * 255 / (hi - lo)
		}, m)
	}
	return Gray(out)
}

// Encode writes img as png
func Encode(w io.Writer, img image.Image) error {
	return errors.Wrap(imaging.Encode(w, img, imaging.PNG), "image encoding failed")
}

// Save writes m to path as a png, clamping and rounding each sample
func Save(path string, m mat.Matrix) error {
	return SaveImage(path, Gray(m))
}

// SaveImage writes img to path as a png
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create image")
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func clamp(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}
