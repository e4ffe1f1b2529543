package imageio

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func grayImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*7 + y*3) % 256)})
		}
	}
	return img
}

func TestCheckExt(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"lena.png", true},
		{"lena.PNG", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"anim.gif", false},
		{"noext", false},
	}
	for _, tt := range tests {
		err := CheckExt(tt.name)
		if tt.ok {
			assert.NoError(t, err, tt.name)
			continue
		}
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), tt.name)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	src := grayImage(24, 16)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src))

	img, err := Decode(&buf)
	require.NoError(t, err)
	m := Matrix(img)
	r, c := m.Dims()
	require.Equal(t, 16, r)
	require.Equal(t, 24, c)
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			assert.Equal(t, float64(src.GrayAt(x, y).Y), m.At(y, x), "(%d,%d)", x, y)
		}
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image decoding failed")
}

func TestMatrix_Luminance(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	m := Matrix(img)
	// 0.299 * 255
	assert.InDelta(t, 76, m.At(0, 0), 1)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	m := mat.NewDense(2, 3, []float64{-20, 0, 10.4, 10.6, 254.5, 300})
	require.NoError(t, Save(path, m))

	img, err := Load(path)
	require.NoError(t, err)
	got := Matrix(img)
	assert.Equal(t, []float64{0, 0, 10, 11, 255, 255}, got.RawMatrix().Data)

	_, err = Load(filepath.Join(t.TempDir(), "out.bmp"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestNormalize(t *testing.T) {
	g := Normalize(mat.NewDense(1, 3, []float64{-1, 0, 1}))
	assert.Equal(t, []uint8{0, 128, 255}, g.Pix)

	flat := Normalize(mat.NewDense(1, 2, []float64{5, 5}))
	assert.Equal(t, []uint8{0, 0}, flat.Pix)
}

func TestFit(t *testing.T) {
	img := grayImage(100, 50)
	got := Fit(img, 40)
	assert.Equal(t, 40, got.Bounds().Dx())
	assert.Equal(t, 20, got.Bounds().Dy())

	assert.Same(t, img, Fit(img, 0))
	assert.Same(t, img, Fit(img, 100))
}

func TestAlign(t *testing.T) {
	got, err := Align(grayImage(20, 13), 8)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Bounds().Dx())
	assert.Equal(t, 8, got.Bounds().Dy())

	img := grayImage(16, 8)
	got, err = Align(img, 8)
	require.NoError(t, err)
	assert.Same(t, img, got)

	_, err = Align(grayImage(7, 30), 8)
	assert.Error(t, err)
}
