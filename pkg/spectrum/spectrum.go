// Package spectrum renders the centered Fourier spectrum of an image for
// display.
package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/jpfielding/fourier.go/pkg/transform"
	"gonum.org/v1/gonum/mat"
)

var ErrUnknownView = errors.New("unknown spectrum view")

// View selects which component of the spectrum is rendered
type View int

const (
	Magnitude View = iota
	RealPart
	ImagPart
)

// Views lists every view in display order
var Views = []View{Magnitude, RealPart, ImagPart}

var viewNames = []string{"fft", "fft-real", "fft-imag"}

// String is the image kind the view is stored under
func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView resolves fft, fft-real or fft-imag
func ParseView(s string) (View, error) {
	for i, n := range viewNames {
		if n == s {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Centered is the shifted 2-D DFT of img
func Centered(img mat.Matrix) *mat.CDense {
	return transform.Shift(transform.DFT2(transform.Complex(img)))
}

// Render returns log(1+|x|) of the selected component of the centered
// spectrum.
func Render(img mat.Matrix, v View) (*mat.Dense, error) {
	var part *mat.Dense
	spec := Centered(img)
	switch v {
	case Magnitude:
		part = transform.Abs(spec)
	case RealPart:
		part = transform.Real(spec)
	case ImagPart:
		part = transform.Imag(spec)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownView, v)
	}
	part.Apply(func(_, _ int, x float64) float64 {
		return math.Log1p(math.Abs(x))
	}, part)
	return part, nil
}
