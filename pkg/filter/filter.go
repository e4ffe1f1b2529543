// Package filter applies frequency-domain filter kernels to grayscale images.
package filter

import (
	"context"
	"log/slog"
	"math"

	"github.com/jpfielding/fourier.go/pkg/kernel"
	"github.com/jpfielding/fourier.go/pkg/transform"
	"gonum.org/v1/gonum/mat"
)

// Distance from (u, v) to the center of a rows×cols spectrum
func Distance(u, v, rows, cols int) float64 {
	du := float64(u) - float64(rows)/2
	dv := float64(v) - float64(cols)/2
	return math.Sqrt(du*du + dv*dv)
}

// Apply filters img with resp. The centered spectrum of img is weighted by
// resp evaluated at each coefficient's distance from the center, inverse
// transformed as is, and reduced to its magnitude.
func Apply(img mat.Matrix, resp kernel.Response) *mat.Dense {
	spec := transform.Shift(transform.DFT2(transform.Complex(img)))
	r, c := spec.Dims()
	for u := 0; u < r; u++ {
		for v := 0; v < c; v++ {
			w := resp(Distance(u, v, r, c))
			spec.Set(u, v, spec.At(u, v)*complex(w, 0))
		}
	}
	return transform.Abs(transform.IDFT2(spec))
}

// Image resolves the family/shape kernel, binds opts to it and applies it.
func Image(ctx context.Context, img mat.Matrix, family, shape string, opts map[string]float64) (*mat.Dense, error) {
	k, err := kernel.Lookup(family, shape)
	if err != nil {
		return nil, err
	}
	resp, err := k.Bind(opts)
	if err != nil {
		return nil, err
	}
	r, c := img.Dims()
	slog.DebugContext(ctx, "applying filter", "kernel", k.String(), "options", opts, "rows", r, "cols", c)
	return Apply(img, resp), nil
}

// MaxDistance is the largest center distance in a rows×cols spectrum
func MaxDistance(rows, cols int) float64 {
	return Distance(0, 0, rows, cols)
}
