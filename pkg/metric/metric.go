// Package metric measures the difference between two images.
package metric

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrShapeMismatch = errors.New("image shapes differ")

// MSE is the mean squared error between a and b, sum((a-b)^2)/(rows*cols)
func MSE(a, b mat.Matrix) (float64, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, ar, ac, br, bc)
	}
	var d mat.Dense
	d.Sub(a, b)
	fro := mat.Norm(&d, 2)
	return fro * fro / float64(ar*ac), nil
}
