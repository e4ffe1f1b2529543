package transform

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Complex widens a real matrix to a complex one with zero imaginary part
func Complex(m mat.Matrix) *mat.CDense {
	r, c := m.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, complex(m.At(i, j), 0))
		}
	}
	return out
}

// Real returns the real parts of x
func Real(x *mat.CDense) *mat.Dense {
	return apply(x, func(v complex128) float64 { return real(v) })
}

// Imag returns the imaginary parts of x
func Imag(x *mat.CDense) *mat.Dense {
	return apply(x, func(v complex128) float64 { return imag(v) })
}

// Abs returns the elementwise magnitude of x
func Abs(x *mat.CDense) *mat.Dense {
	return apply(x, cmplx.Abs)
}

func apply(x *mat.CDense, fn func(complex128) float64) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, fn(x.At(i, j)))
		}
	}
	return out
}

func join(re, im *mat.Dense) *mat.CDense {
	r, c := re.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, complex(re.At(i, j), im.At(i, j)))
		}
	}
	return out
}
