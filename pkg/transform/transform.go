// Package transform implements the separable 2-D frequency transforms used by
// the filter and compression packages: the discrete Fourier transform and the
// orthonormal discrete cosine transform (type II), plus their inverses.
//
// Every 2-D transform applies the matching 1-D transform along axis 0 (each
// column) and then along axis 1 (each row) of the intermediate result.
package transform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// ErrUnknownTransform is returned by Lookup for unsupported method keys
var ErrUnknownTransform = errors.New("unknown transform")

// Func maps a complex 2-D array to a new array of the same shape.
// Implementations never modify their input.
type Func func(*mat.CDense) *mat.CDense

// Pair binds a forward transform to its inverse under a method name.
type Pair struct {
	Name    string
	Forward Func
	Inverse Func
}

var (
	DFT = Pair{Name: "dft", Forward: DFT2, Inverse: IDFT2}
	DCT = Pair{Name: "dct", Forward: DCT2, Inverse: IDCT2}
)

// Pairs lists the supported transform pairs in display order
var Pairs = []Pair{DFT, DCT}

// Lookup resolves a method key (dft, dct) to its transform pair
func Lookup(name string) (Pair, error) {
	for _, p := range Pairs {
		if p.Name == name {
			return p, nil
		}
	}
	return Pair{}, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
}

// DFT2 computes the unnormalized 2-D discrete Fourier transform of x.
func DFT2(x *mat.CDense) *mat.CDense {
	return separable(x, func(n int) func(dst, src []complex128) {
		ft := fourier.NewCmplxFFT(n)
		return func(dst, src []complex128) {
			ft.Coefficients(dst, src)
		}
	})
}

// IDFT2 computes the inverse of DFT2, including the 1/(rows*cols) scaling.
func IDFT2(x *mat.CDense) *mat.CDense {
	return separable(x, func(n int) func(dst, src []complex128) {
		ft := fourier.NewCmplxFFT(n)
		scale := complex(1/float64(n), 0)
		return func(dst, src []complex128) {
			ft.Sequence(dst, src)
			for i := range dst {
				dst[i] *= scale
			}
		}
	})
}

// separable applies a 1-D transform to every column and then to every row.
// plan builds the 1-D transform for a given length.
func separable(x *mat.CDense, plan func(n int) func(dst, src []complex128)) *mat.CDense {
	r, c := x.Dims()
	out := mat.NewCDense(r, c, nil)

	colFn := plan(r)
	src, dst := make([]complex128, r), make([]complex128, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			src[i] = x.At(i, j)
		}
		colFn(dst, src)
		for i := 0; i < r; i++ {
			out.Set(i, j, dst[i])
		}
	}

	rowFn := plan(c)
	src, dst = make([]complex128, c), make([]complex128, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			src[j] = out.At(i, j)
		}
		rowFn(dst, src)
		for j := 0; j < c; j++ {
			out.Set(i, j, dst[j])
		}
	}
	return out
}

// DCT2 computes the orthonormal 2-D DCT-II of x. Real and imaginary parts are
// transformed independently.
func DCT2(x *mat.CDense) *mat.CDense {
	r, c := x.Dims()
	cr, cc := cosineBasis(r), cosineBasis(c)
	return join(
		sandwich(cr, Real(x), cc.T()),
		sandwich(cr, Imag(x), cc.T()),
	)
}

// IDCT2 computes the orthonormal 2-D DCT-III of x, the inverse of DCT2.
func IDCT2(x *mat.CDense) *mat.CDense {
	r, c := x.Dims()
	cr, cc := cosineBasis(r), cosineBasis(c)
	return join(
		sandwich(cr.T(), Real(x), cc),
		sandwich(cr.T(), Imag(x), cc),
	)
}

// cosineBasis returns the n×n orthonormal DCT-II matrix,
// C[k][i] = s(k) cos(pi k (2i+1) / 2n) with s(0)=sqrt(1/n), s(k)=sqrt(2/n).
func cosineBasis(n int) *mat.Dense {
	b := mat.NewDense(n, n, nil)
	s0 := math.Sqrt(1 / float64(n))
	sk := math.Sqrt(2 / float64(n))
	for k := 0; k < n; k++ {
		s := sk
		if k == 0 {
			s = s0
		}
		for i := 0; i < n; i++ {
			b.Set(k, i, s*math.Cos(math.Pi*float64(k)*float64(2*i+1)/float64(2*n)))
		}
	}
	return b
}

// sandwich returns a·x·b
func sandwich(a, x, b mat.Matrix) *mat.Dense {
	var tmp, out mat.Dense
	tmp.Mul(a, x)
	out.Mul(&tmp, b)
	return &out
}

// Shift moves the zero-frequency term of x to the center of the array by
// rotating each axis by floor(n/2).
func Shift(x *mat.CDense) *mat.CDense {
	r, c := x.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set((i+r/2)%r, (j+c/2)%c, x.At(i, j))
		}
	}
	return out
}

// Unshift reverses Shift, including for odd dimensions.
func Unshift(x *mat.CDense) *mat.CDense {
	r, c := x.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, x.At((i+r/2)%r, (j+c/2)%c))
		}
	}
	return out
}
