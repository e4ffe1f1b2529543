// Package compress implements lossy block-wise transform-domain compression.
//
// The image is cut into 8x8 blocks and each block is transformed. Of all the
// resulting coefficients only the largest in magnitude, across every block,
// are kept. The rest are zeroed and the image is rebuilt block by block.
package compress

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"slices"

	"github.com/jpfielding/fourier.go/pkg/transform"
	"gonum.org/v1/gonum/mat"
)

// BlockSize is the edge of the square transform unit
const BlockSize = 8

var (
	ErrBlockAlignment = errors.New("image dimensions are not a multiple of the block size")
	ErrInvalidLevel   = errors.New("compression level must be within [0, 1]")
)

// Blocks applies fn to each non-overlapping size×size block of x and
// assembles the results into an array shaped like x.
func Blocks(x *mat.CDense, size int, fn transform.Func) (*mat.CDense, error) {
	r, c := x.Dims()
	if size <= 0 || r%size != 0 || c%size != 0 {
		return nil, fmt.Errorf("%w: %dx%d for block %d", ErrBlockAlignment, r, c, size)
	}
	out := mat.NewCDense(r, c, nil)
	blk := mat.NewCDense(size, size, nil)
	for bi := 0; bi < r; bi += size {
		for bj := 0; bj < c; bj += size {
			for i := 0; i < size; i++ {
				for j := 0; j < size; j++ {
					blk.Set(i, j, x.At(bi+i, bj+j))
				}
			}
			res := fn(blk)
			for i := 0; i < size; i++ {
				for j := 0; j < size; j++ {
					out.Set(bi+i, bj+j, res.At(i, j))
				}
			}
		}
	}
	return out, nil
}

// Keep is the number of coefficients retained out of total at level
func Keep(total int, level float64) int {
	return int(math.Round(float64(total) * (1 - level)))
}

// Truncate returns a copy of coeffs holding only the Keep(total, level)
// largest magnitude coefficients, and that count. Coefficients are ranked with
// a stable ascending sort over their row-major positions, so among equal
// magnitudes the later positions are kept.
func Truncate(coeffs *mat.CDense, level float64) (*mat.CDense, int) {
	r, c := coeffs.Dims()
	total := r * c
	n := min(max(Keep(total, level), 0), total)

	mags := make([]float64, total)
	idx := make([]int, total)
	for k := range idx {
		idx[k] = k
		mags[k] = cmplx.Abs(coeffs.At(k/c, k%c))
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(mags[a], mags[b])
	})

	out := mat.NewCDense(r, c, nil)
	for _, k := range idx[total-n:] {
		out.Set(k/c, k%c, coeffs.At(k/c, k%c))
	}
	return out, n
}

// Compress discards the level fraction of img's block transform coefficients
// under pair and returns the real part of the reconstruction.
func Compress(img mat.Matrix, level float64, pair transform.Pair) (*mat.Dense, error) {
	if math.IsNaN(level) || level < 0 || level > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, level)
	}
	coeffs, err := Blocks(transform.Complex(img), BlockSize, pair.Forward)
	if err != nil {
		return nil, err
	}
	kept, _ := Truncate(coeffs, level)
	rec, err := Blocks(kept, BlockSize, pair.Inverse)
	if err != nil {
		return nil, err
	}
	return transform.Real(rec), nil
}

// DFT compresses img with the discrete Fourier transform
func DFT(img mat.Matrix, level float64) (*mat.Dense, error) {
	return Compress(img, level, transform.DFT)
}

// DCT compresses img with the discrete cosine transform
func DCT(img mat.Matrix, level float64) (*mat.Dense, error) {
	return Compress(img, level, transform.DCT)
}

// Image compresses img with the named method (dft or dct)
func Image(ctx context.Context, img mat.Matrix, level float64, method string) (*mat.Dense, error) {
	pair, err := transform.Lookup(method)
	if err != nil {
		return nil, err
	}
	r, c := img.Dims()
	slog.DebugContext(ctx, "compressing image", "method", pair.Name, "level", level,
		"rows", r, "cols", c, "keep", Keep(r*c, level))
	return Compress(img, level, pair)
}
