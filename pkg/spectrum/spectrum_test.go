package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRender_ConstantImage(t *testing.T) {
	data := make([]float64, 16)
	for i := range data {
		data[i] = 3
	}
	img := mat.NewDense(4, 4, data)

	got, err := Render(img, Magnitude)
	require.NoError(t, err)
	// all energy sits in the centered DC term
	assert.InDelta(t, math.Log1p(48), got.At(2, 2), 1e-9)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == 2 && j == 2 {
				continue
			}
			assert.InDelta(t, 0, got.At(i, j), 1e-9)
		}
	}

	im, err := Render(img, ImagPart)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(mat.NewDense(4, 4, nil), im, 1e-9))
}

func TestRender_NonNegative(t *testing.T) {
	img := mat.NewDense(4, 4, []float64{
		0, 10, 0, 10,
		50, 0, 50, 0,
		1, 2, 3, 4,
		255, 0, 128, 64,
	})
	for _, v := range Views {
		got, err := Render(img, v)
		require.NoError(t, err, v.String())
		assert.GreaterOrEqual(t, mat.Min(got), 0.0, v.String())
	}
}

func TestParseView(t *testing.T) {
	for _, v := range Views {
		got, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := ParseView("phase")
	assert.ErrorIs(t, err, ErrUnknownView)

	_, err = Render(mat.NewDense(2, 2, nil), View(9))
	assert.ErrorIs(t, err, ErrUnknownView)
}
