package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	s := NewStandardScaler()
	out, err := s.FitTransform(X)
	require.NoError(t, err)

	// first column standardized
	r, _ := out.Dims()
	mean, variance := 0.0, 0.0
	for i := 0; i < r; i++ {
		mean += out.At(i, 0)
	}
	mean /= float64(r)
	for i := 0; i < r; i++ {
		d := out.At(i, 0) - mean
		variance += d * d
	}
	variance /= float64(r)

	assert.InDelta(t, 0.0, mean, 1e-12)
	assert.InDelta(t, 1.0, variance, 1e-12)

	// constant column passes through centered, not divided by zero
	for i := 0; i < r; i++ {
		assert.False(t, math.IsNaN(out.At(i, 1)))
		assert.InDelta(t, 0.0, out.At(i, 1), 1e-12)
	}
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

	_, err := s.Transform(mat.NewDense(2, 3, nil))
	assert.Error(t, err)
}

func TestStandardScalerNotFitted(t *testing.T) {
	s := NewStandardScaler()
	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	assert.Error(t, err)
}
