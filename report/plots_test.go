package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSaveTargetHistogram(t *testing.T) {
	y := mat.NewVecDense(6, []float64{10000, 20000, 20000, 30000, 50000, 90000})
	path := filepath.Join(t.TempDir(), "hist.png")

	require.NoError(t, SaveTargetHistogram(path, y, 10))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePredictedVsActual(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1.1, 1.9, 3.2, 3.8})
	path := filepath.Join(t.TempDir(), "scatter.png")

	require.NoError(t, SavePredictedVsActual(path, yTrue, yPred))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePredictedVsActualDimensionMismatch(t *testing.T) {
	err := SavePredictedVsActual(
		filepath.Join(t.TempDir(), "scatter.png"),
		mat.NewVecDense(2, []float64{1, 2}),
		mat.NewVecDense(3, []float64{1, 2, 3}),
	)
	assert.Error(t, err)
}
