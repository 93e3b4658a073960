package linear

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// y = 2x + 1 without noise; tiny alpha should recover it closely.
func linearData() (*mat.Dense, *mat.VecDense) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	x := mat.NewDense(len(xs), 1, xs)
	y := mat.NewVecDense(len(xs), nil)
	for i, v := range xs {
		y.SetVec(i, 2*v+1)
	}
	return x, y
}

func TestRidgeRecoversLinearRelation(t *testing.T) {
	x, y := linearData()
	model := NewRidge(WithAlpha(1e-8))
	require.NoError(t, model.Fit(x, y))
	require.True(t, model.IsFitted())

	assert.InDelta(t, 2.0, model.Weights().AtVec(0), 1e-6)
	assert.InDelta(t, 1.0, model.Intercept(), 1e-6)

	pred, err := model.Predict(mat.NewDense(2, 1, []float64{10, 20}))
	require.NoError(t, err)
	assert.InDelta(t, 21.0, pred.AtVec(0), 1e-5)
	assert.InDelta(t, 41.0, pred.AtVec(1), 1e-5)
}

func TestRidgeShrinksWithLargeAlpha(t *testing.T) {
	x, y := linearData()
	small := NewRidge(WithAlpha(1e-8))
	large := NewRidge(WithAlpha(1e6))
	require.NoError(t, small.Fit(x, y))
	require.NoError(t, large.Fit(x, y))

	assert.Less(t,
		large.Weights().AtVec(0),
		small.Weights().AtVec(0))
}

func TestRidgePredictBeforeFit(t *testing.T) {
	_, err := NewRidge().Predict(mat.NewDense(1, 1, []float64{1}))
	assert.Error(t, err)
}

func TestRidgePredictDimensionMismatch(t *testing.T) {
	x, y := linearData()
	model := NewRidge()
	require.NoError(t, model.Fit(x, y))

	_, err := model.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	assert.Error(t, err)
}

func TestRidgeLogTargetRoundTrip(t *testing.T) {
	// constant target survives the log1p/expm1 round trip exactly
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{100, 100, 100, 100})

	model := NewRidge(WithAlpha(1e-8), WithLogTarget(true))
	require.NoError(t, model.Fit(x, y))

	pred, err := model.Predict(x)
	require.NoError(t, err)
	for i := 0; i < pred.Len(); i++ {
		assert.InDelta(t, 100.0, pred.AtVec(i), 1e-6)
	}
}

func TestRidgeSaveLoad(t *testing.T) {
	x, y := linearData()
	model := NewRidge(WithAlpha(0.5))
	require.NoError(t, model.Fit(x, y))

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, model.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, loaded.IsFitted())
	assert.Equal(t, model.Alpha(), loaded.Alpha())
	assert.InDelta(t, model.Intercept(), loaded.Intercept(), 1e-12)

	want, err := model.Predict(x)
	require.NoError(t, err)
	got, err := loaded.Predict(x)
	require.NoError(t, err)
	for i := 0; i < want.Len(); i++ {
		assert.InDelta(t, want.AtVec(i), got.AtVec(i), 1e-12)
	}
}

func TestSaveBeforeFit(t *testing.T) {
	err := NewRidge().Save(filepath.Join(t.TempDir(), "model.json"))
	assert.Error(t, err)
}
