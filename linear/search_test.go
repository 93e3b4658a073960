package linear

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAlphaGrid(t *testing.T) {
	grid := AlphaGrid(-2, 2, 5)
	require.Len(t, grid, 5)
	assert.InDelta(t, 0.01, grid[0], 1e-12)
	assert.InDelta(t, 1.0, grid[2], 1e-12)
	assert.InDelta(t, 100.0, grid[4], 1e-12)

	single := AlphaGrid(-1, 3, 1)
	require.Len(t, single, 1)
	assert.InDelta(t, 0.1, single[0], 1e-12)
}

func noisyLinearData(n int, seed int64) (*mat.Dense, *mat.VecDense) {
	rng := rand.New(rand.NewSource(seed))
	x := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		a, b := rng.Float64()*10, rng.Float64()*10
		x.Set(i, 0, a)
		x.Set(i, 1, b)
		y.SetVec(i, 3*a-2*b+5+rng.NormFloat64()*0.1)
	}
	return x, y
}

func TestSearchAlphaPicksSmallAlphaOnCleanData(t *testing.T) {
	x, y := noisyLinearData(80, 1)

	res, err := SearchAlpha(x, y, AlphaGrid(-4, 4, 9), 4, 42)
	require.NoError(t, err)
	require.NotNil(t, res.Model)
	require.True(t, res.Model.IsFitted())

	// near-noiseless linear data favors weak regularization
	assert.Less(t, res.Alpha, 1.0)
	assert.Equal(t, res.Alpha, res.Model.Alpha())
}

func TestSearchAlphaIsDeterministic(t *testing.T) {
	x, y := noisyLinearData(60, 2)
	grid := AlphaGrid(-3, 3, 7)

	a, err := SearchAlpha(x, y, grid, 3, 7)
	require.NoError(t, err)
	b, err := SearchAlpha(x, y, grid, 3, 7)
	require.NoError(t, err)

	assert.Equal(t, a.Alpha, b.Alpha)
	assert.Equal(t, a.MSE, b.MSE)
}

func TestSearchAlphaValidation(t *testing.T) {
	x, y := noisyLinearData(10, 3)

	_, err := SearchAlpha(x, y, nil, 3, 1)
	assert.Error(t, err)
	_, err = SearchAlpha(x, y, []float64{1}, 1, 1)
	assert.Error(t, err)
	_, err = SearchAlpha(x, y, []float64{1}, 11, 1)
	assert.Error(t, err)
}

func TestTrainTestSplit(t *testing.T) {
	x, y := noisyLinearData(10, 4)

	xTrain, xTest, yTrain, yTest, err := TrainTestSplit(x, y, 0.3, 1)
	require.NoError(t, err)

	rTrain, _ := xTrain.Dims()
	rTest, _ := xTest.Dims()
	assert.Equal(t, 7, rTrain)
	assert.Equal(t, 3, rTest)
	assert.Equal(t, 7, yTrain.Len())
	assert.Equal(t, 3, yTest.Len())

	_, _, _, _, err = TrainTestSplit(x, y, 0, 1)
	assert.Error(t, err)
}
