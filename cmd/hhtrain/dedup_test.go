package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestDedupRows(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 2,
		1, 2,
		1, 2,
		3, 4,
	})
	y := mat.NewVecDense(4, []float64{10, 10, 99, 10})

	outX, outY := dedupRows(x, y)

	// rows 0 and 1 agree on both features and target; row 2 differs in y
	r, _ := outX.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 10.0, outY.AtVec(0))
	assert.Equal(t, 99.0, outY.AtVec(1))
	assert.Equal(t, 10.0, outY.AtVec(2))
	assert.Equal(t, 3.0, outX.At(2, 0))
}

func TestDedupRowsNoDuplicates(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{1, 2})
	y := mat.NewVecDense(2, []float64{5, 6})

	outX, outY := dedupRows(x, y)
	assert.Equal(t, x, outX)
	assert.Equal(t, y, outY)
}
