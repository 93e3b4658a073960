package main

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/mat"
)

// dedupRows removes exact duplicates of the combined [X|y] rows, keeping
// first occurrences in order. Equality is on the float64 bit patterns, so
// two NaNs compare equal here.
func dedupRows(x *mat.Dense, y *mat.VecDense) (*mat.Dense, *mat.VecDense) {
	rows, cols := x.Dims()
	seen := make(map[string]bool, rows)
	keep := make([]int, 0, rows)

	buf := make([]byte, (cols+1)*8)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			binary.LittleEndian.PutUint64(buf[j*8:], math.Float64bits(x.At(i, j)))
		}
		binary.LittleEndian.PutUint64(buf[cols*8:], math.Float64bits(y.AtVec(i)))
		key := string(buf)
		if seen[key] {
			continue
		}
		seen[key] = true
		keep = append(keep, i)
	}
	if len(keep) == rows {
		return x, y
	}

	outX := mat.NewDense(len(keep), cols, nil)
	outY := mat.NewVecDense(len(keep), nil)
	for i, r := range keep {
		for j := 0; j < cols; j++ {
			outX.Set(i, j, x.At(r, j))
		}
		outY.SetVec(i, y.AtVec(r))
	}
	return outX, outY
}
