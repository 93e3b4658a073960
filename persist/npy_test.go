package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatrixNpyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.npy")
	want := mat.NewDense(2, 3, []float64{1, 2, 3, 4.5, -6, 0})

	require.NoError(t, WriteMatrixNpy(path, want))
	got, err := ReadMatrixNpy(path)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(want, got, 0))
}

func TestVectorNpyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "y.npy")
	want := mat.NewVecDense(4, []float64{10, 20.5, -3, 0})

	require.NoError(t, WriteVectorNpy(path, want))
	got, err := ReadVectorNpy(path)
	require.NoError(t, err)

	require.Equal(t, want.Len(), got.Len())
	for i := 0; i < want.Len(); i++ {
		assert.Equal(t, want.AtVec(i), got.AtVec(i), "index %d", i)
	}
}

func TestNpyHeaderAlignment(t *testing.T) {
	for _, shape := range [][]int{{3}, {2, 3}, {100, 17}} {
		header := npyHeader(shape...)
		total := len(npyMagic) + 2 + len(header)
		assert.Zero(t, total%npyAlign, "shape %v", shape)
		assert.Equal(t, byte('\n'), header[len(header)-1])
	}
}

func TestReadNpyRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.npy")
	require.NoError(t, os.WriteFile(path, []byte("not an array"), 0o644))

	_, _, err := ReadNpy(path)
	assert.Error(t, err)
}

func TestReadMatrixNpyRejectsVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "y.npy")
	require.NoError(t, WriteVectorNpy(path, mat.NewVecDense(2, []float64{1, 2})))

	_, err := ReadMatrixNpy(path)
	assert.Error(t, err)
}
