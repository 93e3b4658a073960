package stages

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/persist"
	"github.com/hhprep/hhprep/pipeline"
)

func TestSaveArraysStage(t *testing.T) {
	dir := t.TempDir()
	ctx := &pipeline.Context{
		X: mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		Y: mat.NewVecDense(2, []float64{10, 20}),
	}

	_, err := (&SaveArraysStage{Dir: dir}).Process(ctx)
	require.NoError(t, err)

	x, err := persist.ReadMatrixNpy(filepath.Join(dir, "x_data.npy"))
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(ctx.X, x, 0))

	y, err := persist.ReadVectorNpy(filepath.Join(dir, "y_data.npy"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, y.AtVec(0))
	assert.Equal(t, 20.0, y.AtVec(1))
}

func TestSaveArraysStageWithoutArrays(t *testing.T) {
	_, err := (&SaveArraysStage{Dir: t.TempDir()}).Process(&pipeline.Context{})
	assert.Error(t, err)
}

func TestSaveFrameStage(t *testing.T) {
	f := frame.New("a")
	require.NoError(t, f.AppendRow(frame.Str("x")))

	path := filepath.Join(t.TempDir(), "snap.csv")
	_, err := (&SaveFrameStage{Path: path}).Process(&pipeline.Context{Frame: f})
	require.NoError(t, err)
	assert.FileExists(t, path)
}
