package stages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhprep/hhprep/pipeline"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVLoader(t *testing.T) {
	csvText := "\uFEFFUnnamed: 0,Город,ЗП\n" +
		"0,Москва,27000 руб.\n" +
		"1,,15000 руб.\n"
	path := writeTempCSV(t, csvText)

	ctx, err := NewCSVLoader(path).Process(&pipeline.Context{})
	require.NoError(t, err)

	f := ctx.Frame
	// index residue dropped, BOM stripped from the first header
	assert.Equal(t, []string{colCity, colSalary}, f.Columns())
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, "Москва", f.At(0, colCity).String())
	// an empty cell is missing, not an empty string
	assert.True(t, f.At(1, colCity).IsMissing())
}

func TestCSVLoaderRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "a,b\nx\ny,z\n")

	ctx, err := NewCSVLoader(path).Process(&pipeline.Context{})
	require.NoError(t, err)

	f := ctx.Frame
	require.Equal(t, 2, f.NumRows())
	assert.True(t, f.At(0, "b").IsMissing())
	assert.Equal(t, "z", f.At(1, "b").String())
}

func TestCSVLoaderMissingFile(t *testing.T) {
	_, err := NewCSVLoader(filepath.Join(t.TempDir(), "absent.csv")).Process(&pipeline.Context{})
	assert.Error(t, err)
}
