package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pkg/errors"
)

func strVals(ss ...string) []frame.Value {
	out := make([]frame.Value, len(ss))
	for i, s := range ss {
		out[i] = frame.Str(s)
	}
	return out
}

func TestTopNCollapser(t *testing.T) {
	vals := strVals("москва", "москва", "москва", "казань", "казань", "тверь")
	vals = append(vals, frame.NA())

	out := NewTopNCollapser(2).FitTransform(vals)

	got := make([]string, len(out))
	for i, v := range out {
		got[i] = v.String()
	}
	assert.Equal(t, []string{"москва", "москва", "москва", "казань", "казань", "OTHER", "OTHER"}, got)
}

func TestTopNCollapserDeterministicTies(t *testing.T) {
	// b and c tie on count; name ascending keeps b
	vals := strVals("a", "a", "b", "c")
	out := NewTopNCollapser(2).FitTransform(vals)

	assert.Equal(t, "b", out[2].String())
	assert.Equal(t, "OTHER", out[3].String())
}

func TestOneHotEncoder(t *testing.T) {
	vals := strVals("руб", "usd", "руб", "OTHER")

	var e OneHotEncoder
	e.Fit(vals)
	assert.Equal(t, []string{"OTHER", "usd", "руб"}, e.Categories())

	cols, err := e.Transform(vals)
	require.NoError(t, err)
	require.Len(t, cols, 3)

	// no reference category dropped: each row has exactly one 1
	for i := range vals {
		sum := int64(0)
		for _, col := range cols {
			n, _ := col[i].AsInt()
			sum += n
		}
		assert.Equal(t, int64(1), sum, "row %d", i)
	}
}

func TestOneHotEncoderNotFitted(t *testing.T) {
	var e OneHotEncoder
	_, err := e.Transform(strVals("x"))
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))
}

func TestMultiHotEncoder(t *testing.T) {
	vals := []frame.Value{
		frame.Str("fullday|remote"),
		frame.Str("rotation"),
		frame.NA(),
		frame.Str(""),
	}

	e := NewMultiHotEncoder("|")
	e.Fit(vals)
	assert.Equal(t, []string{"fullday", "remote", "rotation"}, e.Tokens())

	cols, err := e.Transform(vals)
	require.NoError(t, err)

	one := func(k, i int) int64 {
		n, _ := cols[k][i].AsInt()
		return n
	}
	assert.Equal(t, int64(1), one(0, 0)) // fullday row 0
	assert.Equal(t, int64(1), one(1, 0)) // remote row 0
	assert.Equal(t, int64(0), one(2, 0))
	assert.Equal(t, int64(1), one(2, 1)) // rotation row 1
	assert.Equal(t, int64(0), one(0, 2)) // missing row all zero
	assert.Equal(t, int64(0), one(0, 3)) // empty row all zero
}

func TestOrdinalEncoder(t *testing.T) {
	e := &OrdinalEncoder{
		Column: "education_level",
		Ranks:  map[string]int{"school": 0, "vocational": 1, "higher": 2},
	}

	out, err := e.Transform(strVals("higher", "school", "vocational"))
	require.NoError(t, err)
	ranks := make([]int64, len(out))
	for i, v := range out {
		ranks[i], _ = v.AsInt()
	}
	assert.Equal(t, []int64{2, 0, 1}, ranks)

	_, err = e.Transform(strVals("unknown"))
	var se *errors.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "education_level", se.Column)
}

func TestImputeColumnMedian(t *testing.T) {
	f := frame.New("v")
	for _, v := range []frame.Value{frame.Float(1), frame.NA(), frame.Float(3), frame.Float(10)} {
		require.NoError(t, f.AppendRow(v))
	}

	ImputeColumnMedian(f, "v")

	got, ok := f.At(1, "v").AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 3.0, got, 1e-12)
	assert.False(t, f.ColumnHasMissing("v"))

	// absent column is a no-op
	ImputeColumnMedian(f, "ghost")
}
