package frame

import "sort"

// Median returns the sample median: the middle value for an odd count,
// the average of the two middle values for an even count. The second
// return is false for an empty slice.
func Median(xs []float64) (float64, bool) {
	n := len(xs)
	if n == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return (sorted[(n-1)/2] + sorted[n/2]) / 2, true
}

// ColumnFloats returns the non-missing cells of the column coerced to
// float64, skipping unparsable values.
func (f *Frame) ColumnFloats(col string) []float64 {
	j, ok := f.index[col]
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(f.rows))
	for i := range f.rows {
		if v, ok := f.rows[i][j].AsFloat(); ok {
			out = append(out, v)
		}
	}
	return out
}

// ColumnMedian returns the median of the column's surviving numeric values.
// The second return is false when the column is absent or has no numbers.
func (f *Frame) ColumnMedian(col string) (float64, bool) {
	return Median(f.ColumnFloats(col))
}

// ColumnHasMissing reports whether any cell of the column is missing.
func (f *Frame) ColumnHasMissing(col string) bool {
	j, ok := f.index[col]
	if !ok {
		return false
	}
	for i := range f.rows {
		if f.rows[i][j].IsMissing() {
			return true
		}
	}
	return false
}
