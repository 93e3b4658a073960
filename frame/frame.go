// Package frame implements the in-memory record set the pipeline stages
// transform: an ordered table of rows whose cells are dynamically typed.
// Columns come and go as stages run, so presence checks are part of the
// contract rather than an afterthought.
package frame

import (
	"strings"

	"github.com/hhprep/hhprep/pkg/errors"
)

// Frame is an ordered collection of rows. Row order is preserved by every
// operation except explicit deduplication and grouping.
type Frame struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New creates an empty frame with the given column names.
func New(cols ...string) *Frame {
	f := &Frame{
		cols:  append([]string(nil), cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range f.cols {
		f.index[c] = i
	}
	return f
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return len(f.rows) }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string { return append([]string(nil), f.cols...) }

// Has reports whether the column exists. Stages use this to stay a no-op
// when an optional input column is absent.
func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

// AppendRow appends one row. The number of values must match the columns.
func (f *Frame) AppendRow(vals ...Value) error {
	if len(vals) != len(f.cols) {
		return errors.NewDimensionError("Frame.AppendRow", len(f.cols), len(vals), 1)
	}
	f.rows = append(f.rows, append([]Value(nil), vals...))
	return nil
}

// At returns the cell at row i of the named column. A missing column reads
// as the missing value.
func (f *Frame) At(i int, col string) Value {
	j, ok := f.index[col]
	if !ok {
		return NA()
	}
	return f.rows[i][j]
}

// Set writes the cell at row i of the named column. Unknown columns are
// ignored.
func (f *Frame) Set(i int, col string, v Value) {
	if j, ok := f.index[col]; ok {
		f.rows[i][j] = v
	}
}

// Column returns a copy of the named column, or nil if absent.
func (f *Frame) Column(col string) []Value {
	j, ok := f.index[col]
	if !ok {
		return nil
	}
	out := make([]Value, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[j]
	}
	return out
}

// AddColumn adds a column or replaces an existing one. The value count must
// match the row count.
func (f *Frame) AddColumn(col string, vals []Value) error {
	if len(vals) != len(f.rows) {
		return errors.NewDimensionError("Frame.AddColumn", len(f.rows), len(vals), 0)
	}
	if j, ok := f.index[col]; ok {
		for i := range f.rows {
			f.rows[i][j] = vals[i]
		}
		return nil
	}
	f.index[col] = len(f.cols)
	f.cols = append(f.cols, col)
	for i := range f.rows {
		f.rows[i] = append(f.rows[i], vals[i])
	}
	return nil
}

// Rename renames a column in place. Renaming a missing column is an error;
// renaming onto an existing name is too.
func (f *Frame) Rename(old, name string) error {
	j, ok := f.index[old]
	if !ok {
		return errors.NewMissingColumnError("Frame.Rename", old)
	}
	if f.Has(name) {
		return errors.NewValueError("Frame.Rename", "column "+name+" already exists")
	}
	delete(f.index, old)
	f.cols[j] = name
	f.index[name] = j
	return nil
}

// Drop removes the named columns. Absent names are ignored, mirroring the
// stage contract that raw columns may already be gone.
func (f *Frame) Drop(cols ...string) {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		drop[c] = true
	}
	kept := make([]int, 0, len(f.cols))
	newCols := make([]string, 0, len(f.cols))
	for j, c := range f.cols {
		if !drop[c] {
			kept = append(kept, j)
			newCols = append(newCols, c)
		}
	}
	if len(kept) == len(f.cols) {
		return
	}
	for i, row := range f.rows {
		newRow := make([]Value, len(kept))
		for k, j := range kept {
			newRow[k] = row[j]
		}
		f.rows[i] = newRow
	}
	f.cols = newCols
	f.index = make(map[string]int, len(newCols))
	for j, c := range newCols {
		f.index[c] = j
	}
}

// Select returns a new frame with only the named columns, in the given
// order. Absent names are skipped.
func (f *Frame) Select(cols ...string) *Frame {
	present := make([]string, 0, len(cols))
	for _, c := range cols {
		if f.Has(c) {
			present = append(present, c)
		}
	}
	out := New(present...)
	for i := range f.rows {
		row := make([]Value, len(present))
		for k, c := range present {
			row[k] = f.At(i, c)
		}
		out.rows = append(out.rows, row)
	}
	return out
}

// Filter returns a new frame with the rows for which keep is true, in the
// original order.
func (f *Frame) Filter(keep func(i int) bool) *Frame {
	out := New(f.cols...)
	for i, row := range f.rows {
		if keep(i) {
			out.rows = append(out.rows, append([]Value(nil), row...))
		}
	}
	return out
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := New(f.cols...)
	out.rows = make([][]Value, len(f.rows))
	for i, row := range f.rows {
		out.rows[i] = append([]Value(nil), row...)
	}
	return out
}

// MapColumn rewrites every cell of the named column. Absent columns are a
// no-op.
func (f *Frame) MapColumn(col string, fn func(Value) Value) {
	j, ok := f.index[col]
	if !ok {
		return
	}
	for i := range f.rows {
		f.rows[i][j] = fn(f.rows[i][j])
	}
}

// MapCells rewrites every cell of the frame.
func (f *Frame) MapCells(fn func(Value) Value) {
	for i := range f.rows {
		for j := range f.rows[i] {
			f.rows[i][j] = fn(f.rows[i][j])
		}
	}
}

// RowKey returns a canonical key of the full row, used for exact-duplicate
// detection.
func (f *Frame) RowKey(i int) string {
	parts := make([]string, len(f.cols))
	for j := range f.cols {
		parts[j] = f.rows[i][j].Key()
	}
	return strings.Join(parts, "\x1f")
}

// DropDuplicateRows returns a new frame keeping the first occurrence of
// each exact row, preserving order.
func (f *Frame) DropDuplicateRows() *Frame {
	seen := make(map[string]bool, len(f.rows))
	return f.Filter(func(i int) bool {
		k := f.RowKey(i)
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
}

// IsNumericColumn reports whether no non-missing cell of the column is
// text. An all-missing column counts as numeric, like a float column full
// of NaN would.
func (f *Frame) IsNumericColumn(col string) bool {
	j, ok := f.index[col]
	if !ok {
		return false
	}
	for i := range f.rows {
		v := f.rows[i][j]
		if !v.IsMissing() && !v.IsNumeric() {
			return false
		}
	}
	return true
}

// CoerceFloatColumn applies the try-parse-or-missing rule to every cell of
// the column.
func (f *Frame) CoerceFloatColumn(col string) {
	f.MapColumn(col, CoerceFloat)
}
