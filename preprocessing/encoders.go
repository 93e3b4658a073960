// Package preprocessing provides the column encoders used by the encoding
// stage (top-N collapsing, one-hot, multi-hot, ordinal ranking, median
// imputation) and a feature StandardScaler for the downstream model glue.
package preprocessing

import (
	"sort"
	"strings"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pkg/errors"
)

// TopNCollapser replaces rare categories with a shared sentinel so one-hot
// encoding stays bounded. Missing cells are labelled before counting, so
// "unknown" can itself be a frequent category.
type TopNCollapser struct {
	TopN    int
	Other   string // sentinel for collapsed categories
	Missing string // label given to missing cells before counting
}

// NewTopNCollapser returns a collapser with the conventional sentinels.
func NewTopNCollapser(topN int) *TopNCollapser {
	return &TopNCollapser{TopN: topN, Other: "OTHER", Missing: "UNKNOWN"}
}

// FitTransform collapses everything outside the top-N most frequent
// categories. Frequency ties break by count descending, then by category
// name ascending, so identical input always yields identical output.
func (c *TopNCollapser) FitTransform(vals []frame.Value) []frame.Value {
	labels := make([]string, len(vals))
	counts := make(map[string]int, len(vals))
	for i, v := range vals {
		s := v.String()
		if v.IsMissing() {
			s = c.Missing
		}
		labels[i] = s
		counts[s]++
	}

	cats := make([]string, 0, len(counts))
	for s := range counts {
		cats = append(cats, s)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})

	top := make(map[string]bool, c.TopN)
	for i, s := range cats {
		if i >= c.TopN {
			break
		}
		top[s] = true
	}

	out := make([]frame.Value, len(vals))
	for i, s := range labels {
		if top[s] {
			out[i] = frame.Str(s)
		} else {
			out[i] = frame.Str(c.Other)
		}
	}
	return out
}

// OneHotEncoder expands a categorical column into one 0/1 column per
// observed category. No reference category is dropped.
type OneHotEncoder struct {
	categories []string
	fitted     bool
}

// Fit learns the sorted set of observed categories.
func (e *OneHotEncoder) Fit(vals []frame.Value) {
	seen := make(map[string]bool, len(vals))
	for _, v := range vals {
		if !v.IsMissing() {
			seen[v.String()] = true
		}
	}
	e.categories = make([]string, 0, len(seen))
	for s := range seen {
		e.categories = append(e.categories, s)
	}
	sort.Strings(e.categories)
	e.fitted = true
}

// Categories returns the learned categories in emission order.
func (e *OneHotEncoder) Categories() []string {
	return append([]string(nil), e.categories...)
}

// Transform returns one 0/1 column per category, aligned with Categories.
func (e *OneHotEncoder) Transform(vals []frame.Value) ([][]frame.Value, error) {
	if !e.fitted {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	cols := make([][]frame.Value, len(e.categories))
	for k := range cols {
		cols[k] = make([]frame.Value, len(vals))
	}
	idx := make(map[string]int, len(e.categories))
	for k, s := range e.categories {
		idx[s] = k
	}
	for i, v := range vals {
		for k := range cols {
			cols[k][i] = frame.Int(0)
		}
		if v.IsMissing() {
			continue
		}
		if k, ok := idx[v.String()]; ok {
			cols[k][i] = frame.Int(1)
		}
	}
	return cols, nil
}

// MultiHotEncoder expands a delimited multi-valued column into one 0/1
// column per token observed anywhere in the dataset.
type MultiHotEncoder struct {
	Delimiter string
	tokens    []string
	fitted    bool
}

// NewMultiHotEncoder returns an encoder splitting on the given delimiter.
func NewMultiHotEncoder(delimiter string) *MultiHotEncoder {
	return &MultiHotEncoder{Delimiter: delimiter}
}

// Fit learns the sorted set of tokens across all rows.
func (e *MultiHotEncoder) Fit(vals []frame.Value) {
	seen := make(map[string]bool)
	for _, v := range vals {
		for _, tok := range e.split(v) {
			seen[tok] = true
		}
	}
	e.tokens = make([]string, 0, len(seen))
	for tok := range seen {
		e.tokens = append(e.tokens, tok)
	}
	sort.Strings(e.tokens)
	e.fitted = true
}

// Tokens returns the learned tokens in emission order.
func (e *MultiHotEncoder) Tokens() []string {
	return append([]string(nil), e.tokens...)
}

// Transform returns one 0/1 column per token, aligned with Tokens.
func (e *MultiHotEncoder) Transform(vals []frame.Value) ([][]frame.Value, error) {
	if !e.fitted {
		return nil, errors.NewNotFittedError("MultiHotEncoder", "Transform")
	}
	cols := make([][]frame.Value, len(e.tokens))
	for k := range cols {
		cols[k] = make([]frame.Value, len(vals))
	}
	idx := make(map[string]int, len(e.tokens))
	for k, tok := range e.tokens {
		idx[tok] = k
	}
	for i, v := range vals {
		for k := range cols {
			cols[k][i] = frame.Int(0)
		}
		for _, tok := range e.split(v) {
			if k, ok := idx[tok]; ok {
				cols[k][i] = frame.Int(1)
			}
		}
	}
	return cols, nil
}

func (e *MultiHotEncoder) split(v frame.Value) []string {
	if v.IsMissing() {
		return nil
	}
	raw := strings.Split(v.String(), e.Delimiter)
	out := raw[:0]
	for _, tok := range raw {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// OrdinalEncoder maps ranked categories to explicit small-integer ranks.
// The rank table is declared by the caller, never derived from sort order,
// because the ordering carries semantic importance.
type OrdinalEncoder struct {
	Column string
	Ranks  map[string]int
}

// Transform replaces each category with its declared rank. A category
// outside the table is a structural violation, not a silent default.
func (e *OrdinalEncoder) Transform(vals []frame.Value) ([]frame.Value, error) {
	out := make([]frame.Value, len(vals))
	for i, v := range vals {
		if v.IsMissing() {
			out[i] = frame.NA()
			continue
		}
		rank, ok := e.Ranks[v.String()]
		if !ok {
			return nil, errors.NewStructuralError(e.Column,
				"category "+v.String()+" outside the declared rank table")
		}
		out[i] = frame.Int(int64(rank))
	}
	return out, nil
}

// ImputeColumnMedian fills the missing cells of a numeric column with the
// median of its surviving values. The median is computed once, after all
// structural drops, then applied in a second pass.
func ImputeColumnMedian(f *frame.Frame, col string) {
	if !f.Has(col) || !f.ColumnHasMissing(col) {
		return
	}
	median, ok := f.ColumnMedian(col)
	if !ok {
		return
	}
	f.MapColumn(col, func(v frame.Value) frame.Value {
		if v.IsMissing() {
			return frame.Float(median)
		}
		return v
	})
}
