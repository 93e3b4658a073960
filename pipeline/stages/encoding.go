package stages

import (
	"math"
	"strings"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
	"github.com/hhprep/hhprep/preprocessing"
)

// Default outlier bounds for the target, in rubles.
const (
	DefaultMinTarget = 5_000.0
	DefaultMaxTarget = 1_000_000.0
)

// Fixed rank tables for the ordinal columns. Ranks are declared, never
// derived from sort order, because the ordering is semantic.
var (
	educationRanks = map[string]int{
		EduSchool:     0,
		EduVocational: 1,
		EduHigher:     2,
	}
	tripsRanks = map[string]int{
		TripsNone:    0,
		TripsRare:    1,
		TripsRegular: 2,
	}
)

// defaultTopN bounds the one-hot width of the high-cardinality columns.
var defaultTopN = map[string]int{
	ColCityNorm:     500,
	ColPosition:     500,
	ColLastPosition: 500,
	ColCurrency:     8,
}

// defaultKeyColumns is the semantic feature key for deduplication: rows
// that agree on every one of these (and differ only in target) are
// repeated observations of the same underlying case.
var defaultKeyColumns = []string{
	ColAge,
	ColSex,
	ColExperience,
	ColEduLevel,
	ColHasMaster,
	ColEduLastYear,
	ColCityNorm,
	ColPosition,
	ColLastPosition,
	ColRelocation,
	ColBusinessTrips,
	ColScheduleNorm,
	ColHasCar,
	ColCurrency,
}

// EncodingStage converts every categorical and ordinal signal to numeric
// form through a fixed sequence of order-dependent passes: ambiguous rows
// are dropped, binary flags encoded, rows deduplicated by feature key,
// ordinals ranked, high-cardinality categoricals collapsed and one-hot
// encoded, the schedule set multi-hot encoded, raw text dropped, missing
// numerics imputed by column median and outlier targets filtered.
type EncodingStage struct {
	target     string
	minTarget  float64
	maxTarget  float64
	topN       map[string]int
	keyColumns []string

	// DroppedOutliers holds the row count removed by the outlier filter
	// during the last run.
	DroppedOutliers int
}

// EncodingOption configures the encoding stage.
type EncodingOption func(*EncodingStage)

// WithTargetColumn sets the target column kept out of feature encoding.
func WithTargetColumn(name string) EncodingOption {
	return func(e *EncodingStage) { e.target = name }
}

// WithTargetBounds sets the inclusive plausible range for the target;
// rows outside it are dropped after imputation.
func WithTargetBounds(minTarget, maxTarget float64) EncodingOption {
	return func(e *EncodingStage) {
		e.minTarget = minTarget
		e.maxTarget = maxTarget
	}
}

// WithTopN overrides the top-N bound for one high-cardinality column.
func WithTopN(column string, n int) EncodingOption {
	return func(e *EncodingStage) { e.topN[column] = n }
}

// WithKeyColumns overrides the deduplication feature key.
func WithKeyColumns(cols ...string) EncodingOption {
	return func(e *EncodingStage) { e.keyColumns = append([]string(nil), cols...) }
}

// NewEncodingStage creates the encoding stage with the documented
// defaults: target "salary", bounds [5000, 1000000] and the standard
// top-N table.
func NewEncodingStage(opts ...EncodingOption) *EncodingStage {
	e := &EncodingStage{
		target:     ColSalary,
		minTarget:  DefaultMinTarget,
		maxTarget:  DefaultMaxTarget,
		topN:       map[string]int{},
		keyColumns: defaultKeyColumns,
	}
	for col, n := range defaultTopN {
		e.topN[col] = n
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements pipeline.Stage.
func (e *EncodingStage) Name() string { return "encode" }

// Process implements pipeline.Stage. The pass order is fixed; each pass
// consumes the previous pass's output.
func (e *EncodingStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(e.Name(), "record set")
	}
	f := ctx.Frame.Copy()

	f = e.dropUnknownCategories(f)
	e.encodeBinaryFlags(f)
	e.fixNumericTypes(f)
	f = e.dedupByFeatureKey(f)

	if err := e.encodeOrdinals(f); err != nil {
		return nil, err
	}
	if err := e.oneHotHighCardinality(f); err != nil {
		return nil, err
	}
	if err := e.encodeScheduleSet(f); err != nil {
		return nil, err
	}

	e.dropRawTextColumns(f)
	e.imputeMissingNumeric(f)
	e.dropNonNumericExceptTarget(f)
	f = e.dropExtremeTargets(f)
	e.castBoolsToInt(f)

	ctx.Frame = f
	return ctx, nil
}

// Pass 1: rows whose trip level or education level is unknown are too
// ambiguous to encode and are removed before anything numeric happens.
func (e *EncodingStage) dropUnknownCategories(f *frame.Frame) *frame.Frame {
	for _, col := range []string{ColBusinessTrips, ColEduLevel} {
		if !f.Has(col) {
			continue
		}
		c := col
		f = f.Filter(func(i int) bool {
			return f.At(i, c).String() != "unknown"
		})
	}
	return f
}

// Pass 2: fixed binary flags. Sex becomes 1 for the canonical male token,
// relocation and car ownership are cast to 0/1 integers.
func (e *EncodingStage) encodeBinaryFlags(f *frame.Frame) {
	f.MapColumn(ColSex, func(v frame.Value) frame.Value {
		if v.String() == "Мужчина" {
			return frame.Int(1)
		}
		return frame.Int(0)
	})
	for _, col := range []string{ColRelocation, ColHasCar} {
		f.MapColumn(col, func(v frame.Value) frame.Value {
			if n, ok := v.AsInt(); ok {
				return frame.Int(n)
			}
			return frame.Int(0)
		})
	}
}

// Pass 3: experience rounded to two decimals, education year kept as a
// nullable integer.
func (e *EncodingStage) fixNumericTypes(f *frame.Frame) {
	f.MapColumn(ColExperience, func(v frame.Value) frame.Value {
		x, ok := v.AsFloat()
		if !ok {
			return frame.NA()
		}
		return frame.Float(math.Round(x*100) / 100)
	})
	f.MapColumn(ColEduLastYear, func(v frame.Value) frame.Value {
		n, ok := v.AsInt()
		if !ok {
			return frame.NA()
		}
		return frame.Int(n)
	})
}

// Pass 4: group rows by the full feature key and collapse each group to
// one row whose target is the group's median. A missing key cell is its
// own distinct key value, never a reason to drop the row. Groups keep
// first-appearance order.
func (e *EncodingStage) dedupByFeatureKey(f *frame.Frame) *frame.Frame {
	if !f.Has(e.target) {
		return f
	}
	keyCols := make([]string, 0, len(e.keyColumns))
	for _, c := range e.keyColumns {
		if f.Has(c) {
			keyCols = append(keyCols, c)
		}
	}
	if len(keyCols) == 0 {
		return f
	}

	type group struct {
		row     []frame.Value
		targets []float64
		any     bool
	}
	order := make([]string, 0, f.NumRows())
	groups := make(map[string]*group, f.NumRows())

	for i := 0; i < f.NumRows(); i++ {
		parts := make([]string, len(keyCols))
		vals := make([]frame.Value, len(keyCols))
		for k, c := range keyCols {
			v := f.At(i, c)
			parts[k] = v.Key()
			vals[k] = v
		}
		key := strings.Join(parts, "\x1f")

		g, ok := groups[key]
		if !ok {
			g = &group{row: vals}
			groups[key] = g
			order = append(order, key)
		}
		if t, ok := f.At(i, e.target).AsFloat(); ok {
			g.targets = append(g.targets, t)
			g.any = true
		}
	}

	out := frame.New(append(append([]string(nil), keyCols...), e.target)...)
	for _, key := range order {
		g := groups[key]
		target := frame.NA()
		if g.any {
			if m, ok := frame.Median(g.targets); ok {
				target = frame.Float(m)
			}
		}
		row := append(append([]frame.Value(nil), g.row...), target)
		if err := out.AppendRow(row...); err != nil {
			// column/row arity is constructed above; keep the frame coherent
			return f
		}
	}
	return out
}

// Pass 5: ordinal encoding through the fixed rank tables.
func (e *EncodingStage) encodeOrdinals(f *frame.Frame) error {
	for col, ranks := range map[string]map[string]int{
		ColEduLevel:      educationRanks,
		ColBusinessTrips: tripsRanks,
	} {
		if !f.Has(col) {
			continue
		}
		enc := &preprocessing.OrdinalEncoder{Column: col, Ranks: ranks}
		vals, err := enc.Transform(f.Column(col))
		if err != nil {
			return err
		}
		if err := f.AddColumn(col, vals); err != nil {
			return err
		}
	}
	return nil
}

// oneHotOrder fixes the emission order of the one-hot encoded columns.
var oneHotOrder = []string{ColCityNorm, ColPosition, ColLastPosition, ColCurrency}

// Pass 6: collapse rare categories into OTHER and one-hot encode what is
// left, keeping every category including OTHER.
func (e *EncodingStage) oneHotHighCardinality(f *frame.Frame) error {
	for _, col := range oneHotOrder {
		n, configured := e.topN[col]
		if !configured || !f.Has(col) {
			continue
		}
		collapsed := preprocessing.NewTopNCollapser(n).FitTransform(f.Column(col))

		var enc preprocessing.OneHotEncoder
		enc.Fit(collapsed)
		cols, err := enc.Transform(collapsed)
		if err != nil {
			return err
		}
		f.Drop(col)
		for k, cat := range enc.Categories() {
			if err := f.AddColumn(col+"_"+cat, cols[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pass 7: one binary column per schedule token observed in the dataset.
func (e *EncodingStage) encodeScheduleSet(f *frame.Frame) error {
	if !f.Has(ColScheduleNorm) {
		return nil
	}
	enc := preprocessing.NewMultiHotEncoder("|")
	vals := f.Column(ColScheduleNorm)
	enc.Fit(vals)

	cols, err := enc.Transform(vals)
	if err != nil {
		return err
	}
	f.Drop(ColScheduleNorm)
	for k, tok := range enc.Tokens() {
		if err := f.AddColumn("schedule__"+tok, cols[k]); err != nil {
			return err
		}
	}
	return nil
}

// Pass 8: raw and intermediate text columns were retained until here so
// earlier passes could still reference them; now they go.
func (e *EncodingStage) dropRawTextColumns(f *frame.Frame) {
	drop := []string{
		ColLastWork,
		colSexAge,
		colSalary,
		colCity,
		colExperience,
		colEducation,
		colSchedule,
		colCar,
	}
	for _, c := range f.Columns() {
		if strings.HasPrefix(c, "raw_") {
			drop = append(drop, c)
		}
	}
	f.Drop(drop...)
}

// Pass 9: per-column median imputation over the surviving values. The
// median is computed after all structural drops, then filled in a second
// pass. The target is left alone so the outlier filter sees real values.
func (e *EncodingStage) imputeMissingNumeric(f *frame.Frame) {
	for _, col := range f.Columns() {
		if col == e.target || !f.IsNumericColumn(col) {
			continue
		}
		preprocessing.ImputeColumnMedian(f, col)
	}
}

// Pass 10: anything still non-numeric (except the target) cannot reach
// the matrix and is dropped here, before the split, not after.
func (e *EncodingStage) dropNonNumericExceptTarget(f *frame.Frame) {
	var drop []string
	for _, col := range f.Columns() {
		if col != e.target && !f.IsNumericColumn(col) {
			drop = append(drop, col)
		}
	}
	f.Drop(drop...)
}

// Pass 11: rows whose target is outside the plausible range (or not a
// number at all) are removed. Runs after imputation and encoding so the
// bound check sees final numeric values.
func (e *EncodingStage) dropExtremeTargets(f *frame.Frame) *frame.Frame {
	if !f.Has(e.target) {
		e.DroppedOutliers = 0
		return f
	}
	before := f.NumRows()
	out := f.Filter(func(i int) bool {
		t, ok := f.At(i, e.target).AsFloat()
		return ok && t >= e.minTarget && t <= e.maxTarget
	})
	e.DroppedOutliers = before - out.NumRows()
	return out
}

// Pass 12: boolean cells become 0/1 integers.
func (e *EncodingStage) castBoolsToInt(f *frame.Frame) {
	f.MapCells(func(v frame.Value) frame.Value {
		if v.Kind() == frame.KindBool {
			if n, _ := v.AsInt(); n == 1 {
				return frame.Int(1)
			}
			return frame.Int(0)
		}
		return v
	})
}
