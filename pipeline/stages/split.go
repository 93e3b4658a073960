package stages

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// SplitStage separates the fully encoded record set into the feature
// matrix X and the target vector y. Column order of X follows the record
// set's column order with the target removed.
type SplitStage struct {
	// Target names the column emitted as y. Empty means "salary".
	Target string
}

// NewSplitStage creates the split stage for the given target column.
func NewSplitStage(target string) *SplitStage { return &SplitStage{Target: target} }

// Name implements pipeline.Stage.
func (s *SplitStage) Name() string { return "split" }

// Process implements pipeline.Stage.
func (s *SplitStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(s.Name(), "record set")
	}
	target := s.Target
	if target == "" {
		target = ColSalary
	}
	f := ctx.Frame
	if !f.Has(target) {
		return nil, errors.NewMissingColumnError(s.Name(), target)
	}

	featureCols := make([]string, 0, f.NumCols()-1)
	for _, c := range f.Columns() {
		if c != target {
			featureCols = append(featureCols, c)
		}
	}
	if len(featureCols) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyFrame, "no feature columns besides the target")
	}

	rows := f.NumRows()
	if rows == 0 {
		return nil, errors.WithStack(errors.ErrEmptyFrame)
	}
	x := mat.NewDense(rows, len(featureCols), nil)
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		for j, c := range featureCols {
			if v, ok := f.At(i, c).AsFloat(); ok {
				x.Set(i, j, v)
			} else {
				x.Set(i, j, math.NaN())
			}
		}
		if v, ok := f.At(i, target).AsFloat(); ok {
			y.SetVec(i, v)
		} else {
			y.SetVec(i, math.NaN())
		}
	}

	ctx.X = x
	ctx.Y = y
	ctx.Frame = f.Select(featureCols...)
	return ctx, nil
}
