package stages

import (
	"strings"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// CleaningStage strips byte-order marks and non-breaking spaces from every
// text cell, then removes rows that are exact duplicates across all
// columns. Text normalization must run before duplicate detection, or two
// visually identical rows with different invisible characters would both
// survive. Re-running the stage on its own output changes nothing.
type CleaningStage struct{}

// NewCleaningStage creates the cleaning stage.
func NewCleaningStage() *CleaningStage { return &CleaningStage{} }

// Name implements pipeline.Stage.
func (s *CleaningStage) Name() string { return "clean" }

// Process implements pipeline.Stage.
func (s *CleaningStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(s.Name(), "record set")
	}

	f := ctx.Frame.Copy()
	f.MapCells(func(v frame.Value) frame.Value {
		text, ok := v.Text()
		if !ok {
			return v
		}
		text = strings.ReplaceAll(text, "\uFEFF", "")
		text = strings.ReplaceAll(text, " ", " ")
		return frame.Str(text)
	})

	ctx.Frame = f.DropDuplicateRows()
	return ctx, nil
}
