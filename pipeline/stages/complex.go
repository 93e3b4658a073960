package stages

import (
	"strings"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// Education levels in rank order.
const (
	EduSchool     = "school"
	EduVocational = "vocational"
	EduHigher     = "higher"
	EduUnknown    = "unknown"
)

// ComplexFeatureStage derives the ordinal education level and the
// independent advanced-degree flag from the free education text.
//
// When no pattern matches, the level defaults to school for parity with
// the source data pipeline, conflating "nothing stated" with "confirmed
// lowest tier". Strict mode emits unknown instead, which the encoding
// stage later drops.
type ComplexFeatureStage struct {
	Strict  bool
	KeepRaw bool
}

// NewComplexFeatureStage creates the stage with the default lenient level
// fallback and raw-text retention.
func NewComplexFeatureStage() *ComplexFeatureStage {
	return &ComplexFeatureStage{KeepRaw: true}
}

// Name implements pipeline.Stage.
func (s *ComplexFeatureStage) Name() string { return "complex_features" }

// Process implements pipeline.Stage.
func (s *ComplexFeatureStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(s.Name(), "record set")
	}
	f := ctx.Frame.Copy()
	if !f.Has(colEducation) {
		ctx.Frame = f
		return ctx, nil
	}

	n := f.NumRows()
	levels := make([]frame.Value, n)
	masters := make([]frame.Value, n)
	raw := make([]frame.Value, n)

	for i := 0; i < n; i++ {
		cell := f.At(i, colEducation)
		text := strings.ToLower(cell.String())

		levels[i] = frame.Str(s.educationLevel(text))
		if strings.Contains(text, "магистр") {
			masters[i] = frame.Int(1)
		} else {
			masters[i] = frame.Int(0)
		}
		raw[i] = cell
	}

	if err := f.AddColumn(ColEduLevel, levels); err != nil {
		return nil, err
	}
	if err := f.AddColumn(ColHasMaster, masters); err != nil {
		return nil, err
	}
	if s.KeepRaw {
		if err := f.AddColumn(ColRawEducation, raw); err != nil {
			return nil, err
		}
	}

	ctx.Frame = f
	return ctx, nil
}

// educationLevel resolves the ordinal bucket by priority-ordered substring
// matches: any higher-education phrase wins, then vocational, then general
// secondary.
func (s *ComplexFeatureStage) educationLevel(text string) string {
	switch {
	case strings.Contains(text, "высшее"),
		strings.Contains(text, "бакалавр"),
		strings.Contains(text, "магистр"):
		return EduHigher
	case strings.Contains(text, "среднее профессиональное"),
		strings.Contains(text, "среднее специальное"):
		return EduVocational
	case strings.Contains(text, "среднее общее"):
		return EduSchool
	default:
		if s.Strict {
			return EduUnknown
		}
		return EduSchool
	}
}
