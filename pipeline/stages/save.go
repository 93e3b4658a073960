package stages

import (
	"context"
	"path/filepath"

	"github.com/hhprep/hhprep/persist"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// SaveArraysStage writes the split matrix and vector as x_data.npy and
// y_data.npy under Dir.
type SaveArraysStage struct {
	Dir string
}

// Name implements pipeline.Stage.
func (s *SaveArraysStage) Name() string { return "save_arrays" }

// Process implements pipeline.Stage.
func (s *SaveArraysStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.X == nil || ctx.Y == nil {
		return nil, errors.New("arrays not built yet, run the split stage first")
	}
	if err := persist.WriteMatrixNpy(filepath.Join(s.Dir, "x_data.npy"), ctx.X); err != nil {
		return nil, err
	}
	if err := persist.WriteVectorNpy(filepath.Join(s.Dir, "y_data.npy"), ctx.Y); err != nil {
		return nil, err
	}
	return ctx, nil
}

// SaveFrameStage snapshots the current record set as CSV. Useful between
// stages for debugging a transformation.
type SaveFrameStage struct {
	Path string
}

// Name implements pipeline.Stage.
func (s *SaveFrameStage) Name() string { return "save_frame" }

// Process implements pipeline.Stage.
func (s *SaveFrameStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(s.Name(), "record set")
	}
	if err := persist.WriteFrameCSV(s.Path, ctx.Frame); err != nil {
		return nil, err
	}
	return ctx, nil
}

// PostgresSinkStage stores the split arrays in PostgreSQL under RunID.
type PostgresSinkStage struct {
	Sink  *persist.PostgresSink
	RunID string
}

// Name implements pipeline.Stage.
func (s *PostgresSinkStage) Name() string { return "postgres_sink" }

// Process implements pipeline.Stage.
func (s *PostgresSinkStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.X == nil || ctx.Y == nil {
		return nil, errors.New("arrays not built yet, run the split stage first")
	}
	if err := s.Sink.Store(context.Background(), s.RunID, ctx.X, ctx.Y); err != nil {
		return nil, err
	}
	return ctx, nil
}
