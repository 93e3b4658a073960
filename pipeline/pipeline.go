// Package pipeline defines the stage contract and the sequential chain
// that threads a shared context through the transformation stages.
//
// A run either completes every stage or aborts on the first error; there
// is no retry and no partial output. Each stage logs one structured event
// with the row counts before and after it ran.
package pipeline

import (
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pkg/errors"
)

// Context carries the working record set between stages. After the split
// stage it additionally holds the numeric feature matrix and the target
// vector. It is owned by exactly one stage at a time and is never shared
// concurrently.
type Context struct {
	Frame *frame.Frame
	X     *mat.Dense
	Y     *mat.VecDense
}

// NewContext returns an empty context for the loading stage to fill.
func NewContext() *Context { return &Context{} }

// Stage is one discrete transform in the chain: it receives the context
// and returns the updated context. Stages must not assume anything about
// stage ordering beyond the presence or absence of the columns they
// explicitly require.
type Stage interface {
	Name() string
	Process(ctx *Context) (*Context, error)
}

// Chain applies stages in a fixed, caller-defined order.
type Chain struct {
	stages []Stage
	log    zerolog.Logger
}

// NewChain builds a chain over the given stages.
func NewChain(log zerolog.Logger, stages ...Stage) *Chain {
	return &Chain{stages: stages, log: log}
}

// Run folds the context through every stage. The first stage error aborts
// the run, wrapped with the stage name.
func (c *Chain) Run(ctx *Context) (*Context, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	for _, s := range c.stages {
		rowsIn := contextRows(ctx)
		start := time.Now()

		next, err := s.Process(ctx)
		if err != nil {
			c.log.Error().Str("stage", s.Name()).Err(err).Msg("stage failed")
			return nil, errors.Wrapf(err, "stage %s", s.Name())
		}
		ctx = next

		c.log.Info().
			Str("stage", s.Name()).
			Int("rows_in", rowsIn).
			Int("rows_out", contextRows(ctx)).
			Dur("took", time.Since(start)).
			Msg("stage done")
	}
	return ctx, nil
}

func contextRows(ctx *Context) int {
	if ctx == nil || ctx.Frame == nil {
		return 0
	}
	return ctx.Frame.NumRows()
}
