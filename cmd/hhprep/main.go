// Command hhprep runs the full preparation pipeline: it reads the raw
// HH.ru resume export, cleans and encodes it and writes the feature
// matrix and target vector as x_data.npy and y_data.npy.
package main

import (
	"fmt"
	"os"

	"github.com/hhprep/hhprep/internal/config"
	"github.com/hhprep/hhprep/persist"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pipeline/stages"
	"github.com/hhprep/hhprep/pkg/log"
)

func main() {
	cfg := config.Load()
	logger := log.New(cfg.LogLevel)

	encodingOpts := []stages.EncodingOption{
		stages.WithTargetColumn(cfg.Encoding.Target),
		stages.WithTargetBounds(cfg.Encoding.MinSalary, cfg.Encoding.MaxSalary),
	}
	complexStage := stages.NewComplexFeatureStage()
	complexStage.Strict = cfg.Encoding.StrictEducation

	chainStages := []pipeline.Stage{
		stages.NewCSVLoader(cfg.Input.Path),
		stages.NewCleaningStage(),
		stages.NewBasicFeatureStage(),
		stages.NewCategoryFeatureStage(),
		complexStage,
		stages.NewNormalizationStage(),
		stages.NewEncodingStage(encodingOpts...),
	}
	if cfg.Output.SnapshotPath != "" {
		chainStages = append(chainStages, &stages.SaveFrameStage{Path: cfg.Output.SnapshotPath})
	}
	chainStages = append(chainStages,
		stages.NewSplitStage(cfg.Encoding.Target),
		&stages.SaveArraysStage{Dir: cfg.Output.Dir},
	)

	if cfg.Postgres.ConnectionString != "" {
		sink, err := persist.NewPostgresSink(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
		if err != nil {
			logger.Error().Err(err).Msg("postgres sink unavailable")
			os.Exit(1)
		}
		defer sink.Close()
		runID := fmt.Sprintf("hhprep-%d", os.Getpid())
		chainStages = append(chainStages, &stages.PostgresSinkStage{Sink: sink, RunID: runID})
	}

	chain := pipeline.NewChain(logger, chainStages...)
	ctx, err := chain.Run(pipeline.NewContext())
	if err != nil {
		logger.Error().Err(err).Msg("pipeline failed")
		os.Exit(1)
	}

	rows, cols := ctx.X.Dims()
	logger.Info().
		Int("rows", rows).
		Int("features", cols).
		Str("output_dir", cfg.Output.Dir).
		Msg("pipeline finished")
}
