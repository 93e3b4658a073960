// Command hhtrain trains the ridge salary baseline on the arrays written
// by hhprep, selects the regularization strength by cross-validated grid
// search, reports the regression metrics and saves the model.
package main

import (
	"os"
	"path/filepath"

	"github.com/hhprep/hhprep/internal/config"
	"github.com/hhprep/hhprep/linear"
	"github.com/hhprep/hhprep/metrics"
	"github.com/hhprep/hhprep/persist"
	"github.com/hhprep/hhprep/pkg/log"
	"github.com/hhprep/hhprep/preprocessing"
)

func main() {
	cfg := config.Load()
	logger := log.New(cfg.LogLevel)

	x, err := persist.ReadMatrixNpy(filepath.Join(cfg.Output.Dir, "x_data.npy"))
	if err != nil {
		logger.Error().Err(err).Msg("load features")
		os.Exit(1)
	}
	y, err := persist.ReadVectorNpy(filepath.Join(cfg.Output.Dir, "y_data.npy"))
	if err != nil {
		logger.Error().Err(err).Msg("load target")
		os.Exit(1)
	}

	before, _ := x.Dims()
	x, y = dedupRows(x, y)
	after, _ := x.Dims()
	if after < before {
		logger.Info().Int("dropped", before-after).Msg("exact duplicate rows removed")
	}

	xTrain, xTest, yTrain, yTest, err := linear.TrainTestSplit(x, y, cfg.Train.TestFraction, cfg.Train.Seed)
	if err != nil {
		logger.Error().Err(err).Msg("split data")
		os.Exit(1)
	}

	scaler := preprocessing.NewStandardScaler()
	xTrain, err = scaler.FitTransform(xTrain)
	if err != nil {
		logger.Error().Err(err).Msg("scale train features")
		os.Exit(1)
	}
	xTest, err = scaler.Transform(xTest)
	if err != nil {
		logger.Error().Err(err).Msg("scale test features")
		os.Exit(1)
	}

	grid := linear.AlphaGrid(-4, 6, 50)
	res, err := linear.SearchAlpha(xTrain, yTrain, grid, cfg.Train.Folds, cfg.Train.Seed,
		linear.WithLogTarget(true))
	if err != nil {
		logger.Error().Err(err).Msg("alpha search")
		os.Exit(1)
	}
	logger.Info().
		Float64("alpha", res.Alpha).
		Float64("cv_mse", res.MSE).
		Msg("alpha selected")

	pred, err := res.Model.Predict(xTest)
	if err != nil {
		logger.Error().Err(err).Msg("predict")
		os.Exit(1)
	}
	rep, err := metrics.Evaluate(yTest, pred)
	if err != nil {
		logger.Error().Err(err).Msg("evaluate")
		os.Exit(1)
	}
	logger.Info().
		Float64("mae", rep.MAE).
		Float64("rmse", rep.RMSE).
		Float64("r2", rep.R2).
		Float64("nmae_mean", rep.NMAEMean).
		Float64("nmae_median", rep.NMAEMedian).
		Float64("mape", rep.MAPE).
		Msg("test metrics")

	if err := res.Model.Save(cfg.Train.ModelPath); err != nil {
		logger.Error().Err(err).Msg("save model")
		os.Exit(1)
	}

	if cfg.Train.PlotsDir != "" {
		if err := plotRun(cfg.Train.PlotsDir, yTest, pred); err != nil {
			logger.Warn().Err(err).Msg("plots failed")
		}
	}

	logger.Info().Str("model", cfg.Train.ModelPath).Msg("training finished")
}
