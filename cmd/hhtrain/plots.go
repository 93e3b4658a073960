package main

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/report"
)

func plotRun(dir string, yTrue, yPred *mat.VecDense) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := report.SaveTargetHistogram(filepath.Join(dir, "target_hist.png"), yTrue, 50); err != nil {
		return err
	}
	return report.SavePredictedVsActual(filepath.Join(dir, "pred_vs_actual.png"), yTrue, yPred)
}
