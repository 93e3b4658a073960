// Package metrics implements the regression quality measures reported by
// the salary model: the absolute error family plus the scale-free variants
// used to compare runs across datasets with different salary levels.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/pkg/errors"
)

func validatePair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination. A constant true
// vector has zero total variance; the score is 0 when the residuals are
// also zero and negative infinity otherwise, matching the usual
// convention.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		tss += (yt - yMean) * (yt - yMean)
		diff := yt - yPred.AtVec(i)
		rss += diff * diff
	}
	if tss == 0 {
		if rss == 0 {
			return 0, nil
		}
		return math.Inf(-1), nil
	}
	return 1 - rss/tss, nil
}

// NMAEMean computes the MAE normalized by the mean of the true values.
func NMAEMean(yTrue, yPred *mat.VecDense) (float64, error) {
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	n := yTrue.Len()
	var mean float64
	for i := 0; i < n; i++ {
		mean += yTrue.AtVec(i)
	}
	mean /= float64(n)
	if mean == 0 {
		return 0, errors.NewValueError("NMAEMean", "mean of true values is zero")
	}
	return mae / math.Abs(mean), nil
}

// NMAEMedian computes the MAE normalized by the median of the true values.
func NMAEMedian(yTrue, yPred *mat.VecDense) (float64, error) {
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	n := yTrue.Len()
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = yTrue.AtVec(i)
	}
	sort.Float64s(vals)
	var median float64
	if n%2 == 1 {
		median = vals[n/2]
	} else {
		median = (vals[n/2-1] + vals[n/2]) / 2
	}
	if median == 0 {
		return 0, errors.NewValueError("NMAEMedian", "median of true values is zero")
	}
	return mae / math.Abs(median), nil
}

// MAPE computes the mean absolute percentage error over the entries whose
// true value is nonzero. All-zero true values are an error.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var sum float64
	count := 0
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		if yt == 0 {
			continue
		}
		sum += math.Abs((yt - yPred.AtVec(i)) / yt)
		count++
	}
	if count == 0 {
		return 0, errors.NewValueError("MAPE", "all true values are zero")
	}
	return sum / float64(count), nil
}

// Report bundles every regression metric for one evaluation.
type Report struct {
	MAE        float64 `json:"mae"`
	RMSE       float64 `json:"rmse"`
	R2         float64 `json:"r2"`
	NMAEMean   float64 `json:"nmae_mean"`
	NMAEMedian float64 `json:"nmae_median"`
	MAPE       float64 `json:"mape"`
}

// Evaluate computes the full metric report for one prediction vector.
func Evaluate(yTrue, yPred *mat.VecDense) (Report, error) {
	var rep Report
	var err error
	if rep.MAE, err = MAE(yTrue, yPred); err != nil {
		return rep, err
	}
	if rep.RMSE, err = RMSE(yTrue, yPred); err != nil {
		return rep, err
	}
	if rep.R2, err = R2Score(yTrue, yPred); err != nil {
		return rep, err
	}
	if rep.NMAEMean, err = NMAEMean(yTrue, yPred); err != nil {
		return rep, err
	}
	if rep.NMAEMedian, err = NMAEMedian(yTrue, yPred); err != nil {
		return rep, err
	}
	if rep.MAPE, err = MAPE(yTrue, yPred); err != nil {
		return rep, err
	}
	return rep, nil
}
