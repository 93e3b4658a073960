// Package linear implements the ridge regression used as the salary
// baseline model, with alpha selection by cross-validated grid search.
package linear

import (
	"encoding/json"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/pkg/errors"
)

// Ridge is an L2-regularized linear regression fit by the normal
// equations. The intercept is never penalized.
type Ridge struct {
	alpha        float64
	fitIntercept bool
	logTarget    bool

	weights   *mat.VecDense
	intercept float64
	nFeatures int
	fitted    bool
}

// Option configures a Ridge model.
type Option func(*Ridge)

// WithAlpha sets the L2 regularization strength.
func WithAlpha(alpha float64) Option {
	return func(r *Ridge) { r.alpha = alpha }
}

// WithFitIntercept sets whether an unpenalized intercept term is fit.
func WithFitIntercept(fit bool) Option {
	return func(r *Ridge) { r.fitIntercept = fit }
}

// WithLogTarget makes the model fit log1p of the target and predict with
// expm1, which suits right-skewed targets like salaries.
func WithLogTarget(log bool) Option {
	return func(r *Ridge) { r.logTarget = log }
}

// NewRidge creates a ridge model with alpha 1.0 and an intercept.
func NewRidge(opts ...Option) *Ridge {
	r := &Ridge{alpha: 1.0, fitIntercept: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Alpha returns the regularization strength.
func (r *Ridge) Alpha() float64 { return r.alpha }

// IsFitted reports whether Fit has completed.
func (r *Ridge) IsFitted() bool { return r.fitted }

// Intercept returns the fitted intercept term.
func (r *Ridge) Intercept() float64 { return r.intercept }

// Weights returns the fitted coefficient vector.
func (r *Ridge) Weights() *mat.VecDense { return r.weights }

// Fit solves (X^T X + alpha I) w = X^T y. With an intercept the data is
// centered first so the penalty leaves the intercept alone.
func (r *Ridge) Fit(x mat.Matrix, y *mat.VecDense) error {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewValueError("Ridge.Fit", "empty data")
	}
	if y.Len() != rows {
		return errors.NewDimensionError("Ridge.Fit", rows, y.Len(), 0)
	}
	r.nFeatures = cols

	target := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v := y.AtVec(i)
		if r.logTarget {
			v = math.Log1p(v)
		}
		target.SetVec(i, v)
	}

	colMeans := make([]float64, cols)
	var yMean float64
	if r.fitIntercept {
		for j := 0; j < cols; j++ {
			var sum float64
			for i := 0; i < rows; i++ {
				sum += x.At(i, j)
			}
			colMeans[j] = sum / float64(rows)
		}
		for i := 0; i < rows; i++ {
			yMean += target.AtVec(i)
		}
		yMean /= float64(rows)
	}

	centered := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			centered.Set(i, j, x.At(i, j)-colMeans[j])
		}
	}
	centeredY := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		centeredY.SetVec(i, target.AtVec(i)-yMean)
	}

	var xtx mat.Dense
	xtx.Mul(centered.T(), centered)
	for j := 0; j < cols; j++ {
		xtx.Set(j, j, xtx.At(j, j)+r.alpha)
	}

	var xty mat.VecDense
	xty.MulVec(centered.T(), centeredY)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "Ridge.Fit")
	}

	r.weights = mat.NewVecDense(cols, nil)
	r.weights.MulVec(&inv, &xty)

	r.intercept = 0
	if r.fitIntercept {
		r.intercept = yMean
		for j := 0; j < cols; j++ {
			r.intercept -= r.weights.AtVec(j) * colMeans[j]
		}
	}
	r.fitted = true
	return nil
}

// Predict returns the predicted target for every row of x. With a log
// target the predictions are mapped back through expm1.
func (r *Ridge) Predict(x mat.Matrix) (*mat.VecDense, error) {
	if !r.fitted {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}
	rows, cols := x.Dims()
	if cols != r.nFeatures {
		return nil, errors.NewDimensionError("Ridge.Predict", r.nFeatures, cols, 1)
	}

	out := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v := r.intercept
		for j := 0; j < cols; j++ {
			v += x.At(i, j) * r.weights.AtVec(j)
		}
		if r.logTarget {
			v = math.Expm1(v)
		}
		out.SetVec(i, v)
	}
	return out, nil
}

// ridgeState is the serialized form of a fitted model.
type ridgeState struct {
	Alpha        float64   `json:"alpha"`
	FitIntercept bool      `json:"fit_intercept"`
	LogTarget    bool      `json:"log_target"`
	Intercept    float64   `json:"intercept"`
	Weights      []float64 `json:"weights"`
}

// Save writes the fitted model as JSON.
func (r *Ridge) Save(path string) error {
	if !r.fitted {
		return errors.NewNotFittedError("Ridge", "Save")
	}
	state := ridgeState{
		Alpha:        r.alpha,
		FitIntercept: r.fitIntercept,
		LogTarget:    r.logTarget,
		Intercept:    r.intercept,
		Weights:      append([]float64(nil), r.weights.RawVector().Data...),
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write model %s", path)
}

// Load reads a fitted model saved by Save.
func Load(path string) (*Ridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", path)
	}
	var state ridgeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.Wrapf(err, "decode model %s", path)
	}
	if len(state.Weights) == 0 {
		return nil, errors.Newf("model %s has no weights", path)
	}
	r := &Ridge{
		alpha:        state.Alpha,
		fitIntercept: state.FitIntercept,
		logTarget:    state.LogTarget,
		intercept:    state.Intercept,
		nFeatures:    len(state.Weights),
		weights:      mat.NewVecDense(len(state.Weights), state.Weights),
		fitted:       true,
	}
	return r, nil
}
