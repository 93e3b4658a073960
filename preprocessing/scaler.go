package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/pkg/errors"
)

// StandardScaler standardizes features to zero mean and unit variance.
// The training glue fits it on the train split and reuses the learned
// statistics on validation data.
type StandardScaler struct {
	Mean      []float64
	Scale     []float64
	NFeatures int
	fitted    bool
}

// NewStandardScaler creates an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-feature mean and standard deviation.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewValueError("StandardScaler.Fit", "empty matrix")
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			d := X.At(i, j) - s.Mean[j]
			sumSquares += d * d
		}
		s.Scale[j] = math.Sqrt(sumSquares / float64(r))
		// constant columns scale by 1 to avoid division by zero
		if s.Scale[j] < 1e-8 {
			s.Scale[j] = 1.0
		}
	}

	s.fitted = true
	return nil
}

// Transform standardizes X using the learned statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.fitted {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler and transforms X in one call.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
