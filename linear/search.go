package linear

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/metrics"
	"github.com/hhprep/hhprep/pkg/errors"
)

// AlphaGrid returns count points spaced logarithmically between 10^lo and
// 10^hi inclusive.
func AlphaGrid(lo, hi float64, count int) []float64 {
	if count <= 1 {
		return []float64{math.Pow(10, lo)}
	}
	grid := make([]float64, count)
	step := (hi - lo) / float64(count-1)
	for i := range grid {
		grid[i] = math.Pow(10, lo+float64(i)*step)
	}
	return grid
}

// SearchResult holds the outcome of an alpha grid search.
type SearchResult struct {
	Alpha float64
	MSE   float64
	Model *Ridge
}

// SearchAlpha selects the alpha with the lowest mean squared error over a
// k-fold split, then refits on the whole data with the winner. Folds are
// shuffled deterministically from seed.
func SearchAlpha(x *mat.Dense, y *mat.VecDense, alphas []float64, folds int, seed int64, opts ...Option) (*SearchResult, error) {
	rows, _ := x.Dims()
	if len(alphas) == 0 {
		return nil, errors.NewValueError("SearchAlpha", "empty alpha grid")
	}
	if folds < 2 {
		return nil, errors.NewValueError("SearchAlpha", "need at least 2 folds")
	}
	if rows < folds {
		return nil, errors.NewValueError("SearchAlpha", "fewer rows than folds")
	}

	perm := rand.New(rand.NewSource(seed)).Perm(rows)

	best := SearchResult{MSE: math.Inf(1)}
	for _, alpha := range alphas {
		mse, err := crossValidate(x, y, perm, folds, alpha, opts)
		if err != nil {
			return nil, err
		}
		if mse < best.MSE {
			best.Alpha = alpha
			best.MSE = mse
		}
	}

	model := NewRidge(append(append([]Option(nil), opts...), WithAlpha(best.Alpha))...)
	if err := model.Fit(x, y); err != nil {
		return nil, err
	}
	best.Model = model
	return &best, nil
}

func crossValidate(x *mat.Dense, y *mat.VecDense, perm []int, folds int, alpha float64, opts []Option) (float64, error) {
	rows, cols := x.Dims()

	var totalMSE float64
	counted := 0
	for fold := 0; fold < folds; fold++ {
		lo := fold * rows / folds
		hi := (fold + 1) * rows / folds
		test := perm[lo:hi]
		train := make([]int, 0, rows-len(test))
		train = append(train, perm[:lo]...)
		train = append(train, perm[hi:]...)
		if len(test) == 0 || len(train) == 0 {
			continue
		}

		model := NewRidge(append(append([]Option(nil), opts...), WithAlpha(alpha))...)
		if err := model.Fit(subMatrix(x, train, cols), subVector(y, train)); err != nil {
			return 0, err
		}
		pred, err := model.Predict(subMatrix(x, test, cols))
		if err != nil {
			return 0, err
		}
		mse, err := metrics.MSE(subVector(y, test), pred)
		if err != nil {
			return 0, err
		}
		totalMSE += mse
		counted++
	}
	if counted == 0 {
		return 0, errors.NewValueError("SearchAlpha", "no usable folds")
	}
	return totalMSE / float64(counted), nil
}

func subMatrix(x *mat.Dense, idx []int, cols int) *mat.Dense {
	out := mat.NewDense(len(idx), cols, nil)
	for i, r := range idx {
		for j := 0; j < cols; j++ {
			out.Set(i, j, x.At(r, j))
		}
	}
	return out
}

func subVector(y *mat.VecDense, idx []int) *mat.VecDense {
	out := mat.NewVecDense(len(idx), nil)
	for i, r := range idx {
		out.SetVec(i, y.AtVec(r))
	}
	return out
}

// TrainTestSplit shuffles the rows with the seed and splits them into a
// train and a test part, test taking testFraction of the rows.
func TrainTestSplit(x *mat.Dense, y *mat.VecDense, testFraction float64, seed int64) (xTrain, xTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	rows, cols := x.Dims()
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "test fraction must be in (0, 1)")
	}
	nTest := int(math.Round(float64(rows) * testFraction))
	if nTest == 0 || nTest == rows {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "split leaves an empty part")
	}

	perm := rand.New(rand.NewSource(seed)).Perm(rows)
	testIdx, trainIdx := perm[:nTest], perm[nTest:]
	return subMatrix(x, trainIdx, cols), subMatrix(x, testIdx, cols),
		subVector(y, trainIdx), subVector(y, testIdx), nil
}
