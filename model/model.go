// Package model defines the classifier abstractions used by scoring and grid
// search, plus a logistic regression estimator built on gonum.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotFitted indicates prediction on an estimator that has not been fit.
	ErrNotFitted = errors.New("model: estimator not fitted")

	// ErrUnknownParam indicates a hyperparameter the estimator does not accept.
	ErrUnknownParam = errors.New("model: unknown parameter")

	// ErrDimension indicates mismatched matrix and label dimensions.
	ErrDimension = errors.New("model: dimension mismatch")
)

// Classifier is a fitted binary classifier.
type Classifier interface {
	// PredictProba returns the positive-class probability of every row of X.
	PredictProba(X mat.Matrix) ([]float64, error)

	// Predict returns the 0/1 label of every row of X.
	Predict(X mat.Matrix) ([]int, error)
}

// Estimator is a Classifier that can be trained.
type Estimator interface {
	Classifier
	Fit(X mat.Matrix, y []int) error
}

// Coefficienter is implemented by linear models that expose per-feature weights.
type Coefficienter interface {
	Coefficients() []float64
}

// Params holds numeric hyperparameters by name.
type Params map[string]float64

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String renders the parameters sorted by name, e.g. "C=0.1, max_iter=200".
func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(p[k], 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// Factory builds an untrained estimator from hyperparameters.
type Factory func(Params) (Estimator, error)

// Threshold converts probabilities to labels: p >= threshold is positive.
func Threshold(proba []float64, threshold float64) []int {
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= threshold {
			out[i] = 1
		}
	}
	return out
}

func checkRows(X mat.Matrix, y []int) error {
	r, _ := X.Dims()
	if r != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrDimension, r, len(y))
	}
	return nil
}
