package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/jtbricker/mlexp"
	"github.com/jtbricker/mlexp/model"
)

// Score is one named metric value.
type Score struct {
	Name  string
	Value float64
}

// Sorted returns the scores ordered by name.
func Sorted(scores map[string]float64) []Score {
	out := make([]Score, 0, len(scores))
	for _, n := range Names(scores) {
		out = append(out, Score{Name: n, Value: scores[n]})
	}
	return out
}

// Sweep evaluates every scorer against clf on X and y. A metric that is
// undefined for this data is recorded as NaN; any other error aborts the sweep.
// Predictions are computed once and shared between scorers.
func Sweep(ctx context.Context, clf model.Classifier, X mat.Matrix, y []int, scorers map[string]Scorer) (map[string]float64, error) {
	memo := &memoClassifier{Classifier: clf}
	results := make(map[string]float64, len(scorers))

	for _, name := range Names(scorers) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := scorers[name](ctx, memo, X, y)
		switch {
		case err == nil:
			results[name] = v
		case errors.Is(err, mlexp.ErrUndefinedMetric):
			results[name] = math.NaN()
		default:
			return nil, fmt.Errorf("scorer %s: %w", name, err)
		}
	}
	return results, nil
}

// memoClassifier caches the first prediction results. It is only valid for a
// single X, which is how Sweep uses it.
type memoClassifier struct {
	model.Classifier

	pred     []int
	predErr  error
	predDone bool

	proba     []float64
	probaErr  error
	probaDone bool
}

func (m *memoClassifier) Predict(X mat.Matrix) ([]int, error) {
	if !m.predDone {
		m.pred, m.predErr = m.Classifier.Predict(X)
		m.predDone = true
	}
	return m.pred, m.predErr
}

func (m *memoClassifier) PredictProba(X mat.Matrix) ([]float64, error) {
	if !m.probaDone {
		m.proba, m.probaErr = m.Classifier.PredictProba(X)
		m.probaDone = true
	}
	return m.proba, m.probaErr
}
