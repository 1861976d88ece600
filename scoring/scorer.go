// Package scoring evaluates classifiers with named scorers: single sweeps over a
// fitted model and cross-validated scores across folds.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/jtbricker/mlexp"
	"github.com/jtbricker/mlexp/model"
)

// ErrUnknownScorer indicates a scorer name missing from the registry.
var ErrUnknownScorer = errors.New("scoring: unknown scorer")

// Scorer computes one metric for a fitted classifier on X and true labels y.
type Scorer func(ctx context.Context, clf model.Classifier, X mat.Matrix, y []int) (float64, error)

// LabelScorer adapts a metric over true and predicted labels.
func LabelScorer(fn func(yTrue, yPred []int) (float64, error)) Scorer {
	return func(_ context.Context, clf model.Classifier, X mat.Matrix, y []int) (float64, error) {
		pred, err := clf.Predict(X)
		if err != nil {
			return math.NaN(), fmt.Errorf("predict: %w", err)
		}
		return fn(y, pred)
	}
}

// ProbaScorer adapts a metric over true labels and positive-class probabilities.
func ProbaScorer(fn func(yTrue []int, proba []float64) (float64, error)) Scorer {
	return func(_ context.Context, clf model.Classifier, X mat.Matrix, y []int) (float64, error) {
		proba, err := clf.PredictProba(X)
		if err != nil {
			return math.NaN(), fmt.Errorf("predict proba: %w", err)
		}
		return fn(y, proba)
	}
}

// countsScorer scores a raw-count metric, reporting NaN as ErrUndefinedMetric.
func countsScorer(name string, fn func(mlexp.ContingencyCounts) float64) Scorer {
	return LabelScorer(func(yTrue, yPred []int) (float64, error) {
		c, err := mlexp.Counts(yTrue, yPred)
		if err != nil {
			return math.NaN(), err
		}
		v := fn(c)
		if math.IsNaN(v) {
			return v, fmt.Errorf("%w: %s", mlexp.ErrUndefinedMetric, name)
		}
		return v, nil
	})
}

// Default returns the built-in scorers keyed by name.
func Default() map[string]Scorer {
	return map[string]Scorer{
		"accuracy":             countsScorer("accuracy", mlexp.ContingencyCounts.Accuracy),
		"precision":            countsScorer("precision", mlexp.ContingencyCounts.Precision),
		"recall":               countsScorer("recall", mlexp.ContingencyCounts.Sensitivity),
		"specificity":          LabelScorer(mlexp.Specificity),
		"npv":                  LabelScorer(mlexp.NegativePredictiveValue),
		"weighted_accuracy":    LabelScorer(mlexp.WeightedAccuracy),
		"weighted_sensitivity": LabelScorer(mlexp.WeightedSensitivity),
		"weighted_specificity": LabelScorer(mlexp.WeightedSpecificity),
		"weighted_ppv":         LabelScorer(mlexp.WeightedPPV),
		"weighted_npv":         LabelScorer(mlexp.WeightedNPV),
		"roc_auc":              ProbaScorer(AUC),
	}
}

// Select picks the named scorers from Default. An empty list selects all.
func Select(names []string) (map[string]Scorer, error) {
	all := Default()
	if len(names) == 0 {
		return all, nil
	}
	out := make(map[string]Scorer, len(names))
	for _, n := range names {
		s, ok := all[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, n)
		}
		out[n] = s
	}
	return out, nil
}

// Names returns the keys of scorers in sorted order.
func Names[V any](scorers map[string]V) []string {
	names := make([]string, 0, len(scorers))
	for n := range scorers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
