package mlexp

import (
	"fmt"
	"math"
)

// Counts validates a label pair and returns its confusion matrix.
func Counts(yTrue, yPred []int) (ContingencyCounts, error) {
	t, p, err := labelPair(yTrue, yPred)
	if err != nil {
		return ContingencyCounts{}, err
	}
	return ConfusionMatrix(t, p)
}

// Specificity returns TN/(TN+FP) for the given labels.
func Specificity(yTrue, yPred []int) (float64, error) {
	return countsMetric("specificity", yTrue, yPred, ContingencyCounts.Specificity)
}

// NegativePredictiveValue returns TN/(TN+FN) for the given labels.
func NegativePredictiveValue(yTrue, yPred []int) (float64, error) {
	return countsMetric("npv", yTrue, yPred, ContingencyCounts.NPV)
}

// WeightedRatesOf computes the class-normalized rates for the given labels.
// When a class is absent from yTrue the affected rates are NaN and the error
// wraps ErrUndefinedMetric.
func WeightedRatesOf(yTrue, yPred []int) (WeightedRates, error) {
	c, err := Counts(yTrue, yPred)
	if err != nil {
		nan := math.NaN()
		return WeightedRates{TP: nan, FP: nan, FN: nan, TN: nan}, err
	}
	r := ComputeWeightedRates(c)
	return r, r.Err()
}

// WeightedAccuracy returns the class-balanced accuracy for the given labels.
func WeightedAccuracy(yTrue, yPred []int) (float64, error) {
	return weightedMetric("weighted_accuracy", yTrue, yPred, WeightedRates.Accuracy)
}

// WeightedSensitivity returns the weighted true positive rate for the given labels.
func WeightedSensitivity(yTrue, yPred []int) (float64, error) {
	return weightedMetric("weighted_sensitivity", yTrue, yPred, WeightedRates.Sensitivity)
}

// WeightedSpecificity returns the weighted true negative rate for the given labels.
func WeightedSpecificity(yTrue, yPred []int) (float64, error) {
	return weightedMetric("weighted_specificity", yTrue, yPred, WeightedRates.Specificity)
}

// WeightedPPV returns the weighted precision for the given labels.
func WeightedPPV(yTrue, yPred []int) (float64, error) {
	return weightedMetric("weighted_ppv", yTrue, yPred, WeightedRates.PPV)
}

// WeightedNPV returns the weighted negative predictive value for the given labels.
func WeightedNPV(yTrue, yPred []int) (float64, error) {
	return weightedMetric("weighted_npv", yTrue, yPred, WeightedRates.NPV)
}

func countsMetric(name string, yTrue, yPred []int, fn func(ContingencyCounts) float64) (float64, error) {
	c, err := Counts(yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	return checkDefined(name, fn(c))
}

// weightedMetric ignores the rates' own error: a metric may stay defined even when
// some rates are not (weighted specificity needs only the negative class).
func weightedMetric(name string, yTrue, yPred []int, fn func(WeightedRates) float64) (float64, error) {
	c, err := Counts(yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	return checkDefined(name, fn(ComputeWeightedRates(c)))
}

func checkDefined(name string, v float64) (float64, error) {
	if math.IsNaN(v) {
		return v, fmt.Errorf("%w: %s", ErrUndefinedMetric, name)
	}
	return v, nil
}
