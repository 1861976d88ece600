package scoring

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/jtbricker/mlexp"
)

// Curve is a receiver operating characteristic curve. FPR is non-decreasing.
type Curve struct {
	FPR        []float64
	TPR        []float64
	Thresholds []float64
}

// ROC computes the ROC curve of scores against binary labels yTrue.
// Both classes must be present.
func ROC(yTrue []int, scores []float64) (Curve, error) {
	if len(yTrue) != len(scores) {
		return Curve{}, fmt.Errorf("%w: %d labels, %d scores", mlexp.ErrLengthMismatch, len(yTrue), len(scores))
	}
	labels, err := mlexp.NewLabelVector(yTrue)
	if err != nil {
		return Curve{}, err
	}

	y := slices.Clone(scores)
	classes := make([]bool, len(labels))
	pos := 0
	for i, l := range labels {
		classes[i] = l == mlexp.Positive
		if classes[i] {
			pos++
		}
	}
	if pos == 0 || pos == len(labels) {
		return Curve{}, fmt.Errorf("%w: roc needs both classes", mlexp.ErrUndefinedMetric)
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, thresh := stat.ROC(nil, y, classes, nil)
	if !sort.Float64sAreSorted(fpr) {
		slices.Reverse(fpr)
		slices.Reverse(tpr)
		slices.Reverse(thresh)
	}
	return Curve{FPR: fpr, TPR: tpr, Thresholds: thresh}, nil
}

// AUC returns the area under the ROC curve by the trapezoidal rule.
func AUC(yTrue []int, scores []float64) (float64, error) {
	c, err := ROC(yTrue, scores)
	if err != nil {
		return math.NaN(), err
	}
	return c.AUC(), nil
}

// AUC integrates the curve.
func (c Curve) AUC() float64 {
	return integrate.Trapezoidal(c.FPR, c.TPR)
}
