package scoring

import (
	"fmt"
	"math"

	"github.com/jtbricker/mlexp"
	"github.com/jtbricker/mlexp/model"
)

// ThresholdResult holds the counts and weighted metrics at one decision threshold.
type ThresholdResult struct {
	Threshold float64
	Counts    mlexp.ContingencyCounts
	Metrics   mlexp.WeightedMetrics
}

// Thresholds returns min, min+step, ... up to but excluding max.
func Thresholds(min, max, step float64) []float64 {
	if step <= 0 || max <= min {
		return nil
	}
	n := int(math.Ceil((max-min)/step - 1e-9))
	out := make([]float64, n)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	return out
}

// ThresholdSweep labels proba at each threshold and computes the weighted metrics
// against yTrue. Results keep the order of thresholds.
func ThresholdSweep(yTrue []int, proba []float64, thresholds []float64) ([]ThresholdResult, error) {
	if len(yTrue) != len(proba) {
		return nil, fmt.Errorf("%w: %d labels, %d scores", mlexp.ErrLengthMismatch, len(yTrue), len(proba))
	}
	out := make([]ThresholdResult, 0, len(thresholds))
	for _, t := range thresholds {
		c, err := mlexp.Counts(yTrue, model.Threshold(proba, t))
		if err != nil {
			return nil, err
		}
		out = append(out, ThresholdResult{
			Threshold: t,
			Counts:    c,
			Metrics:   mlexp.ComputeWeightedRates(c).Metrics(),
		})
	}
	return out, nil
}

// BestThreshold returns the result with the highest weighted accuracy, preferring
// the lower threshold on ties. ok is false when every accuracy is NaN.
func BestThreshold(results []ThresholdResult) (best ThresholdResult, ok bool) {
	for _, r := range results {
		if math.IsNaN(r.Metrics.Accuracy) {
			continue
		}
		if !ok || r.Metrics.Accuracy > best.Metrics.Accuracy {
			best, ok = r, true
		}
	}
	return best, ok
}
