package mlexp

import (
	"fmt"
	"math"
	"strings"
)

// WeightedRates are the four contingency cells, each normalized by the size of its
// true class. TP and FN share the positive-class denominator; FP and TN share the
// negative-class denominator, so TP+FN == 1 and FP+TN == 1 whenever defined.
type WeightedRates struct {
	TP float64
	FP float64
	FN float64
	TN float64
}

// WeightedMetrics holds the metrics derived from WeightedRates.
type WeightedMetrics struct {
	Accuracy    float64
	Sensitivity float64
	Specificity float64
	PPV         float64
	NPV         float64
}

// ComputeWeightedRates normalizes c per true class. Without positive samples TP
// and FN are NaN; without negative samples FP and TN are NaN.
func ComputeWeightedRates(c ContingencyCounts) WeightedRates {
	pos := c.TP + c.FN
	neg := c.TN + c.FP
	return WeightedRates{
		TP: ratio(c.TP, pos),
		FN: ratio(c.FN, pos),
		FP: ratio(c.FP, neg),
		TN: ratio(c.TN, neg),
	}
}

// Defined reports whether all four rates are numbers.
func (r WeightedRates) Defined() bool {
	return r.Err() == nil
}

// Err returns an error wrapping ErrUndefinedMetric that names every NaN rate, or nil.
func (r WeightedRates) Err() error {
	var undefined []string
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"tp_weighted", r.TP},
		{"fp_weighted", r.FP},
		{"fn_weighted", r.FN},
		{"tn_weighted", r.TN},
	} {
		if math.IsNaN(f.v) {
			undefined = append(undefined, f.name)
		}
	}
	if len(undefined) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUndefinedMetric, strings.Join(undefined, ", "))
}

// Accuracy is (TP+TN)/(TP+FP+FN+TN). The denominator is 2 when the rates are
// defined, so this is the mean of sensitivity and specificity.
func (r WeightedRates) Accuracy() float64 {
	return (r.TP + r.TN) / (r.TP + r.FP + r.FN + r.TN)
}

// Sensitivity is TP/(TP+FN), equal to TP when defined.
func (r WeightedRates) Sensitivity() float64 {
	return r.TP / (r.TP + r.FN)
}

// Specificity is TN/(TN+FP), equal to TN when defined.
func (r WeightedRates) Specificity() float64 {
	return r.TN / (r.TN + r.FP)
}

// PPV is TP/(TP+FP): precision with both classes given equal weight.
func (r WeightedRates) PPV() float64 {
	return r.TP / (r.TP + r.FP)
}

// NPV is TN/(TN+FN): negative predictive value with both classes given equal weight.
func (r WeightedRates) NPV() float64 {
	return r.TN / (r.TN + r.FN)
}

// Metrics computes all five derived metrics.
func (r WeightedRates) Metrics() WeightedMetrics {
	return WeightedMetrics{
		Accuracy:    r.Accuracy(),
		Sensitivity: r.Sensitivity(),
		Specificity: r.Specificity(),
		PPV:         r.PPV(),
		NPV:         r.NPV(),
	}
}
