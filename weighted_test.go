package mlexp

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-12

func TestComputeWeightedRates_Identities(t *testing.T) {
	tests := []struct {
		name   string
		counts ContingencyCounts
	}{
		{name: "balanced", counts: ContingencyCounts{TN: 40, FP: 10, FN: 5, TP: 45}},
		{name: "imbalanced", counts: ContingencyCounts{TN: 53, FP: 2, FN: 11, TP: 135}},
		{name: "perfect", counts: ContingencyCounts{TN: 7, TP: 3}},
		{name: "all wrong", counts: ContingencyCounts{FP: 7, FN: 3}},
		{name: "single sample per class", counts: ContingencyCounts{TN: 1, TP: 1}},
		{name: "odd fractions", counts: ContingencyCounts{TN: 1, FP: 2, FN: 5, TP: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeWeightedRates(tt.counts)
			if err := r.Err(); err != nil {
				t.Fatalf("Err() = %v, want nil", err)
			}
			if got := r.TP + r.FN; math.Abs(got-1) > eps {
				t.Errorf("TP+FN = %v, want 1", got)
			}
			if got := r.FP + r.TN; math.Abs(got-1) > eps {
				t.Errorf("FP+TN = %v, want 1", got)
			}
		})
	}
}

func TestComputeWeightedRates_ReferenceValues(t *testing.T) {
	c := ContingencyCounts{TN: 53, FP: 2, FN: 11, TP: 135}
	r := ComputeWeightedRates(c)

	rates := []struct {
		name string
		got  float64
		want float64
	}{
		{"tp", r.TP, 0.9247},
		{"fp", r.FP, 0.0364},
		{"fn", r.FN, 0.0753},
		{"tn", r.TN, 0.9636},
	}
	for _, rt := range rates {
		if math.Abs(rt.got-rt.want) > 1e-4 {
			t.Errorf("%s rate = %.6f, want %.4f", rt.name, rt.got, rt.want)
		}
	}

	m := r.Metrics()
	if math.Abs(m.Accuracy-0.9442) > 1e-4 {
		t.Errorf("Accuracy = %.6f, want 0.9442", m.Accuracy)
	}

	// Loose reference from the notebook report.
	for name, got := range map[string]float64{
		"sensitivity": m.Sensitivity,
		"specificity": m.Specificity,
		"ppv":         m.PPV,
		"npv":         m.NPV,
	} {
		if rel := math.Abs(got-0.9247) / 0.9247; rel > 0.1 {
			t.Errorf("%s = %.4f, relative error %.3f from 0.9247", name, got, rel)
		}
	}

	// Exact reductions.
	if math.Abs(m.Sensitivity-r.TP) > eps {
		t.Errorf("Sensitivity = %v, want TP rate %v", m.Sensitivity, r.TP)
	}
	if math.Abs(m.Specificity-r.TN) > eps {
		t.Errorf("Specificity = %v, want TN rate %v", m.Specificity, r.TN)
	}
	if math.Abs(m.Accuracy-(r.TP+r.TN)/2) > eps {
		t.Errorf("Accuracy = %v, want (TP+TN)/2", m.Accuracy)
	}
	wantPPV := (135.0 / 146) / (135.0/146 + 2.0/55)
	if math.Abs(m.PPV-wantPPV) > eps {
		t.Errorf("PPV = %v, want %v", m.PPV, wantPPV)
	}
	wantNPV := (53.0 / 55) / (53.0/55 + 11.0/146)
	if math.Abs(m.NPV-wantNPV) > eps {
		t.Errorf("NPV = %v, want %v", m.NPV, wantNPV)
	}
}

func TestComputeWeightedRates_NoPositives(t *testing.T) {
	r := ComputeWeightedRates(ContingencyCounts{TN: 6, FP: 4})

	if !math.IsNaN(r.TP) || !math.IsNaN(r.FN) {
		t.Errorf("TP, FN = %v, %v, want NaN, NaN", r.TP, r.FN)
	}
	if r.TN != 0.6 || r.FP != 0.4 {
		t.Errorf("TN, FP = %v, %v, want 0.6, 0.4", r.TN, r.FP)
	}
	if r.Defined() {
		t.Error("Defined() = true, want false")
	}
	err := r.Err()
	if !errors.Is(err, ErrUndefinedMetric) {
		t.Fatalf("Err() = %v, want ErrUndefinedMetric", err)
	}

	m := r.Metrics()
	for name, v := range map[string]float64{
		"accuracy":    m.Accuracy,
		"sensitivity": m.Sensitivity,
		"ppv":         m.PPV,
		"npv":         m.NPV,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
	if m.Specificity != 0.6 {
		t.Errorf("Specificity = %v, want 0.6", m.Specificity)
	}
}

func TestComputeWeightedRates_NoNegatives(t *testing.T) {
	r := ComputeWeightedRates(ContingencyCounts{FN: 1, TP: 3})

	if !math.IsNaN(r.TN) || !math.IsNaN(r.FP) {
		t.Errorf("TN, FP = %v, %v, want NaN, NaN", r.TN, r.FP)
	}
	if r.Sensitivity() != 0.75 {
		t.Errorf("Sensitivity = %v, want 0.75", r.Sensitivity())
	}
	if !math.IsNaN(r.Specificity()) {
		t.Errorf("Specificity = %v, want NaN", r.Specificity())
	}
}

func TestComputeWeightedRates_Idempotent(t *testing.T) {
	c := ContingencyCounts{TN: 12, FP: 3, FN: 4, TP: 9}
	first := ComputeWeightedRates(c)
	second := ComputeWeightedRates(c)
	if first != second {
		t.Errorf("second call = %+v, want %+v", second, first)
	}
}
