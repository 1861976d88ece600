package mlexp

import (
	"errors"
	"math"
	"testing"
)

func TestSpecificityAndNPV(t *testing.T) {
	tests := []struct {
		name     string
		yTrue    []int
		yPred    []int
		wantSpec float64
		wantNPV  float64
		specNaN  bool
		npvNaN   bool
	}{
		{
			name:     "identical",
			yTrue:    []int{1, 0, 1, 0, 1},
			yPred:    []int{1, 0, 1, 0, 1},
			wantSpec: 1.0,
			wantNPV:  1.0,
		},
		{
			name:     "all flipped",
			yTrue:    []int{1, 0, 1, 0, 1},
			yPred:    []int{0, 1, 0, 1, 0},
			wantSpec: 0.0,
			wantNPV:  0.0,
		},
		{
			name:     "six false positives among ten negatives",
			yTrue:    []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			yPred:    []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 1},
			wantSpec: 0.4,
			wantNPV:  1.0,
		},
		{
			name:     "all predicted negative",
			yTrue:    []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 1},
			yPred:    []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			wantSpec: 1.0,
			wantNPV:  0.4,
		},
		{
			name:    "no negatives at all",
			yTrue:   []int{1, 1, 1},
			yPred:   []int{1, 1, 1},
			specNaN: true,
			npvNaN:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Specificity(tt.yTrue, tt.yPred)
			checkMetric(t, "Specificity", spec, err, tt.wantSpec, tt.specNaN)

			npv, err := NegativePredictiveValue(tt.yTrue, tt.yPred)
			checkMetric(t, "NegativePredictiveValue", npv, err, tt.wantNPV, tt.npvNaN)
		})
	}
}

func TestWeightedMetrics_Labels(t *testing.T) {
	yTrue := []int{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0}
	yPred := []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 1}
	// tp=3 fn=1 tn=6 fp=2: rates 0.75, 0.25, 0.25, 0.75

	r, err := WeightedRatesOf(yTrue, yPred)
	if err != nil {
		t.Fatalf("WeightedRatesOf() error = %v", err)
	}
	want := WeightedRates{TP: 0.75, FP: 0.25, FN: 0.25, TN: 0.75}
	if r != want {
		t.Errorf("WeightedRatesOf() = %+v, want %+v", r, want)
	}

	funcs := []struct {
		name string
		fn   func([]int, []int) (float64, error)
		want float64
	}{
		{"WeightedAccuracy", WeightedAccuracy, 0.75},
		{"WeightedSensitivity", WeightedSensitivity, 0.75},
		{"WeightedSpecificity", WeightedSpecificity, 0.75},
		{"WeightedPPV", WeightedPPV, 0.75},
		{"WeightedNPV", WeightedNPV, 0.75},
	}
	for _, f := range funcs {
		got, err := f.fn(yTrue, yPred)
		checkMetric(t, f.name, got, err, f.want, false)
	}
}

func TestWeightedMetrics_NegativeOnlyTruth(t *testing.T) {
	yTrue := []int{0, 0, 0, 0}
	yPred := []int{0, 1, 0, 0}

	r, err := WeightedRatesOf(yTrue, yPred)
	if !errors.Is(err, ErrUndefinedMetric) {
		t.Fatalf("WeightedRatesOf() error = %v, want ErrUndefinedMetric", err)
	}
	if !math.IsNaN(r.TP) || !math.IsNaN(r.FN) {
		t.Errorf("TP, FN = %v, %v, want NaN", r.TP, r.FN)
	}

	for name, fn := range map[string]func([]int, []int) (float64, error){
		"WeightedAccuracy":    WeightedAccuracy,
		"WeightedSensitivity": WeightedSensitivity,
		"WeightedPPV":         WeightedPPV,
		"WeightedNPV":         WeightedNPV,
	} {
		got, err := fn(yTrue, yPred)
		checkMetric(t, name, got, err, 0, true)
	}

	spec, err := WeightedSpecificity(yTrue, yPred)
	checkMetric(t, "WeightedSpecificity", spec, err, 0.75, false)
}

func TestMetrics_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []int
		yPred   []int
		wantErr error
	}{
		{"length mismatch", []int{0, 1}, []int{0}, ErrLengthMismatch},
		{"empty", []int{}, []int{}, ErrEmptyLabels},
		{"non-binary truth", []int{0, 2}, []int{0, 1}, ErrInvalidLabel},
		{"non-binary prediction", []int{0, 1}, []int{-1, 1}, ErrInvalidLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightedAccuracy(tt.yTrue, tt.yPred)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if !math.IsNaN(got) {
				t.Errorf("value = %v, want NaN", got)
			}
			if _, err := WeightedRatesOf(tt.yTrue, tt.yPred); !errors.Is(err, tt.wantErr) {
				t.Errorf("WeightedRatesOf error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func checkMetric(t *testing.T, name string, got float64, err error, want float64, wantNaN bool) {
	t.Helper()
	if wantNaN {
		if !math.IsNaN(got) {
			t.Errorf("%s = %v, want NaN", name, got)
		}
		if !errors.Is(err, ErrUndefinedMetric) {
			t.Errorf("%s error = %v, want ErrUndefinedMetric", name, err)
		}
		return
	}
	if err != nil {
		t.Errorf("%s error = %v", name, err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
