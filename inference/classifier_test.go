package inference

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBatchBounds(t *testing.T) {
	tests := []struct {
		n, size int
		want    [][2]int
	}{
		{0, 4, nil},
		{3, 4, [][2]int{{0, 3}}},
		{8, 4, [][2]int{{0, 4}, {4, 8}}},
		{9, 4, [][2]int{{0, 4}, {4, 8}, {8, 9}}},
	}
	for _, tt := range tests {
		got := batchBounds(tt.n, tt.size)
		if len(got) != len(tt.want) {
			t.Errorf("batchBounds(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("batchBounds(%d, %d)[%d] = %v, want %v", tt.n, tt.size, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFlatten(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	got := flatten(X, 1, 3)
	want := []float32{3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("flatten() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flatten()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClassifier_Predict(t *testing.T) {
	pool := newTestPool(t, 2)
	defer func() { _ = pool.Close() }()

	clf := NewClassifier(pool, WithBatchSize(2), WithThreshold(0.5))
	X := mat.NewDense(5, 2, []float64{
		-2, 0.5,
		-1, 0,
		0, 0,
		1, 0,
		2, -0.5,
	})

	proba, err := clf.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}
	if len(proba) != 5 {
		t.Fatalf("expected 5 probabilities, got %d", len(proba))
	}

	pred, err := clf.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := range pred {
		want := 0
		if proba[i] >= 0.5 {
			want = 1
		}
		if pred[i] != want {
			t.Errorf("pred[%d] = %d for probability %v", i, pred[i], proba[i])
		}
	}
}
