package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtbricker/mlexp"
)

func TestThresholds(t *testing.T) {
	got := Thresholds(0.1, 0.5, 0.1)
	want := []float64{0.1, 0.2, 0.3, 0.4}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}

	assert.Empty(t, Thresholds(0.5, 0.1, 0.1))
	assert.Empty(t, Thresholds(0.1, 0.5, 0))
}

func TestThresholdSweep(t *testing.T) {
	y := []int{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0}
	proba := []float64{.9, .8, .7, .4, .1, .2, .1, .3, .2, .1, .6, .6}

	results, err := ThresholdSweep(y, proba, []float64{0.05, 0.5, 0.65, 0.95})
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Everything positive: sensitivity 1, specificity 0.
	assert.Equal(t, mlexp.ContingencyCounts{FP: 8, TP: 4}, results[0].Counts)
	assert.InDelta(t, 0.5, results[0].Metrics.Accuracy, 1e-12)

	assert.Equal(t, mlexp.ContingencyCounts{TN: 6, FP: 2, FN: 1, TP: 3}, results[1].Counts)
	assert.InDelta(t, 0.75, results[1].Metrics.Accuracy, 1e-12)

	// Above the two 0.6 negatives: tp=3 fn=1 tn=8.
	assert.InDelta(t, (0.75+1)/2, results[2].Metrics.Accuracy, 1e-12)

	// Nothing positive: PPV undefined.
	assert.True(t, math.IsNaN(results[3].Metrics.PPV))

	best, ok := BestThreshold(results)
	require.True(t, ok)
	assert.Equal(t, 0.65, best.Threshold)
}

func TestThresholdSweep_Errors(t *testing.T) {
	_, err := ThresholdSweep([]int{0, 1}, []float64{0.5}, []float64{0.5})
	assert.ErrorIs(t, err, mlexp.ErrLengthMismatch)

	_, err = ThresholdSweep([]int{0, 2}, []float64{0.5, 0.5}, []float64{0.5})
	assert.ErrorIs(t, err, mlexp.ErrInvalidLabel)
}

func TestBestThreshold_AllUndefined(t *testing.T) {
	results, err := ThresholdSweep([]int{0, 0}, []float64{0.2, 0.8}, []float64{0.5})
	require.NoError(t, err)
	_, ok := BestThreshold(results)
	assert.False(t, ok)
}
