package dataset

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func imbalanced(n, positives int) (*mat.Dense, []int) {
	X := mat.NewDense(n, 1, nil)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		if i < positives {
			y[i] = 1
		}
	}
	return X, y
}

func TestStratifiedKFold(t *testing.T) {
	_, y := imbalanced(20, 5)

	folds, err := StratifiedKFold(y, 5, NewRand(1))
	require.NoError(t, err)
	require.Len(t, folds, 5)

	var all []int
	for _, f := range folds {
		assert.Len(t, f, 4)
		pos := lo.CountBy(f, func(i int) bool { return y[i] == 1 })
		assert.Equal(t, 1, pos, "each fold gets one positive")
		all = append(all, f...)
	}
	assert.ElementsMatch(t, lo.Range(20), all)
}

func TestStratifiedKFold_Deterministic(t *testing.T) {
	_, y := imbalanced(30, 9)

	a, err := StratifiedKFold(y, 3, NewRand(42))
	require.NoError(t, err)
	b, err := StratifiedKFold(y, 3, NewRand(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStratifiedKFold_Invalid(t *testing.T) {
	_, err := StratifiedKFold([]int{0, 1}, 1, NewRand(1))
	require.Error(t, err)

	_, err = StratifiedKFold([]int{0, 1}, 3, NewRand(1))
	require.ErrorIs(t, err, ErrNotEnoughSamples)
}

func TestTrainTestSplit(t *testing.T) {
	X, y := imbalanced(40, 10)

	s, err := TrainTestSplit(X, y, 0.2, NewRand(7))
	require.NoError(t, err)

	assert.Len(t, s.YTest, 8)
	assert.Len(t, s.YTrain, 32)
	assert.Equal(t, 2, lo.Count(s.YTest, 1))
	assert.Equal(t, 8, lo.Count(s.YTrain, 1))

	r, _ := s.XTrain.Dims()
	assert.Equal(t, 32, r)

	// rows stay aligned with their labels
	for i, label := range s.YTest {
		row := int(s.XTest.At(i, 0))
		assert.Equal(t, y[row], label)
	}
}

func TestTrainTestSplit_BadRatio(t *testing.T) {
	X, y := imbalanced(10, 5)
	_, err := TrainTestSplit(X, y, 1, NewRand(1))
	require.Error(t, err)
}

func TestTrainIndices(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, TrainIndices(5, []int{1, 3}))
}
