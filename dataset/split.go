package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
)

// Split is a train/test partition of a feature matrix and its labels.
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain []int
	YTest  []int
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// TrainTestSplit partitions X and y, keeping each class's proportion in both parts.
// Each class contributes round(n*testRatio) rows to the test part.
func TrainTestSplit(X mat.Matrix, y []int, testRatio float64, rng *rand.Rand) (Split, error) {
	rows, _ := X.Dims()
	if rows != len(y) {
		return Split{}, fmt.Errorf("dataset: %d rows but %d labels", rows, len(y))
	}
	if testRatio <= 0 || testRatio >= 1 {
		return Split{}, fmt.Errorf("dataset: test ratio %v outside (0, 1)", testRatio)
	}

	var trainIdx, testIdx []int
	for _, idx := range classIndices(y, rng) {
		nTest := int(math.Round(float64(len(idx)) * testRatio))
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return Split{}, fmt.Errorf("%w: %d rows cannot fill both parts at ratio %v", ErrNotEnoughSamples, rows, testRatio)
	}
	slices.Sort(trainIdx)
	slices.Sort(testIdx)

	return Split{
		XTrain: SelectRows(X, trainIdx),
		XTest:  SelectRows(X, testIdx),
		YTrain: SelectLabels(y, trainIdx),
		YTest:  SelectLabels(y, testIdx),
	}, nil
}

// StratifiedKFold assigns every sample to one of k test folds so that each class
// is spread as evenly as possible across folds. The returned slices hold row
// indices.
func StratifiedKFold(y []int, k int, rng *rand.Rand) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("dataset: k must be at least 2, got %d", k)
	}
	if len(y) < k {
		return nil, fmt.Errorf("%w: %d samples for %d folds", ErrNotEnoughSamples, len(y), k)
	}

	folds := make([][]int, k)
	next := 0
	for _, idx := range classIndices(y, rng) {
		for _, i := range idx {
			folds[next%k] = append(folds[next%k], i)
			next++
		}
	}
	for _, f := range folds {
		slices.Sort(f)
	}
	return folds, nil
}

// TrainIndices returns every index in [0, n) not in test.
func TrainIndices(n int, test []int) []int {
	return lo.Without(lo.Range(n), test...)
}

// classIndices groups row indices by label, shuffled within each class, with
// classes in ascending label order.
func classIndices(y []int, rng *rand.Rand) [][]int {
	byClass := lo.GroupBy(lo.Range(len(y)), func(i int) int { return y[i] })
	classes := lo.Keys(byClass)
	slices.Sort(classes)

	out := make([][]int, 0, len(classes))
	for _, c := range classes {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		out = append(out, idx)
	}
	return out
}
