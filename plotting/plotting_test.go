package plotting

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtbricker/mlexp"
)

func TestROC(t *testing.T) {
	p, auc, err := ROC([]int{0, 0, 1, 1}, []float64{0.1, 0.4, 0.35, 0.8}, "ROC")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, auc, 1e-12)
	assert.Equal(t, "ROC", p.Title.Text)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p, "png"))
	assert.NotZero(t, buf.Len())
}

func TestROC_SingleClass(t *testing.T) {
	_, _, err := ROC([]int{0, 0}, []float64{0.1, 0.2}, "")
	require.ErrorIs(t, err, mlexp.ErrUndefinedMetric)
}

func TestCoefficients(t *testing.T) {
	p, err := Coefficients([]string{"a", "b", "c"}, []float64{0.2, -1.5, 0.7}, "coef")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "coef.svg")
	require.NoError(t, Save(p, path))
	assert.FileExists(t, path)
}

func TestCoefficients_LengthMismatch(t *testing.T) {
	_, err := Coefficients([]string{"a", "b"}, []float64{1}, "")
	require.ErrorIs(t, err, mlexp.ErrLengthMismatch)

	_, err = Coefficients(nil, nil, "")
	require.ErrorIs(t, err, ErrNoData)
}

func TestConfusionMatrix(t *testing.T) {
	c := mlexp.ContingencyCounts{TN: 50, FP: 5, FN: 10, TP: 135}

	for _, normalize := range []bool{false, true} {
		p, err := ConfusionMatrix(c, normalize, "cm")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Render(&buf, p, "svg"))
		if normalize {
			assert.Contains(t, buf.String(), "0.93")
		} else {
			assert.Contains(t, buf.String(), "135")
		}
	}

	_, err := ConfusionMatrix(mlexp.ContingencyCounts{}, false, "")
	require.ErrorIs(t, err, ErrNoData)
}

func TestConfusionMatrix_MissingClass(t *testing.T) {
	p, err := ConfusionMatrix(mlexp.ContingencyCounts{TN: 3, FP: 1}, true, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p, "png"))
}

func TestGridScores(t *testing.T) {
	p, err := GridScores(
		[]string{"C=0.1", "C=1", "C=10"},
		[]float64{0.7, math.NaN(), 0.9},
		[]float64{0.05, math.NaN(), 0.02},
		"grid",
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p, "png"))

	_, err = GridScores([]string{"a"}, []float64{math.NaN()}, []float64{0}, "")
	require.ErrorIs(t, err, ErrNoData)

	_, err = GridScores([]string{"a"}, []float64{1, 2}, []float64{0}, "")
	require.ErrorIs(t, err, mlexp.ErrLengthMismatch)
}
