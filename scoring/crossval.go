package scoring

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/jtbricker/mlexp/dataset"
	"github.com/jtbricker/mlexp/model"
)

// CrossValidate fits a fresh estimator per fold, trained on every row outside the
// fold, and sweeps the scorers on the fold. The result maps each scorer name to
// its per-fold scores, NaN where a fold left a metric undefined.
func CrossValidate(ctx context.Context, factory model.Factory, params model.Params, X mat.Matrix, y []int, folds [][]int, scorers map[string]Scorer) (map[string][]float64, error) {
	n, _ := X.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", model.ErrDimension, n, len(y))
	}

	out := make(map[string][]float64, len(scorers))
	for k, test := range folds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		train := dataset.TrainIndices(n, test)
		if len(train) == 0 || len(test) == 0 {
			return nil, fmt.Errorf("%w: fold %d has an empty side", dataset.ErrNotEnoughSamples, k)
		}

		est, err := factory(params)
		if err != nil {
			return nil, fmt.Errorf("build estimator: %w", err)
		}
		if err := est.Fit(dataset.SelectRows(X, train), dataset.SelectLabels(y, train)); err != nil {
			return nil, fmt.Errorf("fold %d: fit: %w", k, err)
		}

		scores, err := Sweep(ctx, est, dataset.SelectRows(X, test), dataset.SelectLabels(y, test), scorers)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", k, err)
		}
		for name, v := range scores {
			out[name] = append(out[name], v)
		}
	}
	return out, nil
}
