package gridsearch

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/jtbricker/mlexp/dataset"
	"github.com/jtbricker/mlexp/model"
	"github.com/jtbricker/mlexp/scoring"
	"github.com/jtbricker/mlexp/summary"
)

// Data is a feature matrix with its labels.
type Data struct {
	X mat.Matrix
	Y []int
}

// Candidate is one evaluated parameter combination.
type Candidate struct {
	Params model.Params
	Scores map[string][]float64 // per-fold scores by scorer name
	Mean   float64              // refit scorer mean, NaN folds ignored
	Std    float64
	Rank   int // 1 is best
}

// Result is the outcome of Search.
type Result struct {
	Refit      string
	Candidates []Candidate // in grid order
	Best       Candidate
	Estimator  model.Estimator    // best parameters refit on all training data
	Validation map[string]float64 // nil when no validation data was given
}

// Search cross-validates every grid candidate on train, ranks them by the refit
// scorer, refits the best on the whole of train and, when validation has rows,
// sweeps the scorers over it. Fit errors are returned as-is.
func Search(ctx context.Context, factory model.Factory, grid Grid, train, validation Data, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, ok := cfg.scorers[cfg.refit]; !ok {
		return nil, fmt.Errorf("%w: refit scorer %q not among scorers", scoring.ErrUnknownScorer, cfg.refit)
	}

	params, err := grid.Expand()
	if err != nil {
		return nil, err
	}
	folds, err := dataset.StratifiedKFold(train.Y, cfg.folds, dataset.NewRand(cfg.seed))
	if err != nil {
		return nil, fmt.Errorf("folds: %w", err)
	}

	cfg.logger.Info("grid search started",
		"candidates", len(params),
		"folds", cfg.folds,
		"refit", cfg.refit,
	)

	candidates := make([]Candidate, len(params))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, p := range params {
		g.Go(func() error {
			scores, err := scoring.CrossValidate(gctx, factory, p, train.X, train.Y, folds, cfg.scorers)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", p, err)
			}
			s := summary.Describe(cfg.refit, scores[cfg.refit])
			candidates[i] = Candidate{Params: p, Scores: scores, Mean: s.Mean, Std: s.Std}
			cfg.logger.Debug("candidate evaluated",
				"params", p.String(),
				"mean", s.Mean,
				"std", s.Std,
				"undefined_folds", s.Missing,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rank(candidates)
	res := &Result{Refit: cfg.refit, Candidates: candidates}
	for _, c := range candidates {
		if c.Rank == 1 {
			res.Best = c
		}
	}

	est, err := factory(res.Best.Params)
	if err != nil {
		return nil, fmt.Errorf("build best estimator: %w", err)
	}
	if err := est.Fit(train.X, train.Y); err != nil {
		return nil, fmt.Errorf("refit: %w", err)
	}
	res.Estimator = est

	if validation.X != nil && len(validation.Y) > 0 {
		res.Validation, err = scoring.Sweep(ctx, est, validation.X, validation.Y, cfg.scorers)
		if err != nil {
			return nil, fmt.Errorf("validation: %w", err)
		}
	}

	cfg.logger.Info("grid search finished",
		"best", res.Best.Params.String(),
		"mean", res.Best.Mean,
		"std", res.Best.Std,
	)
	return res, nil
}

// rank assigns Rank by descending Mean. NaN means rank last; ties keep grid order.
func rank(cs []Candidate) {
	order := make([]int, len(cs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		x, y := cs[order[a]].Mean, cs[order[b]].Mean
		if math.IsNaN(y) {
			return !math.IsNaN(x)
		}
		return x > y
	})
	for r, i := range order {
		cs[i].Rank = r + 1
	}
}

// Ranked returns the candidates ordered best first.
func (r *Result) Ranked() []Candidate {
	out := make([]Candidate, len(r.Candidates))
	copy(out, r.Candidates)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Rank < out[b].Rank })
	return out
}
