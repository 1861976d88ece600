package gridsearch

import (
	"log/slog"
	"runtime"

	"github.com/jtbricker/mlexp/scoring"
)

// Option configures Search.
type Option func(*config)

type config struct {
	folds       int
	seed        uint64
	refit       string
	scorers     map[string]scoring.Scorer
	concurrency int
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		folds:       5,
		refit:       "weighted_accuracy",
		scorers:     scoring.Default(),
		concurrency: runtime.NumCPU(),
		logger:      slog.Default(),
	}
}

// WithFolds sets the number of stratified cross-validation folds (default: 5).
func WithFolds(k int) Option {
	return func(c *config) {
		if k >= 2 {
			c.folds = k
		}
	}
}

// WithSeed seeds the fold assignment (default: 0).
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithRefit names the scorer used to rank candidates (default: weighted_accuracy).
func WithRefit(name string) Option {
	return func(c *config) {
		if name != "" {
			c.refit = name
		}
	}
}

// WithScorers sets the scorers evaluated per fold and on the validation set
// (default: scoring.Default()).
func WithScorers(s map[string]scoring.Scorer) Option {
	return func(c *config) {
		if len(s) > 0 {
			c.scorers = s
		}
	}
}

// WithConcurrency bounds how many candidates are cross-validated at once
// (default: runtime.NumCPU()).
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
