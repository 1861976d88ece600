package inference

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/jtbricker/mlexp/model"
)

// Option configures a Classifier.
type Option func(*classifierConfig)

type classifierConfig struct {
	threshold float64
	batchSize int
	logger    *slog.Logger
}

func defaultClassifierConfig() classifierConfig {
	return classifierConfig{
		threshold: 0.5,
		batchSize: 1024,
		logger:    slog.Default(),
	}
}

// WithThreshold sets the decision threshold on the positive-class probability
// (default: 0.5).
func WithThreshold(t float64) Option {
	return func(c *classifierConfig) {
		c.threshold = t
	}
}

// WithBatchSize sets how many rows go to a single session run (default: 1024).
func WithBatchSize(n int) Option {
	return func(c *classifierConfig) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *classifierConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Classifier is a model.Classifier backed by an ONNX session pool. Batches are
// scored concurrently, one per pooled session.
type Classifier struct {
	pool *Pool
	cfg  classifierConfig
}

var _ model.Classifier = (*Classifier)(nil)

// NewClassifier wraps pool. The pool stays owned by the caller.
func NewClassifier(pool *Pool, opts ...Option) *Classifier {
	cfg := defaultClassifierConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Classifier{pool: pool, cfg: cfg}
}

// PredictProba implements model.Classifier.
func (c *Classifier) PredictProba(X mat.Matrix) ([]float64, error) {
	return c.PredictProbaContext(context.Background(), X)
}

// Predict implements model.Classifier.
func (c *Classifier) Predict(X mat.Matrix) ([]int, error) {
	return c.PredictContext(context.Background(), X)
}

// PredictContext thresholds PredictProbaContext.
func (c *Classifier) PredictContext(ctx context.Context, X mat.Matrix) ([]int, error) {
	proba, err := c.PredictProbaContext(ctx, X)
	if err != nil {
		return nil, err
	}
	return model.Threshold(proba, c.cfg.threshold), nil
}

// PredictProbaContext returns the positive-class probability per row of X.
func (c *Classifier) PredictProbaContext(ctx context.Context, X mat.Matrix) ([]float64, error) {
	rows, features := X.Dims()
	out := make([]float64, rows)
	batches := batchBounds(rows, c.cfg.batchSize)

	c.cfg.logger.Debug("onnx predict",
		"rows", rows,
		"features", features,
		"batches", len(batches),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.pool.Size())
	for _, b := range batches {
		g.Go(func() error {
			s, err := c.pool.Acquire(gctx)
			if err != nil {
				return err
			}
			defer c.pool.Release(s)

			probs, err := s.Infer(gctx, flatten(X, b[0], b[1]), b[1]-b[0], features)
			if err != nil {
				return err
			}
			for i, p := range probs {
				out[b[0]+i] = float64(p)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// batchBounds splits [0, n) into half-open ranges of at most size rows.
func batchBounds(n, size int) [][2]int {
	var out [][2]int
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}
	return out
}

// flatten copies rows [lo, hi) of X into a row-major float32 slice.
func flatten(X mat.Matrix, lo, hi int) []float32 {
	_, cols := X.Dims()
	out := make([]float32, 0, (hi-lo)*cols)
	for i := lo; i < hi; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, float32(X.At(i, j)))
		}
	}
	return out
}
