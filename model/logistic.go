package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is an L2-regularized binary logistic regression trained by
// full-batch gradient descent.
type LogisticRegression struct {
	C            float64 // inverse regularization strength
	LearningRate float64
	MaxIter      int
	Tol          float64 // stop when the gradient norm falls below Tol
	Threshold    float64

	w      *mat.VecDense
	b      float64
	nIter  int
	fitted bool
}

// NewLogisticRegression applies p over the defaults. Accepted keys are C,
// learning_rate, max_iter, tol and threshold.
func NewLogisticRegression(p Params) (*LogisticRegression, error) {
	m := &LogisticRegression{
		C:            1.0,
		LearningRate: 0.1,
		MaxIter:      1000,
		Tol:          1e-6,
		Threshold:    0.5,
	}
	for k, v := range p {
		switch k {
		case "C":
			if v <= 0 {
				return nil, fmt.Errorf("model: C must be positive, got %v", v)
			}
			m.C = v
		case "learning_rate":
			m.LearningRate = v
		case "max_iter":
			m.MaxIter = int(v)
		case "tol":
			m.Tol = v
		case "threshold":
			m.Threshold = v
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownParam, k)
		}
	}
	return m, nil
}

// LogisticFactory is a Factory for LogisticRegression.
func LogisticFactory(p Params) (Estimator, error) {
	return NewLogisticRegression(p)
}

// Fit trains the model on X and 0/1 labels y.
func (m *LogisticRegression) Fit(X mat.Matrix, y []int) error {
	if err := checkRows(X, y); err != nil {
		return err
	}
	n, d := X.Dims()
	target := make([]float64, n)
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("model: label %d at row %d is not binary", label, i)
		}
		target[i] = float64(label)
	}

	w := mat.NewVecDense(d, nil)
	b := 0.0
	resid := mat.NewVecDense(n, nil)
	var z, grad mat.VecDense
	invN := 1 / float64(n)

	iter := 0
	for iter < m.MaxIter {
		iter++
		z.MulVec(X, w)
		for i := 0; i < n; i++ {
			resid.SetVec(i, sigmoid(z.AtVec(i)+b)-target[i])
		}

		grad.MulVec(X.T(), resid)
		grad.ScaleVec(invN, &grad)
		grad.AddScaledVec(&grad, invN/m.C, w)
		gb := floats.Sum(resid.RawVector().Data) * invN

		w.AddScaledVec(w, -m.LearningRate, &grad)
		b -= m.LearningRate * gb

		if math.Hypot(mat.Norm(&grad, 2), gb) < m.Tol {
			break
		}
	}

	m.w, m.b, m.nIter, m.fitted = w, b, iter, true
	return nil
}

// PredictProba returns P(y=1) for every row of X.
func (m *LogisticRegression) PredictProba(X mat.Matrix) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	_, d := X.Dims()
	if d != m.w.Len() {
		return nil, fmt.Errorf("%w: %d features, model has %d", ErrDimension, d, m.w.Len())
	}

	var z mat.VecDense
	z.MulVec(X, m.w)
	out := make([]float64, z.Len())
	for i := range out {
		out[i] = sigmoid(z.AtVec(i) + m.b)
	}
	return out, nil
}

// Predict labels rows of X at the configured threshold.
func (m *LogisticRegression) Predict(X mat.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return Threshold(proba, m.Threshold), nil
}

// Coefficients returns a copy of the learned feature weights.
func (m *LogisticRegression) Coefficients() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, m.w.Len())
	copy(out, m.w.RawVector().Data)
	return out
}

// Intercept returns the learned bias.
func (m *LogisticRegression) Intercept() float64 { return m.b }

// Iterations returns how many gradient steps the last Fit took.
func (m *LogisticRegression) Iterations() int { return m.nIter }

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}
