package mlexp

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrUndefinedMetric indicates a metric whose denominator is zero because one
	// class is entirely absent. The accompanying value is NaN.
	ErrUndefinedMetric = errors.New("mlexp: undefined metric")

	// ErrLengthMismatch indicates paired inputs of unequal length.
	ErrLengthMismatch = errors.New("mlexp: length mismatch")

	// ErrEmptyLabels indicates a label vector with no elements.
	ErrEmptyLabels = errors.New("mlexp: empty label vector")

	// ErrInvalidLabel indicates a label outside {0, 1}.
	ErrInvalidLabel = errors.New("mlexp: invalid binary label")
)
