package mlexp

import "fmt"

// Label is a binary class label.
type Label uint8

const (
	Negative Label = 0
	Positive Label = 1
)

// LabelVector is a validated, non-empty sequence of binary labels.
type LabelVector []Label

// NewLabelVector validates values and converts them to a LabelVector.
// Every value must be 0 or 1.
func NewLabelVector(values []int) (LabelVector, error) {
	if len(values) == 0 {
		return nil, ErrEmptyLabels
	}
	v := make(LabelVector, len(values))
	for i, x := range values {
		switch x {
		case 0:
			v[i] = Negative
		case 1:
			v[i] = Positive
		default:
			return nil, fmt.Errorf("%w: value %d at index %d", ErrInvalidLabel, x, i)
		}
	}
	return v, nil
}

// Ints returns the labels as plain ints.
func (v LabelVector) Ints() []int {
	out := make([]int, len(v))
	for i, l := range v {
		out[i] = int(l)
	}
	return out
}

// labelPair validates a ground truth / prediction pair.
func labelPair(yTrue, yPred []int) (LabelVector, LabelVector, error) {
	if len(yTrue) != len(yPred) {
		return nil, nil, fmt.Errorf("%w: %d true labels, %d predicted", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	t, err := NewLabelVector(yTrue)
	if err != nil {
		return nil, nil, fmt.Errorf("true labels: %w", err)
	}
	p, err := NewLabelVector(yPred)
	if err != nil {
		return nil, nil, fmt.Errorf("predicted labels: %w", err)
	}
	return t, p, nil
}
