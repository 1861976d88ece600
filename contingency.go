package mlexp

import "fmt"

// ContingencyCounts is the raw 2x2 confusion matrix of a binary classifier.
type ContingencyCounts struct {
	TN int
	FP int
	FN int
	TP int
}

// ConfusionMatrix tallies yTrue against yPred.
// Cell (0,0) is TN, (0,1) FP, (1,0) FN and (1,1) TP.
func ConfusionMatrix(yTrue, yPred LabelVector) (ContingencyCounts, error) {
	if len(yTrue) != len(yPred) {
		return ContingencyCounts{}, fmt.Errorf("%w: %d true labels, %d predicted", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return ContingencyCounts{}, ErrEmptyLabels
	}

	var c ContingencyCounts
	for i := range yTrue {
		switch {
		case yTrue[i] == Negative && yPred[i] == Negative:
			c.TN++
		case yTrue[i] == Negative && yPred[i] == Positive:
			c.FP++
		case yTrue[i] == Positive && yPred[i] == Negative:
			c.FN++
		case yTrue[i] == Positive && yPred[i] == Positive:
			c.TP++
		default:
			return ContingencyCounts{}, fmt.Errorf("%w: pair (%d, %d) at index %d", ErrInvalidLabel, yTrue[i], yPred[i], i)
		}
	}
	return c, nil
}

// Matrix returns the counts laid out as [true][predicted].
func (c ContingencyCounts) Matrix() [2][2]int {
	return [2][2]int{
		{c.TN, c.FP},
		{c.FN, c.TP},
	}
}

// Total returns the number of samples.
func (c ContingencyCounts) Total() int { return c.TN + c.FP + c.FN + c.TP }

// Positives returns the number of samples whose true label is positive.
func (c ContingencyCounts) Positives() int { return c.TP + c.FN }

// Negatives returns the number of samples whose true label is negative.
func (c ContingencyCounts) Negatives() int { return c.TN + c.FP }

// Accuracy is (TP+TN)/total on the raw counts.
func (c ContingencyCounts) Accuracy() float64 { return ratio(c.TP+c.TN, c.Total()) }

// Sensitivity is TP/(TP+FN) on the raw counts. NaN without positives.
func (c ContingencyCounts) Sensitivity() float64 { return ratio(c.TP, c.TP+c.FN) }

// Specificity is TN/(TN+FP) on the raw counts. NaN without negatives.
func (c ContingencyCounts) Specificity() float64 { return ratio(c.TN, c.TN+c.FP) }

// Precision is TP/(TP+FP) on the raw counts. NaN without positive predictions.
func (c ContingencyCounts) Precision() float64 { return ratio(c.TP, c.TP+c.FP) }

// NPV is TN/(TN+FN) on the raw counts. NaN without negative predictions.
func (c ContingencyCounts) NPV() float64 { return ratio(c.TN, c.TN+c.FN) }

func (c ContingencyCounts) String() string {
	return fmt.Sprintf("TN=%d FP=%d FN=%d TP=%d", c.TN, c.FP, c.FN, c.TP)
}

// ratio divides as float64; 0/0 yields NaN.
func ratio(num, den int) float64 {
	return float64(num) / float64(den)
}
