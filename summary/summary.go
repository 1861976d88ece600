// Package summary reports cross-validation scores and feature importances.
package summary

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/jtbricker/mlexp"
)

// Summary describes one metric across folds. Missing counts NaN entries, which are
// excluded from Mean and Std.
type Summary struct {
	Name    string
	Mean    float64
	Std     float64 // population standard deviation
	N       int
	Missing int
}

// Describe summarizes a single series, ignoring NaN. An all-NaN or empty series
// yields NaN mean and std.
func Describe(name string, values []float64) Summary {
	present := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	s := Summary{
		Name:    name,
		Mean:    math.NaN(),
		Std:     math.NaN(),
		N:       len(present),
		Missing: len(values) - len(present),
	}
	if len(present) == 0 {
		return s
	}
	if mean, err := stats.Mean(present); err == nil {
		s.Mean = mean
	}
	if std, err := stats.StandardDeviationPopulation(present); err == nil {
		s.Std = std
	}
	return s
}

// Summarize describes every series, sorted by metric name.
func Summarize(scores map[string][]float64) []Summary {
	names := make([]string, 0, len(scores))
	for n := range scores {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]Summary, len(names))
	for i, n := range names {
		out[i] = Describe(n, scores[n])
	}
	return out
}

// PrintScores writes "name: mean (+/- std)" for every metric, sorted by name.
func PrintScores(w io.Writer, scores map[string][]float64) error {
	for _, s := range Summarize(scores) {
		line := fmt.Sprintf("%s: %.4f (+/- %.4f)", s.Name, s.Mean, s.Std)
		if s.Missing > 0 {
			line += fmt.Sprintf(" [%d of %d folds undefined]", s.Missing, s.N+s.Missing)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Importance is a named feature weight.
type Importance struct {
	Name  string
	Value float64
}

// RankImportances pairs names with values and sorts by absolute value,
// largest first. Lengths must match.
func RankImportances(names []string, values []float64) ([]Importance, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("%w: %d names, %d values", mlexp.ErrLengthMismatch, len(names), len(values))
	}
	out := make([]Importance, len(names))
	for i := range names {
		out[i] = Importance{Name: names[i], Value: values[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Value) > math.Abs(out[j].Value)
	})
	return out, nil
}

// PrintImportances writes one "name: value" line per feature, ranked by
// RankImportances.
func PrintImportances(w io.Writer, names []string, values []float64) error {
	ranked, err := RankImportances(names, values)
	if err != nil {
		return err
	}
	width := 0
	for _, imp := range ranked {
		width = max(width, len(imp.Name))
	}
	for _, imp := range ranked {
		if _, err := fmt.Fprintf(w, "%-*s  %+.4f\n", width, imp.Name, imp.Value); err != nil {
			return err
		}
	}
	return nil
}
