package gridsearch

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/plot"

	"github.com/jtbricker/mlexp/plotting"
	"github.com/jtbricker/mlexp/scoring"
)

// Print writes the candidates best first, then the validation scores if any.
func (r *Result) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "rank\tparams\tmean %s\tstd\n", r.Refit)
	for _, c := range r.Ranked() {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\n", c.Rank, c.Params, c.Mean, c.Std)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.Validation == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nvalidation (%s):\n", r.Best.Params); err != nil {
		return err
	}
	for _, s := range scoring.Sorted(r.Validation) {
		if _, err := fmt.Fprintf(w, "  %s: %.4f\n", s.Name, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// Plot charts the refit scorer mean and std per candidate, in grid order.
func (r *Result) Plot() (*plot.Plot, error) {
	labels := make([]string, len(r.Candidates))
	means := make([]float64, len(r.Candidates))
	stds := make([]float64, len(r.Candidates))
	for i, c := range r.Candidates {
		labels[i] = c.Params.String()
		means[i] = c.Mean
		stds[i] = c.Std
	}
	return plotting.GridScores(labels, means, stds, "Grid search: "+r.Refit)
}
