package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jtbricker/mlexp"
	"github.com/jtbricker/mlexp/dataset"
	"github.com/jtbricker/mlexp/plotting"
	"github.com/jtbricker/mlexp/report"
)

func newMetricsCmd() *cobra.Command {
	var (
		trueCol   string
		predCol   string
		plotPath  string
		normalize bool
		reportOut string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "metrics CSV",
		Short: "Confusion matrix, raw and weighted metrics for a column of predictions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			yTrue, err := t.Labels(trueCol)
			if err != nil {
				return err
			}
			yPred, err := t.Labels(predCol)
			if err != nil {
				return err
			}

			c, err := mlexp.Counts(yTrue, yPred)
			if err != nil {
				return err
			}
			rates := mlexp.ComputeWeightedRates(c)
			if err := rates.Err(); err != nil {
				loggerFor(cmd).Warn("weighted rates partly undefined", "err", err)
			}
			if err := printMetrics(cmd.OutOrStdout(), c, rates); err != nil {
				return err
			}

			if plotPath != "" {
				p, err := plotting.ConfusionMatrix(c, normalize, "Confusion matrix: "+filepath.Base(args[0]))
				if err != nil {
					return err
				}
				if err := plotting.Save(p, plotPath); err != nil {
					return err
				}
			}
			if reportOut != "" {
				return writeReport(reportOut, format, report.Sweep(metricMap(c, rates)))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&trueCol, "true", "label", "column holding the true labels")
	f.StringVar(&predCol, "pred", "prediction", "column holding the predicted labels")
	f.StringVar(&plotPath, "plot", "", "write a confusion matrix plot (.png, .svg, .pdf)")
	f.BoolVar(&normalize, "normalize", false, "normalize the confusion matrix per true class")
	f.StringVar(&reportOut, "report", "", "write the metrics as a report")
	f.StringVar(&format, "format", "json", "report format: json or binary")
	return cmd
}

func printMetrics(w io.Writer, c mlexp.ContingencyCounts, r mlexp.WeightedRates) error {
	m := r.Metrics()
	_, err := fmt.Fprintf(w, `confusion matrix: %s

raw:
  accuracy:    %.4f
  sensitivity: %.4f
  specificity: %.4f
  precision:   %.4f
  npv:         %.4f

weighted rates:
  tp: %.4f  fn: %.4f
  fp: %.4f  tn: %.4f

weighted:
  accuracy:    %.4f
  sensitivity: %.4f
  specificity: %.4f
  ppv:         %.4f
  npv:         %.4f
`,
		c,
		c.Accuracy(), c.Sensitivity(), c.Specificity(), c.Precision(), c.NPV(),
		r.TP, r.FN, r.FP, r.TN,
		m.Accuracy, m.Sensitivity, m.Specificity, m.PPV, m.NPV,
	)
	return err
}

func metricMap(c mlexp.ContingencyCounts, r mlexp.WeightedRates) map[string]float64 {
	m := r.Metrics()
	return map[string]float64{
		"accuracy":             c.Accuracy(),
		"recall":               c.Sensitivity(),
		"specificity":          c.Specificity(),
		"precision":            c.Precision(),
		"npv":                  c.NPV(),
		"tp_weighted":          r.TP,
		"fp_weighted":          r.FP,
		"fn_weighted":          r.FN,
		"tn_weighted":          r.TN,
		"weighted_accuracy":    m.Accuracy,
		"weighted_sensitivity": m.Sensitivity,
		"weighted_specificity": m.Specificity,
		"weighted_ppv":         m.PPV,
		"weighted_npv":         m.NPV,
	}
}

