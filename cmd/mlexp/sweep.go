package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jtbricker/mlexp/dataset"
	"github.com/jtbricker/mlexp/inference"
	"github.com/jtbricker/mlexp/internal/config"
	"github.com/jtbricker/mlexp/model"
	"github.com/jtbricker/mlexp/report"
	"github.com/jtbricker/mlexp/scoring"
	"github.com/jtbricker/mlexp/summary"
)

func newSweepCmd() *cobra.Command {
	var (
		ef       experimentFlags
		params   []string
		onnxPath string
		step     float64
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Score one model with every scorer",
		Long: `Sweep fits logistic regression on the training split, cross-validates it and
scores it on the held-out split. With --onnx an externally trained model is
scored on every row instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			e, err := ef.experiment(fs)
			if err != nil {
				return err
			}
			if fs.Changed("param") {
				if e.Model.Params, err = parseParams(params); err != nil {
					return err
				}
			}
			if fs.Changed("onnx") {
				e.ONNX.Model = onnxPath
			}
			scorers, err := selectScorers(e.Scorers)
			if err != nil {
				return err
			}
			X, y, names, err := loadFeatures(e)
			if err != nil {
				return err
			}

			if e.ONNX.Model != "" {
				return sweepONNX(cmd, e, X, y, scorers, step)
			}
			return sweepLogistic(cmd, e, X, y, names, scorers, step)
		},
	}

	ef.register(cmd.Flags())
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "model parameter name=value (repeatable)")
	cmd.Flags().StringVar(&onnxPath, "onnx", "", "score an ONNX model instead of fitting one")
	cmd.Flags().Float64Var(&step, "threshold-step", 0, "also sweep decision thresholds in this step (0 disables)")
	return cmd
}

func sweepLogistic(cmd *cobra.Command, e *config.Experiment, X *mat.Dense, y []int, names []string, scorers map[string]scoring.Scorer, step float64) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	rng := dataset.NewRand(e.Split.Seed)

	split, err := dataset.TrainTestSplit(X, y, e.Split.TestRatio, rng)
	if err != nil {
		return err
	}
	folds, err := dataset.StratifiedKFold(split.YTrain, e.Grid.Folds, rng)
	if err != nil {
		return err
	}
	cv, err := scoring.CrossValidate(ctx, model.LogisticFactory, e.Model.Params, split.XTrain, split.YTrain, folds, scorers)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "cross-validation (%d folds, %s):\n", len(folds), model.Params(e.Model.Params))
	if err := summary.PrintScores(out, cv); err != nil {
		return err
	}

	est, err := model.NewLogisticRegression(e.Model.Params)
	if err != nil {
		return err
	}
	if err := est.Fit(split.XTrain, split.YTrain); err != nil {
		return err
	}
	loggerFor(cmd).Debug("fitted", "iterations", est.Iterations(), "intercept", est.Intercept())

	scores, err := scoring.Sweep(ctx, est, split.XTest, split.YTest, scorers)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nheld-out (%d rows):\n", len(split.YTest))
	if err := printSweep(out, scores); err != nil {
		return err
	}
	if step > 0 {
		if err := printThresholds(out, est, split.XTest, split.YTest, step); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "\ncoefficients:")
	if err := summary.PrintImportances(out, names, est.Coefficients()); err != nil {
		return err
	}

	if e.Output.PlotsDir != "" {
		if err := saveModelPlots(e.Output.PlotsDir, est, split.XTest, split.YTest, names); err != nil {
			return err
		}
	}
	if e.Output.Report != "" {
		msg := &structpb.Struct{Fields: map[string]*structpb.Value{
			"cross_validation": structpb.NewStructValue(report.Summaries(summary.Summarize(cv))),
			"held_out":         structpb.NewStructValue(report.Sweep(scores)),
		}}
		return writeReport(e.Output.Report, e.Output.Format, msg)
	}
	return nil
}

func sweepONNX(cmd *cobra.Command, e *config.Experiment, X *mat.Dense, y []int, scorers map[string]scoring.Scorer, step float64) error {
	pool, err := inference.NewPool(inference.Config{
		ModelPath:   e.ONNX.Model,
		InputName:   e.ONNX.Input,
		OutputName:  e.ONNX.Output,
		LibraryPath: e.ONNX.Library,
	}, e.ONNX.PoolSize)
	if err != nil {
		return err
	}
	defer func() { _ = pool.Close() }()

	clf := inference.NewClassifier(pool,
		inference.WithThreshold(e.ONNX.Threshold),
		inference.WithLogger(loggerFor(cmd)),
	)
	scores, err := scoring.Sweep(cmd.Context(), clf, X, y, scorers)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d rows):\n", e.ONNX.Model, len(y))
	if err := printSweep(out, scores); err != nil {
		return err
	}
	if step > 0 {
		if err := printThresholds(out, clf, X, y, step); err != nil {
			return err
		}
	}

	if e.Output.PlotsDir != "" {
		if err := saveModelPlots(e.Output.PlotsDir, clf, X, y, nil); err != nil {
			return err
		}
	}
	if e.Output.Report != "" {
		return writeReport(e.Output.Report, e.Output.Format, report.Sweep(scores))
	}
	return nil
}

func printSweep(w io.Writer, scores map[string]float64) error {
	for _, s := range scoring.Sorted(scores) {
		if _, err := fmt.Fprintf(w, "  %s: %.4f\n", s.Name, s.Value); err != nil {
			return err
		}
	}
	return nil
}

func printThresholds(w io.Writer, clf model.Classifier, X mat.Matrix, y []int, step float64) error {
	proba, err := clf.PredictProba(X)
	if err != nil {
		return err
	}
	results, err := scoring.ThresholdSweep(y, proba, scoring.Thresholds(step, 1, step))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nthreshold\taccuracy\tsensitivity\tspecificity\tppv\tnpv")
	for _, r := range results {
		m := r.Metrics
		fmt.Fprintf(tw, "%.3f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.Threshold, m.Accuracy, m.Sensitivity, m.Specificity, m.PPV, m.NPV)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if best, ok := scoring.BestThreshold(results); ok {
		_, err = fmt.Fprintf(w, "best threshold: %.3f (weighted accuracy %.4f)\n", best.Threshold, best.Metrics.Accuracy)
	}
	return err
}
