package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtbricker/mlexp/dataset"
	"github.com/jtbricker/mlexp/gridsearch"
	"github.com/jtbricker/mlexp/model"
	"github.com/jtbricker/mlexp/report"
)

func newGridCmd() *cobra.Command {
	var (
		ef          experimentFlags
		entries     []string
		refit       string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Cross-validated grid search over logistic regression",
		Long: `Grid expands every parameter combination, cross-validates each on the
training split, refits the best on the whole training split and scores it on
the held-out split. Example:

  mlexp grid --data cells.csv --grid C=0.01,0.1,1,10 --grid max_iter=500,2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			e, err := ef.experiment(fs)
			if err != nil {
				return err
			}
			if fs.Changed("grid") {
				if e.Grid.Params, err = parseGrid(entries); err != nil {
					return err
				}
			}
			if fs.Changed("refit") {
				e.Grid.Refit = refit
			}
			if fs.Changed("concurrency") {
				e.Grid.Concurrency = concurrency
			}
			scorers, err := selectScorers(e.Scorers)
			if err != nil {
				return err
			}
			X, y, names, err := loadFeatures(e)
			if err != nil {
				return err
			}
			split, err := dataset.TrainTestSplit(X, y, e.Split.TestRatio, dataset.NewRand(e.Split.Seed))
			if err != nil {
				return err
			}

			res, err := gridsearch.Search(cmd.Context(), model.LogisticFactory, gridsearch.Grid(e.Grid.Params),
				gridsearch.Data{X: split.XTrain, Y: split.YTrain},
				gridsearch.Data{X: split.XTest, Y: split.YTest},
				gridsearch.WithFolds(e.Grid.Folds),
				gridsearch.WithSeed(e.Split.Seed),
				gridsearch.WithRefit(e.Grid.Refit),
				gridsearch.WithScorers(scorers),
				gridsearch.WithConcurrency(e.Grid.Concurrency),
				gridsearch.WithLogger(loggerFor(cmd)),
			)
			if err != nil {
				return err
			}
			if err := res.Print(cmd.OutOrStdout()); err != nil {
				return err
			}

			if dir := e.Output.PlotsDir; dir != "" {
				p, err := res.Plot()
				if err != nil {
					return fmt.Errorf("grid plot: %w", err)
				}
				if err := savePlot(dir, "grid.png", p); err != nil {
					return err
				}
				if err := saveModelPlots(dir, res.Estimator, split.XTest, split.YTest, names); err != nil {
					return err
				}
			}
			if e.Output.Report != "" {
				return writeReport(e.Output.Report, e.Output.Format, report.Grid(res))
			}
			return nil
		},
	}

	ef.register(cmd.Flags())
	f := cmd.Flags()
	f.StringArrayVarP(&entries, "grid", "g", nil, "parameter values name=v1,v2,... (repeatable)")
	f.StringVar(&refit, "refit", "weighted_accuracy", "scorer used to pick the best candidate")
	f.IntVar(&concurrency, "concurrency", 0, "candidates evaluated at once (default NumCPU)")
	return cmd
}
