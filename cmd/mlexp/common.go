package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"google.golang.org/protobuf/proto"

	"github.com/jtbricker/mlexp"
	"github.com/jtbricker/mlexp/dataset"
	"github.com/jtbricker/mlexp/internal/config"
	"github.com/jtbricker/mlexp/model"
	"github.com/jtbricker/mlexp/plotting"
	"github.com/jtbricker/mlexp/report"
	"github.com/jtbricker/mlexp/scoring"
)

func loggerFor(*cobra.Command) *slog.Logger {
	return slog.Default()
}

// experimentFlags are shared by sweep and grid. Each one overrides the
// experiment file only when set on the command line.
type experimentFlags struct {
	configPath string
	data       string
	label      string
	exclude    []string
	testRatio  float64
	seed       uint64
	scorers    []string
	folds      int
	plotsDir   string
	reportOut  string
	format     string
}

func (f *experimentFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "experiment file (.toml, .yaml)")
	fs.StringVar(&f.data, "data", "", "input CSV")
	fs.StringVar(&f.label, "label", "label", "label column")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "columns that are not features")
	fs.Float64Var(&f.testRatio, "test-ratio", 0.2, "held-out fraction per class")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed for splits and folds")
	fs.StringSliceVar(&f.scorers, "scorers", nil, "scorers to evaluate (default all)")
	fs.IntVar(&f.folds, "folds", 5, "cross-validation folds")
	fs.StringVar(&f.plotsDir, "plots", "", "directory for plots")
	fs.StringVar(&f.reportOut, "report", "", "write a report to this file")
	fs.StringVar(&f.format, "format", "json", "report format: json or binary")
}

func (f *experimentFlags) experiment(fs *pflag.FlagSet) (*config.Experiment, error) {
	e := config.Default()
	if f.configPath != "" {
		var err error
		if e, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}
	if fs.Changed("data") {
		e.Data.Path = f.data
	}
	if fs.Changed("label") {
		e.Data.Label = f.label
	}
	if fs.Changed("exclude") {
		e.Data.Exclude = f.exclude
	}
	if fs.Changed("test-ratio") {
		e.Split.TestRatio = f.testRatio
	}
	if fs.Changed("seed") {
		e.Split.Seed = f.seed
	}
	if fs.Changed("scorers") {
		e.Scorers = f.scorers
	}
	if fs.Changed("folds") {
		e.Grid.Folds = f.folds
	}
	if fs.Changed("plots") {
		e.Output.PlotsDir = f.plotsDir
	}
	if fs.Changed("report") {
		e.Output.Report = f.reportOut
	}
	if fs.Changed("format") {
		e.Output.Format = f.format
	}
	if e.Data.Path == "" {
		return nil, fmt.Errorf("no input data: set --data or data.path")
	}
	return e, e.Validate()
}

// loadFeatures reads the table, applies any relabeling and extracts the feature
// matrix and labels.
func loadFeatures(e *config.Experiment) (*mat.Dense, []int, []string, error) {
	t, err := dataset.LoadCSV(e.Data.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	if m := e.Data.RelabelMap(); m != nil {
		if t, err = dataset.ReassignClasses(t, m, e.Data.Label); err != nil {
			return nil, nil, nil, err
		}
	}
	y, err := t.Labels(e.Data.Label)
	if err != nil {
		return nil, nil, nil, err
	}
	X, names, err := t.Features(append([]string{e.Data.Label}, e.Data.Exclude...)...)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Info("loaded data",
		"path", e.Data.Path,
		"rows", t.Len(),
		"features", len(names),
	)
	return X, y, names, nil
}

func selectScorers(names []string) (map[string]scoring.Scorer, error) {
	if len(names) == 0 {
		return scoring.Default(), nil
	}
	return scoring.Select(names)
}

func writeReport(path, format string, msg proto.Message) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(out, msg, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func savePlot(dir, name string, p *plot.Plot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := plotting.Save(p, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	slog.Info("saved plot", "path", path)
	return nil
}

// saveModelPlots writes ROC, confusion matrix and, for linear models, coefficient
// plots for clf evaluated on X and y.
func saveModelPlots(dir string, clf model.Classifier, X mat.Matrix, y []int, names []string) error {
	proba, err := clf.PredictProba(X)
	if err != nil {
		return err
	}
	if p, auc, err := plotting.ROC(y, proba, "ROC"); err != nil {
		slog.Warn("skipping ROC plot", "err", err)
	} else {
		p.Title.Text = fmt.Sprintf("ROC (AUC = %.3f)", auc)
		if err := savePlot(dir, "roc.png", p); err != nil {
			return err
		}
	}

	pred, err := clf.Predict(X)
	if err != nil {
		return err
	}
	c, err := mlexp.Counts(y, pred)
	if err != nil {
		return err
	}
	p, err := plotting.ConfusionMatrix(c, true, "Confusion matrix (normalized)")
	if err != nil {
		return err
	}
	if err := savePlot(dir, "confusion.png", p); err != nil {
		return err
	}

	if lin, ok := clf.(model.Coefficienter); ok {
		p, err := plotting.Coefficients(names, lin.Coefficients(), "Coefficients")
		if err != nil {
			return err
		}
		return savePlot(dir, "coefficients.png", p)
	}
	return nil
}

// parseParams parses "C=0.1" style pairs.
func parseParams(pairs []string) (model.Params, error) {
	p := model.Params{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("param %q: want name=value", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", pair, err)
		}
		p[strings.TrimSpace(k)] = f
	}
	return p, nil
}

// parseGrid parses "C=0.01,0.1,1" style entries, one parameter each.
func parseGrid(entries []string) (map[string][]float64, error) {
	g := make(map[string][]float64, len(entries))
	for _, e := range entries {
		k, vs, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("grid %q: want name=v1,v2,...", e)
		}
		for _, v := range strings.Split(vs, ",") {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("grid %q: %w", e, err)
			}
			k = strings.TrimSpace(k)
			g[k] = append(g[k], f)
		}
	}
	return g, nil
}
