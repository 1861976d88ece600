// Package config loads experiment files for the mlexp command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("config: invalid")
)

// Format is the encoding of an experiment file.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Experiment describes one classification experiment.
type Experiment struct {
	Data    Data     `toml:"data" yaml:"data"`
	Split   Split    `toml:"split" yaml:"split"`
	Model   Model    `toml:"model" yaml:"model"`
	Grid    Grid     `toml:"grid" yaml:"grid"`
	Scorers []string `toml:"scorers" yaml:"scorers"`
	ONNX    ONNX     `toml:"onnx" yaml:"onnx"`
	Output  Output   `toml:"output" yaml:"output"`
}

// Data locates the CSV table and its label column.
type Data struct {
	Path    string     `toml:"path" yaml:"path"`
	Label   string     `toml:"label" yaml:"label"`
	Exclude []string   `toml:"exclude" yaml:"exclude"`
	Relabel []Reassign `toml:"relabel" yaml:"relabel"`
}

// Reassign maps one original class to a binary label.
type Reassign struct {
	From int `toml:"from" yaml:"from"`
	To   int `toml:"to" yaml:"to"`
}

// Split controls the held-out validation set.
type Split struct {
	TestRatio float64 `toml:"test_ratio" yaml:"test_ratio"`
	Seed      uint64  `toml:"seed" yaml:"seed"`
}

// Model holds hyperparameters for a single fit.
type Model struct {
	Params map[string]float64 `toml:"params" yaml:"params"`
}

// Grid configures a hyperparameter search.
type Grid struct {
	Params      map[string][]float64 `toml:"params" yaml:"params"`
	Folds       int                  `toml:"folds" yaml:"folds"`
	Refit       string               `toml:"refit" yaml:"refit"`
	Concurrency int                  `toml:"concurrency" yaml:"concurrency"`
}

// ONNX points at an externally trained model. Empty Model means logistic regression.
type ONNX struct {
	Model     string  `toml:"model" yaml:"model"`
	Input     string  `toml:"input" yaml:"input"`
	Output    string  `toml:"output" yaml:"output"`
	Library   string  `toml:"library" yaml:"library"`
	PoolSize  int     `toml:"pool_size" yaml:"pool_size"`
	Threshold float64 `toml:"threshold" yaml:"threshold"`
}

// Output controls where reports and plots go. Empty paths disable them.
type Output struct {
	Report   string `toml:"report" yaml:"report"`
	Format   string `toml:"format" yaml:"format"`
	PlotsDir string `toml:"plots_dir" yaml:"plots_dir"`
}

// Default returns an experiment with every default applied.
func Default() *Experiment {
	e := &Experiment{}
	e.applyDefaults()
	return e
}

// Load reads an experiment file, choosing the decoder from the file extension.
func Load(path string) (*Experiment, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	e, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// FormatOf maps .toml, .yaml and .yml to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Decode parses r, applies defaults and validates the result.
func Decode(r io.Reader, f Format) (*Experiment, error) {
	var e Experiment
	switch f {
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(&e); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&e); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	e.applyDefaults()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *Experiment) applyDefaults() {
	if e.Data.Label == "" {
		e.Data.Label = "label"
	}
	if e.Split.TestRatio == 0 {
		e.Split.TestRatio = 0.2
	}
	if e.Grid.Folds == 0 {
		e.Grid.Folds = 5
	}
	if e.Grid.Refit == "" {
		e.Grid.Refit = "weighted_accuracy"
	}
	if e.ONNX.PoolSize == 0 {
		e.ONNX.PoolSize = 1
	}
	if e.ONNX.Threshold == 0 {
		e.ONNX.Threshold = 0.5
	}
	if e.Output.Format == "" {
		e.Output.Format = "json"
	}
}

// Validate reports every invalid field at once.
func (e *Experiment) Validate() error {
	var errs []error
	if e.Split.TestRatio <= 0 || e.Split.TestRatio >= 1 {
		errs = append(errs, fmt.Errorf("%w: split.test_ratio %v not in (0, 1)", ErrInvalid, e.Split.TestRatio))
	}
	if e.Grid.Folds < 2 {
		errs = append(errs, fmt.Errorf("%w: grid.folds %d < 2", ErrInvalid, e.Grid.Folds))
	}
	if e.Grid.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("%w: grid.concurrency %d < 0", ErrInvalid, e.Grid.Concurrency))
	}
	if e.ONNX.Threshold < 0 || e.ONNX.Threshold > 1 {
		errs = append(errs, fmt.Errorf("%w: onnx.threshold %v not in [0, 1]", ErrInvalid, e.ONNX.Threshold))
	}
	seen := make(map[int]bool, len(e.Data.Relabel))
	for _, r := range e.Data.Relabel {
		if r.To != 0 && r.To != 1 {
			errs = append(errs, fmt.Errorf("%w: relabel %d -> %d is not binary", ErrInvalid, r.From, r.To))
		}
		if seen[r.From] {
			errs = append(errs, fmt.Errorf("%w: class %d relabeled twice", ErrInvalid, r.From))
		}
		seen[r.From] = true
	}
	return errors.Join(errs...)
}

// RelabelMap returns the class mapping for dataset.ReassignClasses, or nil when
// no relabeling is configured.
func (d Data) RelabelMap() map[int]int {
	if len(d.Relabel) == 0 {
		return nil
	}
	m := make(map[int]int, len(d.Relabel))
	for _, r := range d.Relabel {
		m[r.From] = r.To
	}
	return m
}
