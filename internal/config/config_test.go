package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlExperiment = `
scorers = ["weighted_accuracy", "roc_auc"]

[data]
path = "cells.csv"
label = "GroupID"
exclude = ["id"]

[[data.relabel]]
from = 1
to = 0

[[data.relabel]]
from = 2
to = 1

[split]
test_ratio = 0.25
seed = 42

[grid]
folds = 3
concurrency = 2

[grid.params]
C = [0.01, 0.1, 1.0]
max_iter = [500.0]
`

const yamlExperiment = `
data:
  path: cells.csv
  label: GroupID
  relabel:
    - {from: 1, to: 0}
    - {from: 2, to: 1}
split:
  test_ratio: 0.25
  seed: 42
grid:
  folds: 3
  concurrency: 2
  params:
    C: [0.01, 0.1, 1.0]
    max_iter: [500]
scorers: [weighted_accuracy, roc_auc]
onnx:
  model: model.onnx
  pool_size: 4
output:
  report: out/report.pb
  format: binary
`

func TestDecode_TOML(t *testing.T) {
	e, err := Decode(strings.NewReader(tomlExperiment), TOML)
	require.NoError(t, err)

	assert.Equal(t, "cells.csv", e.Data.Path)
	assert.Equal(t, "GroupID", e.Data.Label)
	assert.Equal(t, []string{"id"}, e.Data.Exclude)
	assert.Equal(t, map[int]int{1: 0, 2: 1}, e.Data.RelabelMap())
	assert.Equal(t, 0.25, e.Split.TestRatio)
	assert.Equal(t, uint64(42), e.Split.Seed)
	assert.Equal(t, 3, e.Grid.Folds)
	assert.Equal(t, []float64{0.01, 0.1, 1.0}, e.Grid.Params["C"])
	assert.Equal(t, []string{"weighted_accuracy", "roc_auc"}, e.Scorers)

	// defaults
	assert.Equal(t, "weighted_accuracy", e.Grid.Refit)
	assert.Equal(t, 1, e.ONNX.PoolSize)
	assert.Equal(t, 0.5, e.ONNX.Threshold)
	assert.Equal(t, "json", e.Output.Format)
}

func TestDecode_YAMLMatchesTOML(t *testing.T) {
	y, err := Decode(strings.NewReader(yamlExperiment), YAML)
	require.NoError(t, err)
	tm, err := Decode(strings.NewReader(tomlExperiment), TOML)
	require.NoError(t, err)

	assert.Equal(t, tm.Data.RelabelMap(), y.Data.RelabelMap())
	assert.Equal(t, tm.Split, y.Split)
	assert.Equal(t, tm.Grid.Params, y.Grid.Params)
	assert.Equal(t, tm.Scorers, y.Scorers)

	assert.Equal(t, "model.onnx", y.ONNX.Model)
	assert.Equal(t, 4, y.ONNX.PoolSize)
	assert.Equal(t, "binary", y.Output.Format)
}

func TestDecode_Empty(t *testing.T) {
	e, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), e)
	assert.Nil(t, e.Data.RelabelMap())
}

func TestDecode_Invalid(t *testing.T) {
	src := `
[split]
test_ratio = 1.5

[grid]
folds = 1

[[data.relabel]]
from = 3
to = 2
`
	_, err := Decode(strings.NewReader(src), TOML)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "test_ratio")
	assert.Contains(t, err.Error(), "folds")
	assert.Contains(t, err.Error(), "not binary")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("[data\npath ="), TOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("data: [unclosed"), YAML)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exp.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlExperiment), 0o600))

	e, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cells.csv", e.Data.Path)

	_, err = Load(filepath.Join(dir, "exp.json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
