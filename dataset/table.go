// Package dataset holds tabular experiment data: CSV loading, class relabeling,
// feature extraction into gonum matrices and stratified splitting.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrColumnNotFound indicates a column name absent from the table header.
	ErrColumnNotFound = errors.New("dataset: column not found")

	// ErrNotEnoughSamples indicates too few rows for the requested operation.
	ErrNotEnoughSamples = errors.New("dataset: not enough samples")

	// ErrNonIntegerLabel indicates a label cell that is not a whole number.
	ErrNonIntegerLabel = errors.New("dataset: non-integer label")
)

// Table is a numeric table with named columns.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// ReadCSV parses a CSV stream whose first record is the header. Every other cell
// must parse as a float; empty cells become NaN.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &Table{Columns: lo.Map(header, func(h string, _ int) string { return strings.TrimSpace(h) })}

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		row := make([]float64, len(rec))
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				row[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, t.Columns[i], err)
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadCSV reads a CSV file from disk.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f)
}

// WriteCSV writes the table with its header.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := lo.Map(row, func(v float64, _ int) string {
			if math.IsNaN(v) {
				return ""
			}
			return strconv.FormatFloat(v, 'g', -1, 64)
		})
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of the named column.
func (t *Table) Index(col string) (int, error) {
	i := lo.IndexOf(t.Columns, col)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, col)
	}
	return i, nil
}

// Column returns a copy of the named column.
func (t *Table) Column(col string) ([]float64, error) {
	i, err := t.Index(col)
	if err != nil {
		return nil, err
	}
	return lo.Map(t.Rows, func(row []float64, _ int) float64 { return row[i] }), nil
}

// Labels returns the named column as integer class labels.
func (t *Table) Labels(col string) ([]int, error) {
	values, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(values))
	for r, v := range values {
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %v in row %d", ErrNonIntegerLabel, v, r)
		}
		labels[r] = int(v)
	}
	return labels, nil
}

// ValueCounts tallies the distinct values of the named column.
func (t *Table) ValueCounts(col string) (map[float64]int, error) {
	values, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	return lo.CountValues(values), nil
}

// Features returns every column except exclude as a dense matrix, along with the
// names of the columns kept.
func (t *Table) Features(exclude ...string) (*mat.Dense, []string, error) {
	for _, col := range exclude {
		if _, err := t.Index(col); err != nil {
			return nil, nil, err
		}
	}
	if len(t.Rows) == 0 {
		return nil, nil, fmt.Errorf("%w: table is empty", ErrNotEnoughSamples)
	}

	var keep []int
	var names []string
	for i, col := range t.Columns {
		if lo.Contains(exclude, col) {
			continue
		}
		keep = append(keep, i)
		names = append(names, col)
	}
	if len(keep) == 0 {
		return nil, nil, fmt.Errorf("%w: no feature columns left", ErrColumnNotFound)
	}

	X := mat.NewDense(len(t.Rows), len(keep), nil)
	for r, row := range t.Rows {
		for c, i := range keep {
			X.Set(r, c, row[i])
		}
	}
	return X, names, nil
}

// SelectRows copies the given rows of X into a new matrix.
func SelectRows(X mat.Matrix, idx []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for r, i := range idx {
		for j := 0; j < c; j++ {
			out.Set(r, j, X.At(i, j))
		}
	}
	return out
}

// SelectLabels copies the given entries of y.
func SelectLabels(y []int, idx []int) []int {
	return lo.Map(idx, func(i int, _ int) int { return y[i] })
}
