//go:build ignore

// Generate an imbalanced synthetic binary classification dataset.
// Usage: go run ./scripts/gen-synthetic.go -out testdata/synthetic.csv
//
// Rows belong to one of three groups (GroupID 1..3). Group 1 is the majority
// negative class; groups 2 and 3 are positive subtypes with shifted means.
// The label column already collapses groups 2 and 3 into the positive class.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/jtbricker/mlexp/dataset"
)

type group struct {
	id     int
	weight float64
	mean   [4]float64 // f4 is pure noise
}

var groups = []group{
	{1, 0.80, [4]float64{0, 0, 0, 0}},
	{2, 0.12, [4]float64{1.5, 0.5, -1, 0}},
	{3, 0.08, [4]float64{0.5, 2, 1, 0}},
}

func main() {
	out := flag.String("out", "testdata/synthetic.csv", "output CSV")
	n := flag.Int("n", 500, "number of rows")
	seed := flag.Uint64("seed", 1, "random seed")
	noise := flag.Float64("noise", 1.0, "feature standard deviation")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed))
	t := &dataset.Table{Columns: []string{"id", "f1", "f2", "f3", "f4", dataset.GroupColumn, "label"}}

	for i := 0; i < *n; i++ {
		g := pick(rng)
		row := []float64{float64(i)}
		for _, m := range g.mean {
			row = append(row, m+rng.NormFloat64()**noise)
		}
		label := 0.0
		if g.id != 1 {
			label = 1
		}
		row = append(row, float64(g.id), label)
		t.Rows = append(t.Rows, row)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}
	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *out, err)
		os.Exit(1)
	}
	if err := t.WriteCSV(f); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing %s: %v\n", *out, err)
		os.Exit(1)
	}

	counts, _ := t.ValueCounts("label")
	fmt.Printf("Wrote %d rows to %s (%d negative, %d positive)\n", t.Len(), *out, counts[0], counts[1])
}

func pick(rng *rand.Rand) group {
	u := rng.Float64()
	for _, g := range groups {
		if u < g.weight {
			return g
		}
		u -= g.weight
	}
	return groups[len(groups)-1]
}
