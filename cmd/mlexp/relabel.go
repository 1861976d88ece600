package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jtbricker/mlexp/dataset"
)

func newRelabelCmd() *cobra.Command {
	var (
		column  string
		mapping string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "relabel CSV",
		Short: "Collapse class groups into binary labels",
		Long: `Relabel rewrites the label column through a class mapping and drops every
row whose class is not mapped. Example:

  mlexp relabel cells.csv --column GroupID --map 1=0,2=1,3=1 --out binary.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grouping, err := parseMapping(mapping)
			if err != nil {
				return err
			}
			t, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			relabeled, err := dataset.ReassignClasses(t, grouping, column)
			if err != nil {
				return err
			}
			loggerFor(cmd).Info("relabeled",
				"rows_in", t.Len(),
				"rows_out", relabeled.Len(),
				"column", column,
			)

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return relabeled.WriteCSV(w)
		},
	}

	f := cmd.Flags()
	f.StringVar(&column, "column", dataset.GroupColumn, "column holding the class")
	f.StringVar(&mapping, "map", "", "comma-separated from=to pairs (required)")
	f.StringVarP(&out, "out", "o", "", "output CSV (default stdout)")
	_ = cmd.MarkFlagRequired("map")
	return cmd
}

// parseMapping parses "1=0,2=1" into {1: 0, 2: 1}.
func parseMapping(s string) (map[int]int, error) {
	m := make(map[int]int)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("mapping %q: want from=to", pair)
		}
		f, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("mapping %q: %w", pair, err)
		}
		t, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return nil, fmt.Errorf("mapping %q: %w", pair, err)
		}
		if _, dup := m[f]; dup {
			return nil, fmt.Errorf("mapping %q: class %d mapped twice", pair, f)
		}
		m[f] = t
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("empty mapping")
	}
	return m, nil
}
