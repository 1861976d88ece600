package dataset

import (
	"math"
	"slices"

	"github.com/samber/lo"
)

// GroupColumn is the label column used by GroupClasses.
const GroupColumn = "GroupID"

// GroupClasses relabels the GroupColumn column. See ReassignClasses.
func GroupClasses(t *Table, grouping map[int]int) (*Table, error) {
	return ReassignClasses(t, grouping, GroupColumn)
}

// ReassignClasses returns a new table holding only the rows whose col value is a
// key of grouping, with col rewritten to the mapped value. Rows with any other
// value, including non-integers and NaN, are dropped. Other columns are copied
// unchanged.
func ReassignClasses(t *Table, grouping map[int]int, col string) (*Table, error) {
	i, err := t.Index(col)
	if err != nil {
		return nil, err
	}

	kept := lo.FilterMap(t.Rows, func(row []float64, _ int) ([]float64, bool) {
		v := row[i]
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, false
		}
		to, ok := grouping[int(v)]
		if !ok {
			return nil, false
		}
		out := slices.Clone(row)
		out[i] = float64(to)
		return out, true
	})

	return &Table{
		Columns: slices.Clone(t.Columns),
		Rows:    kept,
	}, nil
}
