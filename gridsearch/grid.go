// Package gridsearch runs cross-validated hyperparameter searches over a
// model.Factory.
package gridsearch

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jtbricker/mlexp/model"
)

// ErrEmptyGrid indicates a grid with no parameters or a parameter with no values.
var ErrEmptyGrid = errors.New("gridsearch: empty grid")

// Grid maps each hyperparameter to the values to try.
type Grid map[string][]float64

// Expand returns the Cartesian product of the grid. Parameter names are taken in
// sorted order and the last name varies fastest, so the order is deterministic.
func (g Grid) Expand() ([]model.Params, error) {
	if len(g) == 0 {
		return nil, ErrEmptyGrid
	}
	keys := make([]string, 0, len(g))
	for k, vals := range g {
		if len(vals) == 0 {
			return nil, fmt.Errorf("%w: %q has no values", ErrEmptyGrid, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []model.Params{{}}
	for _, k := range keys {
		next := make([]model.Params, 0, len(out)*len(g[k]))
		for _, base := range out {
			for _, v := range g[k] {
				p := base.Clone()
				p[k] = v
				next = append(next, p)
			}
		}
		out = next
	}
	return out, nil
}

// Size returns the number of candidates Expand would produce.
func (g Grid) Size() int {
	if len(g) == 0 {
		return 0
	}
	n := 1
	for _, vals := range g {
		n *= len(vals)
	}
	return n
}
