package dataset

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `f1, f2, label
1.5, 2, 0
3, , 1
-1, 4.25, 1
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"f1", "f2", "label"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())
	assert.True(t, math.IsNaN(tbl.Rows[1][1]))
	assert.Equal(t, 4.25, tbl.Rows[2][1])

	labels, err := tbl.Labels("label")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, labels)
}

func TestReadCSV_BadCell(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "b"`)
}

func TestTable_WriteCSVRoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	assert.Equal(t, "f1,f2,label\n1.5,2,0\n3,,1\n-1,4.25,1\n", buf.String())
}

func TestTable_Features(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	X, names, err := tbl.Features("label")
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, names)

	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, -1.0, X.At(2, 0))

	_, _, err = tbl.Features("nope")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTable_LabelsRejectsFractions(t *testing.T) {
	tbl := &Table{Columns: []string{"y"}, Rows: [][]float64{{0}, {0.5}}}
	_, err := tbl.Labels("y")
	require.ErrorIs(t, err, ErrNonIntegerLabel)
}
