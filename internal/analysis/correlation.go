package analysis

import (
	"math"
	"strconv"

	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]; NaN when undefined
}

// NumericColumns lists integer and float columns in dataset order.
func NumericColumns(ds *dataset.Dataset) []string {
	var out []string
	for j, k := range ds.Kinds() {
		if k.Numeric() {
			out = append(out, ds.ColumnAt(j).Name)
		}
	}
	return out
}

// Correlation computes pairwise-complete Pearson correlations between numeric
// columns. It returns nil when the dataset has no numeric columns.
func Correlation(ds *dataset.Dataset) *CorrMatrix {
	names := NumericColumns(ds)
	if len(names) == 0 {
		return nil
	}
	cols := make([]*dataset.Column, len(names))
	for i, n := range names {
		cols[i], _ = ds.Column(n)
	}
	n := len(cols)
	m := &CorrMatrix{Columns: names, Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r := pairwise(cols[a], cols[b])
			if a == b && !math.IsNaN(r) {
				r = 1
			}
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

// pairwise correlates rows where both columns are present.
func pairwise(x, y *dataset.Column) float64 {
	var xs, ys []float64
	for i := 0; i < x.Len(); i++ {
		if x.IsNA(i) || y.IsNA(i) {
			continue
		}
		xs = append(xs, x.Float(i))
		ys = append(ys, y.Float(i))
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}

// At returns the coefficient for two named columns.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

// Table renders the matrix with four decimals.
func (m *CorrMatrix) Table() *Table {
	t := &Table{Columns: m.Columns}
	for i, c := range m.Columns {
		row := make([]string, len(m.Columns))
		for j, v := range m.Values[i] {
			if math.IsNaN(v) {
				row[j] = "NaN"
			} else {
				row[j] = strconv.FormatFloat(v, 'f', 4, 64)
			}
		}
		t.Index = append(t.Index, c)
		t.Rows = append(t.Rows, row)
	}
	return t
}
