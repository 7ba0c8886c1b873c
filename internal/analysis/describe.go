package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// Head returns the first n rows.
func Head(ds *dataset.Dataset, n int) *Table {
	n = minInt(maxInt(n, 0), ds.Rows())
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return rowsTable(ds, idx)
}

// Tail returns the last n rows.
func Tail(ds *dataset.Dataset, n int) *Table {
	n = minInt(maxInt(n, 0), ds.Rows())
	idx := make([]int, n)
	for i := range idx {
		idx[i] = ds.Rows() - n + i
	}
	return rowsTable(ds, idx)
}

func rowsTable(ds *dataset.Dataset, idx []int) *Table {
	t := &Table{Columns: ds.Columns()}
	cols := make([]*dataset.Column, ds.Cols())
	for j := range cols {
		cols[j] = ds.ColumnAt(j)
	}
	for _, i := range idx {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c.Format(i)
		}
		t.Index = append(t.Index, strconv.Itoa(i))
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ColumnKind pairs a column with its inferred kind.
type ColumnKind struct {
	Name string
	Kind dataset.Kind
}

// Dtypes lists inferred kinds in column order.
func Dtypes(ds *dataset.Dataset) []ColumnKind {
	names, kinds := ds.Columns(), ds.Kinds()
	out := make([]ColumnKind, len(names))
	for i := range names {
		out[i] = ColumnKind{Name: names[i], Kind: kinds[i]}
	}
	return out
}

// DtypesTable renders Dtypes output.
func DtypesTable(kinds []ColumnKind) *Table {
	t := &Table{Columns: []string{"dtype"}}
	for _, ck := range kinds {
		t.Index = append(t.Index, ck.Name)
		t.Rows = append(t.Rows, []string{string(ck.Kind)})
	}
	return t
}

// ColumnCount pairs a column with a count.
type ColumnCount struct {
	Name  string
	Count int
}

// MissingValues counts missing cells per column in column order.
func MissingValues(ds *dataset.Dataset) []ColumnCount {
	out := make([]ColumnCount, ds.Cols())
	for j := range out {
		c := ds.ColumnAt(j)
		out[j] = ColumnCount{Name: c.Name, Count: c.Missing()}
	}
	return out
}

// MissingTable renders MissingValues output.
func MissingTable(counts []ColumnCount) *Table {
	t := &Table{Columns: []string{"missing"}}
	for _, c := range counts {
		t.Index = append(t.Index, c.Name)
		t.Rows = append(t.Rows, []string{strconv.Itoa(c.Count)})
	}
	return t
}

// NumericSummary holds the describe statistics of one numeric column.
type NumericSummary struct {
	Name               string
	Count              int
	Mean, Std          float64
	Min, Q25, Q50, Q75 float64
	Max                float64
}

// TextSummary holds the describe statistics of one non-numeric column.
type TextSummary struct {
	Name   string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Description is the result of Describe. Text is only filled when the
// dataset has no numeric columns.
type Description struct {
	Numeric []NumericSummary
	Text    []TextSummary
}

// Describe computes count, mean, std, min, quartiles and max per numeric column.
// Datasets without numeric columns get count/unique/top/freq per column instead.
func Describe(ds *dataset.Dataset) *Description {
	d := &Description{}
	for j := 0; j < ds.Cols(); j++ {
		c := ds.ColumnAt(j)
		if c.Kind.Numeric() {
			d.Numeric = append(d.Numeric, summarizeNumeric(c.Name, c.Floats()))
		}
	}
	if len(d.Numeric) > 0 {
		return d
	}
	for j := 0; j < ds.Cols(); j++ {
		c := ds.ColumnAt(j)
		counts := columnCounts(c)
		s := TextSummary{Name: c.Name, Count: c.Len() - c.Missing(), Unique: len(counts)}
		if len(counts) > 0 {
			s.Top, s.Freq = counts[0].Value, counts[0].Count
		}
		d.Text = append(d.Text, s)
	}
	return d
}

func summarizeNumeric(name string, vals []float64) NumericSummary {
	s := NumericSummary{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.NaN()
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// Table renders the description with statistics as rows and columns as columns.
func (d *Description) Table() *Table {
	if len(d.Numeric) > 0 {
		t := &Table{Index: []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}}
		t.Rows = make([][]string, len(t.Index))
		for _, s := range d.Numeric {
			t.Columns = append(t.Columns, s.Name)
			for i, v := range []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max} {
				t.Rows[i] = append(t.Rows[i], formatStat(v))
			}
		}
		return t
	}
	t := &Table{Index: []string{"count", "unique", "top", "freq"}}
	t.Rows = make([][]string, len(t.Index))
	for _, s := range d.Text {
		t.Columns = append(t.Columns, s.Name)
		top, freq := "NaN", "NaN"
		if s.Unique > 0 {
			top, freq = s.Top, strconv.Itoa(s.Freq)
		}
		t.Rows[0] = append(t.Rows[0], strconv.Itoa(s.Count))
		t.Rows[1] = append(t.Rows[1], strconv.Itoa(s.Unique))
		t.Rows[2] = append(t.Rows[2], top)
		t.Rows[3] = append(t.Rows[3], freq)
	}
	return t
}

// Info summarizes shape plus non-null count and kind per column.
func Info(ds *dataset.Dataset) *Table {
	t := &Table{
		Title:     fmt.Sprintf("%d entries, %d columns", ds.Rows(), ds.Cols()),
		IndexName: "#",
		Columns:   []string{"Column", "Non-Null Count", "Dtype"},
	}
	for j := 0; j < ds.Cols(); j++ {
		c := ds.ColumnAt(j)
		t.Index = append(t.Index, strconv.Itoa(j))
		t.Rows = append(t.Rows, []string{
			c.Name,
			fmt.Sprintf("%d non-null", c.Len()-c.Missing()),
			string(c.Kind),
		})
	}
	return t
}

func formatStat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return dataset.FormatFloat(v)
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
