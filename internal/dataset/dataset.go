package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset is an immutable parsed CSV upload. Each successful parse gets a fresh ID.
type Dataset struct {
	id    string
	name  string
	df    dataframe.DataFrame
	names []string
	kinds []Kind
}

func (d *Dataset) ID() string   { return d.id }
func (d *Dataset) Name() string { return d.name }
func (d *Dataset) Rows() int    { return d.df.Nrow() }
func (d *Dataset) Cols() int    { return len(d.names) }

// Frame exposes the underlying dataframe. Callers must not mutate it.
func (d *Dataset) Frame() dataframe.DataFrame { return d.df }

// Columns returns column names in file order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Kinds returns column kinds aligned with Columns.
func (d *Dataset) Kinds() []Kind {
	out := make([]Kind, len(d.kinds))
	copy(out, d.kinds)
	return out
}

// Index returns the position of the named column or -1.
func (d *Dataset) Index(name string) int {
	for i, n := range d.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) HasColumn(name string) bool { return d.Index(name) >= 0 }

// Kind returns the inferred kind of the named column.
func (d *Dataset) Kind(name string) (Kind, bool) {
	i := d.Index(name)
	if i < 0 {
		return "", false
	}
	return d.kinds[i], true
}

// Column returns a read-only view over the named column.
func (d *Dataset) Column(name string) (*Column, error) {
	i := d.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return d.ColumnAt(i), nil
}

// ColumnAt returns a view over column i; i must be in range.
func (d *Dataset) ColumnAt(i int) *Column {
	return &Column{Name: d.names[i], Kind: d.kinds[i], s: d.df.Col(d.names[i])}
}

// Column is a typed view over one dataset column.
type Column struct {
	Name string
	Kind Kind
	s    series.Series
}

func (c *Column) Len() int { return c.s.Len() }

func (c *Column) IsNA(i int) bool { return c.s.Elem(i).IsNA() }

// Float returns the value as float64; NaN when missing or non-numeric.
func (c *Column) Float(i int) float64 {
	e := c.s.Elem(i)
	if e.IsNA() {
		return math.NaN()
	}
	switch c.Kind {
	case KindInteger, KindFloat:
		return e.Float()
	case KindBoolean:
		if b, err := e.Bool(); err == nil && b {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// Format renders cell i for display. Missing values print as NaN.
func (c *Column) Format(i int) string {
	e := c.s.Elem(i)
	if e.IsNA() {
		return "NaN"
	}
	switch c.Kind {
	case KindInteger:
		v, _ := e.Int()
		return strconv.Itoa(v)
	case KindFloat:
		return FormatFloat(e.Float())
	case KindBoolean:
		if b, _ := e.Bool(); b {
			return "True"
		}
		return "False"
	}
	return e.String()
}

// Present returns the indexes of non-missing cells.
func (c *Column) Present() []int {
	out := make([]int, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if !c.IsNA(i) {
			out = append(out, i)
		}
	}
	return out
}

// Floats returns the non-missing values of a numeric column.
func (c *Column) Floats() []float64 {
	if !c.Kind.Numeric() {
		return nil
	}
	out := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if !c.IsNA(i) {
			out = append(out, c.s.Elem(i).Float())
		}
	}
	return out
}

// Missing counts missing cells.
func (c *Column) Missing() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNA(i) {
			n++
		}
	}
	return n
}

// FormatFloat prints whole numbers with a trailing ".0" and others at full precision.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
