package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
)

// ProfileOptions controls the dataset profile report.
type ProfileOptions struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
	// MaxCategories caps the distinct values a text column may have to be reported as categorical.
	MaxCategories int
}

// DefaultProfileOptions returns reasonable defaults for dataset profiling.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{
		SampleRows:       5,
		Correlations:     true,
		Outliers:         true,
		OutlierThreshold: 3.5,
		MaxCategories:    50,
	}
}

// Report is a markdown-friendly profile of a dataset.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
	Corr     *CorrMatrix
}

// ColumnSummary captures the profile role and statistics of one column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|text|empty
	Dtype   dataset.Kind
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues    []CategoryCount
	ExampleTexts []string
}

// Profile summarizes every column of a loaded dataset.
func Profile(ds *dataset.Dataset, opt ProfileOptions) *Report {
	if opt.MaxCategories <= 0 {
		opt.MaxCategories = 50
	}
	rep := &Report{Name: ds.Name(), Rows: ds.Rows()}
	for j := 0; j < ds.Cols(); j++ {
		c := ds.ColumnAt(j)
		s := ColumnSummary{Name: c.Name, Dtype: c.Kind, Missing: c.Missing()}
		s.NonNull = c.Len() - s.Missing
		counts := columnCounts(c)
		s.Unique = len(counts)
		switch {
		case s.NonNull == 0:
			s.Kind = "empty"
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %q has no values", c.Name))
		case c.Kind.Numeric():
			s.Kind = "numeric"
			summarizeProfileNumeric(&s, c.Floats(), opt)
		case c.Kind == dataset.KindBoolean || s.Unique <= opt.MaxCategories && s.Unique < s.NonNull:
			s.Kind = "categorical"
			if len(counts) > 8 {
				counts = counts[:8]
			}
			s.TopValues = counts
		default:
			s.Kind = "text"
			for _, kv := range counts {
				if len(s.ExampleTexts) == 3 {
					break
				}
				s.ExampleTexts = append(s.ExampleTexts, kv.Value)
			}
		}
		if s.NonNull > 1 && s.Unique == 1 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %q is constant", c.Name))
		}
		rep.Cols = append(rep.Cols, s)
	}
	if opt.SampleRows > 0 {
		rep.Samples = Head(ds, opt.SampleRows).Rows
	}
	if opt.Correlations && len(NumericColumns(ds)) >= 2 {
		rep.Corr = Correlation(ds)
	}
	return rep
}

func summarizeProfileNumeric(s *ColumnSummary, vals []float64, opt ProfileOptions) {
	sum := summarizeNumeric(s.Name, vals)
	s.Min, s.Max, s.Mean, s.Std = sum.Min, sum.Max, sum.Mean, sum.Std
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	if !opt.Outliers || len(vals) < 8 {
		return
	}
	thr := opt.OutlierThreshold
	if thr <= 0 {
		thr = 3.5
	}
	median, mad := medianMAD(vals)
	s.OutlierThreshold = thr
	if mad == 0 {
		return
	}
	for _, v := range vals {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > thr {
			s.OutliersCount++
		}
		if az > s.OutliersMaxAbsZ {
			s.OutliersMaxAbsZ = az
		}
	}
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s/%s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.Dtype, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
				if c.OutliersMaxAbsZ > 0 {
					b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", c.OutliersMaxAbsZ))
				}
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(": top ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		case "text":
			if len(c.ExampleTexts) > 0 {
				b.WriteString(": e.g., ")
				for i, ex := range c.ExampleTexts {
					if i > 0 {
						b.WriteString(" | ")
					}
					b.WriteString(safeVal(ex))
				}
			}
		}
		b.WriteString("\n")
	}
	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		var pairs []PairCorr
		n := len(r.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if v := r.Corr.Values[i][j]; !math.IsNaN(v) {
					pairs = append(pairs, PairCorr{A: r.Corr.Columns[i], B: r.Corr.Columns[j], R: v})
				}
			}
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai := math.Abs(pairs[i].R)
			aj := math.Abs(pairs[j].R)
			if ai == aj {
				return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
			}
			return ai > aj
		})
		if len(pairs) > 10 {
			pairs = pairs[:10]
		}
		if len(pairs) > 0 {
			b.WriteString("\n[CORRELATIONS]\n")
		}
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		t := &Table{Rows: make([][]string, len(r.Samples))}
		for _, c := range r.Cols {
			t.Columns = append(t.Columns, c.Name)
		}
		for i, row := range r.Samples {
			t.Index = append(t.Index, fmt.Sprint(i))
			t.Rows[i] = make([]string, len(row))
			for j, val := range row {
				if r := []rune(val); len(r) > 80 {
					val = string(r[:77]) + "..."
				}
				t.Rows[i][j] = val
			}
		}
		b.WriteString(t.Markdown())
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}
