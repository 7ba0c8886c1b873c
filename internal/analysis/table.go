package analysis

import (
	"fmt"
	"strings"
)

// Table is a rectangular result: a labelled index column followed by data columns.
type Table struct {
	Title     string
	IndexName string
	Index     []string
	Columns   []string
	Rows      [][]string // Rows[i] aligns with Index[i] and Columns
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// Truncate keeps the first and last rows around an ellipsis row when the table
// is longer than max. max <= 0 disables truncation.
func (t *Table) Truncate(max int) *Table {
	if max <= 0 || len(t.Rows) <= max {
		return t
	}
	head := (max + 1) / 2
	tail := max - head
	out := &Table{Title: t.Title, IndexName: t.IndexName, Columns: t.Columns}
	ellipsis := make([]string, len(t.Columns))
	for i := range ellipsis {
		ellipsis[i] = "..."
	}
	out.Index = append(out.Index, t.Index[:head]...)
	out.Rows = append(out.Rows, t.Rows[:head]...)
	out.Index = append(out.Index, "...")
	out.Rows = append(out.Rows, ellipsis)
	out.Index = append(out.Index, t.Index[len(t.Index)-tail:]...)
	out.Rows = append(out.Rows, t.Rows[len(t.Rows)-tail:]...)
	return out
}

// Markdown renders the table as a pipe table, preceded by the title if any.
func (t *Table) Markdown() string {
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(t.Title)
		b.WriteString("\n\n")
	}
	b.WriteString("| ")
	b.WriteString(safeVal(t.IndexName))
	for _, c := range t.Columns {
		b.WriteString(" | ")
		b.WriteString(safeVal(safeName(c)))
	}
	b.WriteString(" |\n|")
	for i := 0; i <= len(t.Columns); i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for i, row := range t.Rows {
		b.WriteString("| ")
		if i < len(t.Index) {
			b.WriteString(safeVal(t.Index[i]))
		}
		for j := range t.Columns {
			b.WriteString(" | ")
			if j < len(row) {
				b.WriteString(safeVal(row[j]))
			}
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

// String renders fixed-width plain text, used where no styling is available.
func (t *Table) String() string {
	widths := make([]int, len(t.Columns)+1)
	widths[0] = len([]rune(t.IndexName))
	for _, ix := range t.Index {
		widths[0] = maxInt(widths[0], len([]rune(ix)))
	}
	for j, c := range t.Columns {
		widths[j+1] = len([]rune(c))
		for _, row := range t.Rows {
			if j < len(row) {
				widths[j+1] = maxInt(widths[j+1], len([]rune(row[j])))
			}
		}
	}
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(t.Title)
		b.WriteString("\n")
	}
	line := func(index string, cells []string) {
		b.WriteString(fmt.Sprintf("%-*s", widths[0], index))
		for j := range t.Columns {
			v := ""
			if j < len(cells) {
				v = cells[j]
			}
			b.WriteString(fmt.Sprintf("  %*s", widths[j+1], v))
		}
		b.WriteString("\n")
	}
	line(t.IndexName, t.Columns)
	for i, row := range t.Rows {
		ix := ""
		if i < len(t.Index) {
			ix = t.Index[i]
		}
		line(ix, row)
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
