package analysis

import (
	"sort"
	"strconv"

	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
)

// CategoryCount is one distinct value and how often it occurs.
type CategoryCount struct {
	Value string
	Count int
}

// ValueCounts returns distinct non-missing values of a column ordered by
// descending count; ties keep first-occurrence order.
func ValueCounts(ds *dataset.Dataset, column string) ([]CategoryCount, error) {
	c, err := ds.Column(column)
	if err != nil {
		return nil, err
	}
	return columnCounts(c), nil
}

func columnCounts(c *dataset.Column) []CategoryCount {
	pos := map[string]int{}
	var out []CategoryCount
	for i := 0; i < c.Len(); i++ {
		if c.IsNA(i) {
			continue
		}
		v := c.Format(i)
		if p, ok := pos[v]; ok {
			out[p].Count++
			continue
		}
		pos[v] = len(out)
		out = append(out, CategoryCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// CountsTable renders ValueCounts output indexed by value.
func CountsTable(column string, counts []CategoryCount) *Table {
	t := &Table{IndexName: column, Columns: []string{"count"}}
	for _, kv := range counts {
		t.Index = append(t.Index, kv.Value)
		t.Rows = append(t.Rows, []string{strconv.Itoa(kv.Count)})
	}
	return t
}

// UniqueValues returns distinct values in first-occurrence order. Missing
// cells appear once as NaN.
func UniqueValues(ds *dataset.Dataset, column string) ([]string, error) {
	c, err := ds.Column(column)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for i := 0; i < c.Len(); i++ {
		v := c.Format(i)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
