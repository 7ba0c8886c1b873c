package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestProfileReport(t *testing.T) {
	var b strings.Builder
	b.WriteString("value,group,note,empty\n")
	vals := []string{"10", "11", "9.5", "10.5", "9.8", "10.2", "8.8", "9.7", "50", "10.1"}
	groups := []string{"A", "B", "A", "B", "A", "B", "A", "B", "A", "B"}
	for i, v := range vals {
		b.WriteString(v + "," + groups[i] + ",note " + v + ",\n")
	}
	rep := Profile(load(t, b.String()), DefaultProfileOptions())

	if rep.Rows != 10 || len(rep.Cols) != 4 {
		t.Fatalf("rows=%d cols=%d", rep.Rows, len(rep.Cols))
	}
	value := rep.Cols[0]
	if value.Kind != "numeric" || value.OutliersCount != 1 {
		t.Fatalf("value summary = %+v", value)
	}
	group := rep.Cols[1]
	if group.Kind != "categorical" || len(group.TopValues) != 2 || group.TopValues[0].Count != 5 {
		t.Fatalf("group summary = %+v", group)
	}
	if rep.Cols[2].Kind != "text" || len(rep.Cols[2].ExampleTexts) != 3 {
		t.Fatalf("note summary = %+v", rep.Cols[2])
	}
	if rep.Cols[3].Kind != "empty" {
		t.Fatalf("empty summary = %+v", rep.Cols[3])
	}
	if len(rep.Samples) != 5 {
		t.Fatalf("samples = %d", len(rep.Samples))
	}

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]", "File: t.csv", "Rows: 10", "[SCHEMA]",
		"- value: numeric/float", "outliers: 1 above |z|>3.5",
		"- group: categorical/text", "A(5)", "[HEAD AND SAMPLE ROWS]",
		"[NOTES]", `column "empty" has no values`,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "[CORRELATIONS]") {
		t.Error("single numeric column should not produce correlations")
	}
}

func TestProfileCorrelations(t *testing.T) {
	rep := Profile(load(t, "x,y\n1,2\n2,4\n3,7\n"), DefaultProfileOptions())
	if rep.Corr == nil {
		t.Fatal("expected correlation matrix")
	}
	if !strings.Contains(rep.Markdown(), "- x ~ y: r=") {
		t.Fatalf("markdown missing pair:\n%s", rep.Markdown())
	}
}

func TestProfileSampleTruncationKeepsRunes(t *testing.T) {
	long := strings.Repeat("é", 100)
	md := Profile(load(t, "note\n"+long+"\n"), DefaultProfileOptions()).Markdown()
	if !utf8.ValidString(md) {
		t.Fatal("markdown is not valid UTF-8")
	}
	if !strings.Contains(md, strings.Repeat("é", 77)+"...") {
		t.Fatalf("expected rune-truncated sample:\n%s", md)
	}
}
