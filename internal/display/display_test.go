package display

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/KaramelBytes/csvexplore-cli/internal/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *analysis.Table {
	return &analysis.Table{
		Columns: []string{"age", "score"},
		Index:   []string{"0", "1"},
		Rows:    [][]string{{"30", "1.5"}, {"25", "NaN"}},
	}
}

func TestOutputKind(t *testing.T) {
	assert.Equal(t, "text", Message("head", "hi").Kind())
	assert.Equal(t, "error", Failure("head", errors.New("boom")).Kind())
	assert.Equal(t, "table", Output{Table: sampleTable()}.Kind())
	assert.Equal(t, "image", Output{Table: sampleTable(), Image: &plot.Image{}}.Kind())
}

func TestBufferKeepsSingleOutput(t *testing.T) {
	b := NewBuffer()
	_, ok := b.Current()
	assert.False(t, ok)

	require.NoError(t, b.Render(Message("head", "first")))
	require.NoError(t, b.Render(Message("tail", "second")))
	cur, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Message)

	b.Clear()
	_, ok = b.Current()
	assert.False(t, ok)
	assert.Equal(t, 3, b.Generation())
}

func TestFormatTable(t *testing.T) {
	out := FormatTable(sampleTable(), 0)
	for _, want := range []string{"age", "score", "30", "1.5", "NaN"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatErrorAndMessage(t *testing.T) {
	out := Format(Output{Message: "Please upload a CSV file."}, 10)
	assert.Contains(t, out, "Please upload a CSV file.")

	out = Format(Failure("describe", errors.New("boom")), 10)
	assert.Contains(t, out, "✗ Error: boom")
}

func TestTerminalRenderSavesPlot(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{PlotsDir: dir, ClearScreen: true})

	term.Clear()
	assert.Empty(t, buf.String(), "non-TTY writers are never cleared")

	img := &plot.Image{Name: "histogram_age", Title: "Histogram of age", PNG: []byte("fake")}
	require.NoError(t, term.Render(Output{Command: "histogram", Image: img}))

	path := filepath.Join(dir, "histogram_age.png")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake", string(data))
	assert.Contains(t, buf.String(), "Histogram of age")
	assert.Contains(t, buf.String(), "Plot saved to "+path)
}

func TestTerminalRenderTable(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{MaxRows: 1})
	require.NoError(t, term.Render(Output{Table: &analysis.Table{
		Columns: []string{"n"},
		Index:   []string{"0", "1", "2"},
		Rows:    [][]string{{"a"}, {"b"}, {"c"}},
	}}))
	assert.True(t, strings.Contains(buf.String(), "..."), "long tables are truncated")
	assert.NotContains(t, buf.String(), " b ")
}
