package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cases := map[string]Command{
		"head":           CmdHead,
		"HEAD":           CmdHead,
		"value_counts":   CmdValueCounts,
		"value-counts":   CmdValueCounts,
		"corr":           CmdCorrelation,
		" boxplot ":      CmdBoxplot,
		"missing_values": CmdMissingValues,
	}
	for in, want := range cases {
		got, err := ParseCommand(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCommand("pivot")
	var uce *UnknownCommandError
	assert.True(t, errors.As(err, &uce))
}

func TestColumnCommands(t *testing.T) {
	var withColumn []Command
	for _, ci := range Commands() {
		if ci.NeedsColumn {
			withColumn = append(withColumn, ci.Command)
		}
	}
	assert.Equal(t, []Command{CmdValueCounts, CmdUniqueValues, CmdHistogram, CmdBoxplot}, withColumn)
	assert.False(t, CmdHead.NeedsColumn())
	assert.True(t, CmdBoxplot.NeedsColumn())
}

func TestUserMessage(t *testing.T) {
	_, ok := UserMessage(errors.New("boom"))
	assert.False(t, ok)
	msg, ok := UserMessage(&UnsupportedColumnTypeError{Column: "city"})
	assert.True(t, ok)
	assert.Equal(t, "The selected column 'city' is not numeric. Please select a numeric column.", msg)
}
