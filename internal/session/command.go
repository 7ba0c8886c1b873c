package session

import (
	"fmt"
	"strings"
)

// Command names one exploration action.
type Command string

const (
	CmdHead          Command = "head"
	CmdTail          Command = "tail"
	CmdDtypes        Command = "dtypes"
	CmdDescribe      Command = "describe"
	CmdMissingValues Command = "missing"
	CmdCorrelation   Command = "correlation"
	CmdValueCounts   Command = "value-counts"
	CmdUniqueValues  Command = "unique"
	CmdHistogram     Command = "histogram"
	CmdBoxplot       Command = "boxplot"
	CmdInfo          Command = "info"
	CmdProfile       Command = "profile"
)

// CommandInfo describes a command for command surfaces.
type CommandInfo struct {
	Command     Command `json:"command"`
	Label       string  `json:"label"`
	NeedsColumn bool    `json:"needsColumn"`
	Description string  `json:"description"`
}

var commandTable = []CommandInfo{
	{CmdHead, "First Rows", false, "Show the first rows"},
	{CmdTail, "Last Rows", false, "Show the last rows"},
	{CmdDtypes, "Data Types", false, "Show the inferred type of each column"},
	{CmdDescribe, "Statistical Summary", false, "Count, mean, std, min, quartiles and max per numeric column"},
	{CmdMissingValues, "Missing Values", false, "Count missing values per column"},
	{CmdCorrelation, "Correlation Matrix", false, "Pearson correlation of numeric columns with a heatmap"},
	{CmdValueCounts, "Show Value Counts", true, "Frequency of each distinct value in a column"},
	{CmdUniqueValues, "Show Unique Values", true, "Distinct values of a column in order of appearance"},
	{CmdHistogram, "Show Histogram", true, "Distribution plot of a column"},
	{CmdBoxplot, "Show Boxplot", true, "Box-and-whisker plot of a numeric column"},
	{CmdInfo, "Info", false, "Shape, non-null counts and types"},
	{CmdProfile, "Profile", false, "Markdown profile of the whole dataset"},
}

var aliases = map[string]Command{
	"corr":           CmdCorrelation,
	"missing-values": CmdMissingValues,
	"valuecounts":    CmdValueCounts,
	"counts":         CmdValueCounts,
	"unique-values":  CmdUniqueValues,
	"hist":           CmdHistogram,
	"box":            CmdBoxplot,
	"types":          CmdDtypes,
	"summary":        CmdDescribe,
}

// Commands returns every command in display order.
func Commands() []CommandInfo {
	out := make([]CommandInfo, len(commandTable))
	copy(out, commandTable)
	return out
}

// Info returns the description of c.
func (c Command) Info() (CommandInfo, bool) {
	for _, ci := range commandTable {
		if ci.Command == c {
			return ci, true
		}
	}
	return CommandInfo{}, false
}

// NeedsColumn reports whether c takes a column argument.
func (c Command) NeedsColumn() bool {
	ci, ok := c.Info()
	return ok && ci.NeedsColumn
}

// ParseCommand resolves a name or alias, ignoring case and '_' vs '-'.
func ParseCommand(s string) (Command, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	if _, ok := Command(key).Info(); ok {
		return Command(key), nil
	}
	return "", &UnknownCommandError{Name: s}
}

// UnknownCommandError reports a command name outside the fixed set.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}
