// Package display renders command outputs onto a single-view surface.
package display

import (
	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/KaramelBytes/csvexplore-cli/internal/plot"
)

// Output is one command's rendering. Any combination of fields may be set;
// a non-nil Err marks the action as failed.
type Output struct {
	Command string
	Message string
	Table   *analysis.Table
	Image   *plot.Image
	Err     error
}

// Message builds a plain text output.
func Message(command, msg string) Output {
	return Output{Command: command, Message: msg}
}

// Failure builds an error output.
func Failure(command string, err error) Output {
	return Output{Command: command, Err: err}
}

// Kind names the dominant content, used by hosts that serialize outputs.
func (o Output) Kind() string {
	switch {
	case o.Err != nil:
		return "error"
	case o.Image != nil:
		return "image"
	case o.Table != nil:
		return "table"
	default:
		return "text"
	}
}

// Surface shows at most one Output at a time.
type Surface interface {
	// Clear removes whatever is currently shown.
	Clear()
	// Render shows out. Errors report surface failures, not command failures.
	Render(out Output) error
}
