package session

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
)

// Fixed texts shown on the display surface.
const (
	NotReadyMessage     = "Please upload a CSV file."
	NoNumericMessage    = "No numeric columns available for correlation."
	SelectColumnMessage = "Please select a column."
	UploadedMessage     = "File uploaded successfully!"
	notNumericFormat    = "The selected column '%s' is not numeric. Please select a numeric column."
	unknownColumnFormat = "Column '%s' not found."
	suggestionFormat    = "Did you mean '%s'?"
	staleColumnFormat   = "Column '%s' belongs to a previous upload. Please select a column again."
	uniqueValuesFormat  = "Unique values in '%s':"
	uploadShapeFormat   = "DataFrame shape: (%d, %d)"
)

var (
	// ErrNotReady means no dataset has been loaded yet.
	ErrNotReady = errors.New("no dataset loaded")
	// ErrEmptyNumericSet means correlation found no numeric columns.
	ErrEmptyNumericSet = errors.New("no numeric columns")
	// ErrNoColumn means a column command was invoked without a column.
	ErrNoColumn = errors.New("no column selected")
)

// UnsupportedColumnTypeError means the column kind cannot feed the command.
type UnsupportedColumnTypeError struct {
	Column string
	Kind   dataset.Kind
}

func (e *UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("column %q is %s, not numeric", e.Column, e.Kind)
}

// UnknownColumnError means the name is not a column of the current dataset.
type UnknownColumnError struct {
	Column     string
	Suggestion string
}

func (e *UnknownColumnError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown column %q (did you mean %q?)", e.Column, e.Suggestion)
	}
	return fmt.Sprintf("unknown column %q", e.Column)
}

// StaleColumnError means a column reference was taken from a replaced dataset.
type StaleColumnError struct {
	Column    string
	DatasetID string
}

func (e *StaleColumnError) Error() string {
	return fmt.Sprintf("column %q refers to dataset %s which is no longer loaded", e.Column, e.DatasetID)
}

// UserMessage maps an expected, non-fatal condition to its display text.
// ok is false for errors that should be shown as failures.
func UserMessage(err error) (msg string, ok bool) {
	var (
		unsupported *UnsupportedColumnTypeError
		unknown     *UnknownColumnError
		stale       *StaleColumnError
	)
	switch {
	case errors.Is(err, ErrNotReady):
		return NotReadyMessage, true
	case errors.Is(err, ErrEmptyNumericSet):
		return NoNumericMessage, true
	case errors.Is(err, ErrNoColumn):
		return SelectColumnMessage, true
	case errors.As(err, &unsupported):
		return fmt.Sprintf(notNumericFormat, unsupported.Column), true
	case errors.As(err, &unknown):
		msg = fmt.Sprintf(unknownColumnFormat, unknown.Column)
		if unknown.Suggestion != "" {
			msg += " " + fmt.Sprintf(suggestionFormat, unknown.Suggestion)
		}
		return msg, true
	case errors.As(err, &stale):
		return fmt.Sprintf(staleColumnFormat, stale.Column), true
	}
	return "", false
}
