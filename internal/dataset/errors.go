package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty       = errors.New("empty input")
	ErrEncoding    = errors.New("input is not valid UTF-8 or UTF-16 text")
	ErrBinary      = errors.New("input contains NUL bytes")
	ErrNoColumns   = errors.New("no columns in header")
	ErrNoRows      = errors.New("no data rows")
	ErrFieldCount  = errors.New("row has more fields than the header")
	ErrUnknownName = errors.New("unknown column")
)

// ParseError reports why raw bytes could not become a Dataset.
type ParseError struct {
	Name string
	Line int // 0 when the failure is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err carries a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
