package display

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const clearSequence = "\x1b[H\x1b[2J"

// TerminalOptions controls the terminal surface.
type TerminalOptions struct {
	// PlotsDir receives rendered PNGs.
	PlotsDir string
	// ClearScreen wipes the terminal before each output when attached to a TTY.
	ClearScreen bool
	// MaxRows truncates long tables; 0 shows everything.
	MaxRows int
}

// Terminal writes outputs to a stream and plots to PlotsDir.
type Terminal struct {
	w     io.Writer
	opt   TerminalOptions
	clear bool
}

// NewTerminal creates a surface on w. Screen clearing only happens on a TTY.
func NewTerminal(w io.Writer, opt TerminalOptions) *Terminal {
	return &Terminal{w: w, opt: opt, clear: opt.ClearScreen && isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *Terminal) Clear() {
	if t.clear {
		fmt.Fprint(t.w, clearSequence)
	}
}

func (t *Terminal) Render(out Output) error {
	if text := Format(out, t.opt.MaxRows); text != "" {
		if _, err := fmt.Fprintln(t.w, text); err != nil {
			return err
		}
	}
	if out.Image == nil {
		return nil
	}
	path, err := SaveImage(t.opt.PlotsDir, out.Image)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(t.w, Saved(path))
	return err
}
