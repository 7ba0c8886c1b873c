// Package session owns one exploration session: the dataset store, the
// command dispatcher and the display surface they render to.
package session

import (
	"fmt"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
	"github.com/KaramelBytes/csvexplore-cli/internal/display"
	"github.com/KaramelBytes/csvexplore-cli/internal/plot"
)

// Options configures a session.
type Options struct {
	// HeadRows is the row count for head and tail.
	HeadRows int
	Parse    dataset.Options
	Plot     plot.Options
	Profile  analysis.ProfileOptions
	// Debugf receives diagnostic lines; nil disables them.
	Debugf func(format string, args ...any)
}

// DefaultOptions returns session defaults.
func DefaultOptions() Options {
	return Options{
		HeadRows: 5,
		Parse:    dataset.DefaultOptions(),
		Plot:     plot.DefaultOptions(),
		Profile:  analysis.DefaultProfileOptions(),
	}
}

func (o Options) debugf(format string, args ...any) {
	if o.Debugf != nil {
		o.Debugf(format, args...)
	}
}

// Session processes one event at a time. Callers that receive events
// concurrently must serialize calls.
type Session struct {
	opt        Options
	store      *Store
	dispatcher *Dispatcher
	surface    display.Surface
}

// New creates an empty session rendering to surface.
func New(opt Options, surface display.Surface) *Session {
	if opt.HeadRows <= 0 {
		opt.HeadRows = 5
	}
	store := NewStore(opt.Parse)
	return &Session{
		opt:        opt,
		store:      store,
		dispatcher: NewDispatcher(store, opt),
		surface:    surface,
	}
}

// Upload parses raw and makes it the current dataset. A parse failure is
// rendered and returned; the previous dataset stays loaded.
func (s *Session) Upload(name string, raw []byte) (*dataset.Dataset, error) {
	s.surface.Clear()
	ds, err := s.store.Load(name, raw)
	if err != nil {
		s.opt.debugf("upload %s: %v", name, err)
		if rerr := s.surface.Render(display.Failure("upload", err)); rerr != nil {
			s.opt.debugf("render: %v", rerr)
		}
		return nil, err
	}
	s.opt.debugf("loaded %s as %s (%d rows, %d columns)", name, ds.ID(), ds.Rows(), ds.Cols())
	msg := UploadedMessage + "\n" + fmt.Sprintf(uploadShapeFormat, ds.Rows(), ds.Cols())
	if err := s.surface.Render(display.Message("upload", msg)); err != nil {
		return ds, fmt.Errorf("render: %w", err)
	}
	return ds, nil
}

// Run clears the surface, dispatches cmd and renders its output. The
// returned error only reports surface failures.
func (s *Session) Run(cmd Command, column string) (display.Output, error) {
	s.surface.Clear()
	return s.render(s.dispatcher.Dispatch(cmd, column))
}

// RunRef is Run with a column reference checked against the current dataset.
func (s *Session) RunRef(cmd Command, ref ColumnRef) (display.Output, error) {
	s.surface.Clear()
	return s.render(s.dispatcher.DispatchRef(cmd, ref))
}

func (s *Session) render(out display.Output) (display.Output, error) {
	if err := s.surface.Render(out); err != nil {
		return out, fmt.Errorf("render: %w", err)
	}
	return out, nil
}

// Columns returns the current column names in order.
func (s *Session) Columns() []string { return s.store.ColumnNames() }

// State reports whether a dataset is loaded.
func (s *Session) State() State { return s.store.State() }

// Current returns the loaded dataset.
func (s *Session) Current() (*dataset.Dataset, bool) { return s.store.Current() }

// Resolve turns a column name into a reference on the current dataset.
func (s *Session) Resolve(name string) (ColumnRef, error) { return s.store.Resolve(name) }
