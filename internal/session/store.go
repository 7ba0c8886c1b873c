package session

import (
	"strings"

	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
	"github.com/agnivade/levenshtein"
)

// ColumnRef names a column of one specific dataset generation.
type ColumnRef struct {
	DatasetID string `json:"datasetId"`
	Name      string `json:"name"`
}

// State is the dataset lifecycle state.
type State int

const (
	StateEmpty State = iota
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

// Store holds the current dataset, if any. It is not safe for concurrent use;
// hosts serialize access through Session.
type Store struct {
	opt     dataset.Options
	current *dataset.Dataset
	columns []string
}

// NewStore creates an empty store that parses uploads with opt.
func NewStore(opt dataset.Options) *Store {
	return &Store{opt: opt}
}

// Load parses raw and, on success, replaces the held dataset. On failure the
// previous dataset stays current and the *dataset.ParseError is returned.
func (s *Store) Load(name string, raw []byte) (*dataset.Dataset, error) {
	ds, err := dataset.Parse(name, raw, s.opt)
	if err != nil {
		return nil, err
	}
	s.current = ds
	s.columns = ds.Columns()
	return ds, nil
}

// Current returns the loaded dataset; false before the first successful load.
func (s *Store) Current() (*dataset.Dataset, bool) {
	return s.current, s.current != nil
}

// State reports Empty or Loaded.
func (s *Store) State() State {
	if s.current == nil {
		return StateEmpty
	}
	return StateLoaded
}

// ColumnNames returns a copy of the current column order; empty before load.
func (s *Store) ColumnNames() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Resolve validates name against the current dataset.
func (s *Store) Resolve(name string) (ColumnRef, error) {
	if s.current == nil {
		return ColumnRef{}, ErrNotReady
	}
	if name == "" {
		return ColumnRef{}, ErrNoColumn
	}
	if !s.current.HasColumn(name) {
		return ColumnRef{}, &UnknownColumnError{Column: name, Suggestion: suggest(name, s.columns)}
	}
	return ColumnRef{DatasetID: s.current.ID(), Name: name}, nil
}

// Check confirms ref still points into the current dataset.
func (s *Store) Check(ref ColumnRef) error {
	if s.current == nil {
		return ErrNotReady
	}
	if ref.Name == "" {
		return ErrNoColumn
	}
	if ref.DatasetID != s.current.ID() {
		return &StaleColumnError{Column: ref.Name, DatasetID: ref.DatasetID}
	}
	if !s.current.HasColumn(ref.Name) {
		return &UnknownColumnError{Column: ref.Name, Suggestion: suggest(ref.Name, s.columns)}
	}
	return nil
}

// suggest returns the closest column by case-insensitive edit distance, if
// it is close enough to be a likely typo.
func suggest(name string, columns []string) string {
	best, bestDist := "", -1
	lower := strings.ToLower(name)
	for _, c := range columns {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len([]rune(name)) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
