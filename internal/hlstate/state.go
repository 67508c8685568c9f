// Package hlstate keeps the highlight state of an attached Neovim UI: the
// mapping from highlight group names to attribute ids, and from attribute ids
// to their styling.
//
// A State has a single writer and no internal locking. Publish Clone results
// to readers on other goroutines.
package hlstate

import (
	"errors"
	"math"
	"sort"

	"github.com/opencode-ai/hlstate/internal/logging"
	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/rs/zerolog"
)

// NotFound is returned by IDForName for unknown names.
const NotFound = -1

// DefaultID is the attribute id of the default colours. It is never stored in
// the attribute table; default_colors_set updates it.
const DefaultID = 0

// MaxID is the largest attribute id accepted from the wire.
const MaxID = math.MaxInt32

// State errors.
var (
	ErrMalformedEvent = errors.New("malformed highlight event")
)

// State maps highlight names to ids and ids to attributes.
type State struct {
	defaults models.Attr
	names    map[string]uint32
	attrs    map[int]models.Attr
	logger   zerolog.Logger
}

// Option configures a State.
type Option func(*State)

// WithLogger overrides the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// New returns an empty state whose default record has no colours set.
func New(opts ...Option) *State {
	s := &State{
		defaults: models.NewAttr(DefaultID),
		names:    make(map[string]uint32),
		attrs:    make(map[int]models.Attr),
		logger:   logging.Component("hlstate"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetNameID maps name to id, replacing any earlier mapping for name.
func (s *State) SetNameID(name string, id uint32) {
	s.names[name] = id
}

// SetIDAttr stores a copy of attr under id, replacing any earlier record.
// DefaultID is reserved for the default colours and is left alone.
func (s *State) SetIDAttr(id int, attr models.Attr) {
	if id == DefaultID {
		s.logger.Debug().Msg("ignoring attribute for the reserved default id")
		return
	}
	s.attrs[id] = attr.Clone()
}

// AttrForID returns the attribute for id. Unknown ids resolve to the default
// record, so callers always receive something paintable.
func (s *State) AttrForID(id int) models.Attr {
	if attr, ok := s.attrs[id]; ok {
		return attr.Clone()
	}
	return s.defaults.Clone()
}

// Lookup returns the attribute for id and whether it was defined.
func (s *State) Lookup(id int) (models.Attr, bool) {
	attr, ok := s.attrs[id]
	if !ok {
		return models.Attr{}, false
	}
	return attr.Clone(), true
}

// IDForName returns the id mapped to name, or NotFound.
func (s *State) IDForName(name string) int {
	id, ok := s.names[name]
	if !ok {
		return NotFound
	}
	return int(id)
}

// AttrForName resolves name through both tables. ok is false when the name is
// unbound; a bound name whose id is undefined yields the default record.
func (s *State) AttrForName(name string) (attr models.Attr, ok bool) {
	id := s.IDForName(name)
	if id == NotFound {
		return s.defaults.Clone(), false
	}
	return s.AttrForID(id), true
}

// DefaultColors returns a copy of the default record.
func (s *State) DefaultColors() models.Attr {
	return s.defaults.Clone()
}

// Names returns the bound group names in sorted order.
func (s *State) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IDs returns the defined attribute ids in ascending order.
func (s *State) IDs() []int {
	ids := make([]int, 0, len(s.attrs))
	for id := range s.attrs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of defined attributes, not counting the defaults.
func (s *State) Len() int {
	return len(s.attrs)
}

// Clone returns a deep copy that shares nothing with s.
func (s *State) Clone() *State {
	out := &State{
		defaults: s.defaults.Clone(),
		names:    make(map[string]uint32, len(s.names)),
		attrs:    make(map[int]models.Attr, len(s.attrs)),
		logger:   s.logger,
	}
	for name, id := range s.names {
		out.names[name] = id
	}
	for id, attr := range s.attrs {
		out.attrs[id] = attr.Clone()
	}
	return out
}
