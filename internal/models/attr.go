package models

import (
	"fmt"
	"strings"
)

// Kind tags where a highlight state descriptor originates.
type Kind uint8

const (
	KindSyntax Kind = iota
	KindUI
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == KindUI {
		return "ui"
	}
	return "syntax"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AttrState is one entry of the highlight info array sent with an attribute
// definition. It is carried through as received and not interpreted.
type AttrState struct {
	Kind   Kind   `json:"kind"`
	HiName string `json:"hi_name,omitempty"`
	UIName string `json:"ui_name,omitempty"`
	ID     uint16 `json:"id"`
}

// Flags is a bitmask of font emphasis attributes.
type Flags uint16

const (
	FlagBold Flags = 1 << iota
	FlagItalic
	FlagUnderline
	FlagUndercurl
	FlagUnderdouble
	FlagUnderdotted
	FlagUnderdashed
	FlagStrikethrough
	FlagStandout
)

// FlagNames maps the rgb attribute keys to their flag.
var FlagNames = map[string]Flags{
	"bold":          FlagBold,
	"italic":        FlagItalic,
	"underline":     FlagUnderline,
	"undercurl":     FlagUndercurl,
	"underdouble":   FlagUnderdouble,
	"underdotted":   FlagUnderdotted,
	"underdashed":   FlagUnderdashed,
	"strikethrough": FlagStrikethrough,
	"standout":      FlagStandout,
}

var flagOrder = []string{
	"bold", "italic", "underline", "undercurl", "underdouble",
	"underdotted", "underdashed", "strikethrough", "standout",
}

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// String lists the set flags separated by commas.
func (f Flags) String() string {
	var names []string
	for _, name := range flagOrder {
		if f.Has(FlagNames[name]) {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}

// MarshalText implements encoding.TextMarshaler.
func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a comma separated list of flag names.
func (f *Flags) UnmarshalText(text []byte) error {
	var out Flags
	for _, name := range strings.Split(string(text), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		flag, ok := FlagNames[name]
		if !ok {
			return fmt.Errorf("unknown flag %q", name)
		}
		out |= flag
	}
	*f = out
	return nil
}

// Attr holds the styling data for one highlight attribute id.
type Attr struct {
	// ID is the attribute id. 0 is reserved for the default colours.
	ID int `json:"id"`

	// Reverse swaps foreground and background when painting.
	Reverse bool `json:"reverse"`

	// Special is the colour used for undercurl and other decorations.
	Special NullColor `json:"special"`

	Foreground NullColor `json:"foreground"`
	Background NullColor `json:"background"`

	// Flags holds font emphasis.
	Flags Flags `json:"flags,omitempty"`

	// Opacity is 1 unless the definition carried a blend level.
	Opacity float64 `json:"opacity"`

	// State is the info array from the definition, in wire order.
	State []AttrState `json:"state,omitempty"`
}

// NewAttr returns an attribute with no colours set and full opacity.
func NewAttr(id int) Attr {
	return Attr{ID: id, Opacity: 1}
}

// Clone returns a deep copy of a.
func (a Attr) Clone() Attr {
	if a.State != nil {
		state := make([]AttrState, len(a.State))
		copy(state, a.State)
		a.State = state
	}
	return a
}

// Equal reports whether a and b hold the same values.
func (a Attr) Equal(b Attr) bool {
	if a.ID != b.ID || a.Reverse != b.Reverse || a.Flags != b.Flags || a.Opacity != b.Opacity {
		return false
	}
	if a.Special != b.Special || a.Foreground != b.Foreground || a.Background != b.Background {
		return false
	}
	if len(a.State) != len(b.State) {
		return false
	}
	for i := range a.State {
		if a.State[i] != b.State[i] {
			return false
		}
	}
	return true
}

// Resolved is an attribute with every colour filled in.
type Resolved struct {
	Foreground Color
	Background Color
	Special    Color
	Flags      Flags
	Opacity    float64
}

// Resolve fills unset colours from defaults and applies reverse.
// An unset special colour falls back to the resolved foreground when the
// default record has no special colour either.
func (a Attr) Resolve(defaults Attr) Resolved {
	fg := a.Foreground.Or(defaults.Foreground.Color)
	bg := a.Background.Or(defaults.Background.Color)
	sp := fg
	if a.Special.Valid {
		sp = a.Special.Color
	} else if defaults.Special.Valid {
		sp = defaults.Special.Color
	}
	if a.Reverse {
		fg, bg = bg, fg
	}
	return Resolved{
		Foreground: fg,
		Background: bg,
		Special:    sp,
		Flags:      a.Flags,
		Opacity:    a.Opacity,
	}
}
