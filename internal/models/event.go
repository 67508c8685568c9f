package models

// EventType names a redraw event.
type EventType string

const (
	// Highlight events
	EventTypeHlAttrDefine     EventType = "hl_attr_define"
	EventTypeDefaultColorsSet EventType = "default_colors_set"
	EventTypeHlGroupSet       EventType = "hl_group_set"

	// Batch boundary
	EventTypeFlush EventType = "flush"
)

// IsHighlight reports whether the event mutates highlight state.
func (t EventType) IsHighlight() bool {
	switch t {
	case EventTypeHlAttrDefine, EventTypeDefaultColorsSet, EventTypeHlGroupSet:
		return true
	}
	return false
}

// EventStats counts how a stream of redraw events was handled.
type EventStats struct {
	// Applied counts highlight events applied, by type.
	Applied map[EventType]int `json:"applied"`

	// Rejected counts highlight events whose payload was unusable.
	Rejected map[EventType]int `json:"rejected,omitempty"`

	// Ignored counts events this store does not handle.
	Ignored int `json:"ignored"`

	// Flushes counts batch boundaries seen.
	Flushes int `json:"flushes"`
}

// NewEventStats returns zeroed stats.
func NewEventStats() EventStats {
	return EventStats{
		Applied:  make(map[EventType]int),
		Rejected: make(map[EventType]int),
	}
}

// Clone returns a copy that shares no maps with s.
func (s EventStats) Clone() EventStats {
	out := NewEventStats()
	for k, v := range s.Applied {
		out.Applied[k] = v
	}
	for k, v := range s.Rejected {
		out.Rejected[k] = v
	}
	out.Ignored = s.Ignored
	out.Flushes = s.Flushes
	return out
}
