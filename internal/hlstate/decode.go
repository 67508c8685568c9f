package hlstate

import (
	"fmt"
	"math"

	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/opencode-ai/hlstate/internal/wire"
)

// Define applies one hl_attr_define occurrence:
//
//	[id, rgb_attrs, cterm_attrs, info]
//
// The record for id is rebuilt from scratch. A missing or malformed rgb_attrs
// clears the attribute. Individual malformed keys are skipped. Only an
// unusable id rejects the event: ids must lie in 1..MaxID, since DefaultID
// belongs to the default colours.
func (s *State) Define(args []any) error {
	rawID := wire.At(args, 0)
	id, ok := wire.Int64(rawID)
	if !ok || id < 0 || id > MaxID {
		return fmt.Errorf("%w: hl_attr_define: invalid attribute id %v", ErrMalformedEvent, rawID)
	}
	if id == DefaultID {
		return fmt.Errorf("%w: hl_attr_define: id %d is reserved for the default colours", ErrMalformedEvent, id)
	}

	attr := models.NewAttr(int(id))

	if raw := wire.At(args, 1); raw != nil {
		if rgb, ok := wire.Map(raw); ok {
			s.applyRGBAttrs(&attr, rgb)
		} else {
			s.logger.Debug().Int("attr_id", attr.ID).Msgf("rgb_attrs is %T, defining cleared attribute", raw)
		}
	}

	if raw := wire.At(args, 3); raw != nil {
		if info, ok := wire.Array(raw); ok {
			attr.State = s.decodeInfo(attr.ID, info)
		} else {
			s.logger.Debug().Int("attr_id", attr.ID).Msgf("info is %T, ignoring", raw)
		}
	}

	s.SetIDAttr(attr.ID, attr)
	return nil
}

func (s *State) applyRGBAttrs(attr *models.Attr, rgb map[string]any) {
	for key, value := range rgb {
		switch key {
		case "foreground":
			s.decodeColor(&attr.Foreground, attr.ID, key, value)
		case "background":
			s.decodeColor(&attr.Background, attr.ID, key, value)
		case "special":
			s.decodeColor(&attr.Special, attr.ID, key, value)
		case "reverse":
			if b, ok := wire.Bool(value); ok {
				attr.Reverse = b
			} else {
				s.skipField(attr.ID, key, value)
			}
		case "blend":
			blend, ok := wire.Number(value)
			if !ok {
				s.skipField(attr.ID, key, value)
				continue
			}
			attr.Opacity = blendToOpacity(blend)
		default:
			flag, known := models.FlagNames[key]
			if !known {
				continue
			}
			if b, ok := wire.Bool(value); ok {
				if b {
					attr.Flags |= flag
				}
			} else {
				s.skipField(attr.ID, key, value)
			}
		}
	}
}

func (s *State) decodeColor(dst *models.NullColor, attrID int, key string, value any) {
	packed, ok := wire.Int64(value)
	if !ok || packed < 0 {
		s.skipField(attrID, key, value)
		return
	}
	*dst = models.SomeColor(models.ColorFromPacked(uint32(packed)))
}

func (s *State) decodeInfo(attrID int, info []any) []models.AttrState {
	states := make([]models.AttrState, 0, len(info))
	for i, entry := range info {
		m, ok := wire.Map(entry)
		if !ok {
			s.logger.Debug().Int("attr_id", attrID).Int("index", i).Msgf("info entry is %T, skipping", entry)
			continue
		}

		var st models.AttrState
		if kind, ok := wire.String(m["kind"]); ok && kind == "ui" {
			st.Kind = models.KindUI
		}
		st.HiName, _ = wire.String(m["hi_name"])
		st.UIName, _ = wire.String(m["ui_name"])
		if id, ok := wire.Int64(m["id"]); ok && id >= 0 && id <= math.MaxUint16 {
			st.ID = uint16(id)
		}
		states = append(states, st)
	}
	return states
}

func (s *State) skipField(attrID int, key string, value any) {
	s.logger.Debug().
		Int("attr_id", attrID).
		Str("key", key).
		Msgf("skipping malformed field of type %T", value)
}

// blendToOpacity maps a 0-100 blend level to an opacity in [0, 1].
func blendToOpacity(blend float64) float64 {
	switch {
	case math.IsNaN(blend) || blend <= 0:
		return 1
	case blend >= 100:
		return 0
	}
	return 1 - blend/100
}

// DefaultColorsSet applies one default_colors_set occurrence. Both the keyed
// form [{foreground, background, special}] and the positional form
// [rgb_fg, rgb_bg, rgb_sp, cterm_fg, cterm_bg] are accepted. Channels that are
// absent, negative or malformed keep their previous value.
func (s *State) DefaultColorsSet(args []any) error {
	var fg, bg, sp any
	if keyed, ok := wire.Map(wire.At(args, 0)); ok {
		fg, bg, sp = keyed["foreground"], keyed["background"], keyed["special"]
	} else {
		fg, bg, sp = wire.At(args, 0), wire.At(args, 1), wire.At(args, 2)
	}

	s.setDefaultChannel(&s.defaults.Foreground, "foreground", fg)
	s.setDefaultChannel(&s.defaults.Background, "background", bg)
	s.setDefaultChannel(&s.defaults.Special, "special", sp)
	return nil
}

func (s *State) setDefaultChannel(dst *models.NullColor, key string, value any) {
	if value == nil {
		return
	}
	packed, ok := wire.Int64(value)
	if !ok {
		s.skipField(DefaultID, key, value)
		return
	}
	if packed < 0 {
		return
	}
	*dst = models.SomeColor(models.ColorFromPacked(uint32(packed)))
}

// GroupSet applies one hl_group_set occurrence: [name, id]. The id does not
// need to be defined yet. It shares Define's range, and DefaultID binds the
// name to the default colours.
func (s *State) GroupSet(args []any) error {
	name, ok := wire.String(wire.At(args, 0))
	if !ok {
		return fmt.Errorf("%w: hl_group_set: invalid group name %v", ErrMalformedEvent, wire.At(args, 0))
	}
	id, ok := wire.Int64(wire.At(args, 1))
	if !ok || id < 0 || id > MaxID {
		return fmt.Errorf("%w: hl_group_set: invalid attribute id %v for %q", ErrMalformedEvent, wire.At(args, 1), name)
	}

	s.SetNameID(name, uint32(id))
	return nil
}
