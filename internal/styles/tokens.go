// Package styles turns highlight attributes into lipgloss styles and provides
// built-in palettes that seed the default colours.
package styles

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/opencode-ai/hlstate/internal/models"
)

// ThemeTokens holds the default colours a palette contributes, as hex strings.
type ThemeTokens struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Special    string `json:"special"`
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string      `json:"name"`
	Tokens ThemeTokens `json:"tokens"`
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeNames returns the palette names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTheme returns the named palette.
func LookupTheme(name string) (Theme, bool) {
	theme, ok := Themes[name]
	return theme, ok
}

// DefaultColorsArgs returns the theme as keyed default_colors_set arguments.
// Empty tokens are omitted so they leave the current default untouched.
func (t Theme) DefaultColorsArgs() ([]any, error) {
	keyed := make(map[string]any, 3)
	for key, hex := range map[string]string{
		"foreground": t.Tokens.Foreground,
		"background": t.Tokens.Background,
		"special":    t.Tokens.Special,
	} {
		if hex == "" {
			continue
		}
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("theme %s: %s: %w", t.Name, key, err)
		}
		keyed[key] = c.Packed()
	}
	return []any{keyed}, nil
}

// ParseHex parses "#rrggbb" (or the short "#rgb" form).
func ParseHex(hex string) (models.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return models.Color{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return models.Color{R: r, G: g, B: b}, nil
}
