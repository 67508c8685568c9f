package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/opencode-ai/hlstate/internal/models"
)

const underlineFlags = models.FlagUnderline | models.FlagUndercurl | models.FlagUnderdouble |
	models.FlagUnderdotted | models.FlagUnderdashed

// FromAttr converts an attribute into a lipgloss style. Unset colours come
// from defaults and reverse is already applied to the result.
func FromAttr(attr, defaults models.Attr) lipgloss.Style {
	resolved := attr.Resolve(defaults)

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(resolved.Foreground.Hex())).
		Background(lipgloss.Color(resolved.Background.Hex())).
		Bold(resolved.Flags.Has(models.FlagBold) || resolved.Flags.Has(models.FlagStandout)).
		Italic(resolved.Flags.Has(models.FlagItalic)).
		Underline(resolved.Flags&underlineFlags != 0).
		Strikethrough(resolved.Flags.Has(models.FlagStrikethrough))
}

// Swatch renders text in the attribute's style.
func Swatch(attr, defaults models.Attr, text string) string {
	return FromAttr(attr, defaults).Render(text)
}
