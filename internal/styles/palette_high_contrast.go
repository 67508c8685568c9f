package styles

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Foreground: "#FFFFFF",
		Background: "#000000",
		Special:    "#FFD400",
	},
}
