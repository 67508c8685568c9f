package styles

// DefaultTheme matches Neovim's built-in dark scheme.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Foreground: "#E0E2EA",
		Background: "#14161B",
		Special:    "#FFC0B9",
	},
}
