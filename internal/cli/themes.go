package cli

import (
	"fmt"

	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/opencode-ai/hlstate/internal/styles"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(versionCmd)
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List built-in palettes for seeding default colours",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := styles.ThemeNames()
		out := cmd.OutOrStdout()

		if IsJSONOutput() || IsJSONLOutput() {
			themes := make([]styles.Theme, 0, len(names))
			for _, name := range names {
				theme, _ := styles.LookupTheme(name)
				themes = append(themes, theme)
			}
			return WriteOutput(out, themes)
		}

		swatches := SwatchesEnabled()
		headers := []string{"NAME", "FG", "BG", "SP"}
		if swatches {
			headers = append(headers, "SAMPLE")
		}

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			theme, _ := styles.LookupTheme(name)
			row := []string{theme.Name, theme.Tokens.Foreground, theme.Tokens.Background, theme.Tokens.Special}
			if swatches {
				sample, err := themeSample(theme)
				if err != nil {
					return err
				}
				row = append(row, escapeCell(sample))
			}
			rows = append(rows, row)
		}
		return writeTable(out, headers, rows)
	},
}

func themeSample(theme styles.Theme) (string, error) {
	fg, err := styles.ParseHex(theme.Tokens.Foreground)
	if err != nil {
		return "", err
	}
	bg, err := styles.ParseHex(theme.Tokens.Background)
	if err != nil {
		return "", err
	}
	defaults := models.NewAttr(0)
	defaults.Foreground = models.SomeColor(fg)
	defaults.Background = models.SomeColor(bg)
	return styles.Swatch(defaults, defaults, " "+theme.Name+" "), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hlstate version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), map[string]string{"version": Version})
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "hlstate "+Version)
		return err
	},
}
