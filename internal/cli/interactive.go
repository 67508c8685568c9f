// Package cli provides helpers for terminal detection.
package cli

import (
	"os"

	"golang.org/x/term"
)

// SwatchesEnabled reports whether colour samples should be printed.
func SwatchesEnabled() bool {
	if noColor || IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if cfg := GetConfig(); cfg != nil && !cfg.Display.Swatches {
		return false
	}
	return hasTTY()
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
