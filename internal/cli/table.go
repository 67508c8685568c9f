// Package cli provides table helpers for human-readable output.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const tablePadding = 2

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// escapeCell passes s through tabwriter uninterpreted. Escaped bytes still
// count toward column width, so use it for the last column only.
func escapeCell(s string) string {
	return string(tabwriter.Escape) + s + string(tabwriter.Escape)
}

// WriteOutput writes v as indented JSON, or as one line per element of a
// slice when --jsonl is set.
func WriteOutput(out io.Writer, v any) error {
	if IsJSONLOutput() {
		return writeJSONLines(out, v)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONLines(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	if lines, ok := v.(interface{ JSONLines() []any }); ok {
		for _, line := range lines.JSONLines() {
			if err := enc.Encode(line); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(v)
}
