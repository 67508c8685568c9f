package cli

import (
	"io"
	"strconv"

	"github.com/opencode-ai/hlstate/internal/hlstate"
	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/opencode-ai/hlstate/internal/styles"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <capture> <group>...",
	Short: "Resolve highlight groups against a replayed capture",
	Long: `Replay a capture, then resolve each named highlight group to the colours a
renderer would paint: unset channels fall back to the default colours and
reverse is applied.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := replayCapture(cmd.Context(), cmd, args[0])
		if err != nil {
			return err
		}

		snap := session.Snapshot()
		results := make([]GroupResolution, 0, len(args)-1)
		for _, name := range args[1:] {
			results = append(results, resolveGroup(snap, name))
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, lookupResults(results))
		}
		return writeLookupTable(out, snap, results)
	},
}

// GroupResolution is the resolved paint for one highlight group.
type GroupResolution struct {
	Group   string `json:"group"`
	ID      int    `json:"id"`
	Bound   bool   `json:"bound"`
	Defined bool   `json:"defined"`

	Foreground string       `json:"foreground"`
	Background string       `json:"background"`
	Special    string       `json:"special"`
	Flags      models.Flags `json:"flags,omitempty"`
	Opacity    float64      `json:"opacity"`

	attr models.Attr
}

type lookupResults []GroupResolution

func (r lookupResults) JSONLines() []any {
	lines := make([]any, 0, len(r))
	for _, res := range r {
		lines = append(lines, res)
	}
	return lines
}

func resolveGroup(snap *hlstate.State, name string) GroupResolution {
	attr, bound := snap.AttrForName(name)
	id := snap.IDForName(name)
	_, defined := snap.Lookup(id)

	resolved := attr.Resolve(snap.DefaultColors())
	return GroupResolution{
		Group:      name,
		ID:         id,
		Bound:      bound,
		Defined:    bound && defined,
		Foreground: resolved.Foreground.Hex(),
		Background: resolved.Background.Hex(),
		Special:    resolved.Special.Hex(),
		Flags:      resolved.Flags,
		Opacity:    resolved.Opacity,
		attr:       attr,
	}
}

func writeLookupTable(out io.Writer, snap *hlstate.State, results []GroupResolution) error {
	swatches := SwatchesEnabled()
	headers := []string{"GROUP", "ID", "DEFINED", "FG", "BG", "SP", "FLAGS"}
	if swatches {
		headers = append(headers, "SAMPLE")
	}

	defaults := snap.DefaultColors()
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		id := strconv.Itoa(res.ID)
		if !res.Bound {
			id = "-"
		}
		flags := res.Flags.String()
		if flags == "" {
			flags = "-"
		}
		row := []string{res.Group, id, formatYesNo(res.Defined), res.Foreground, res.Background, res.Special, flags}
		if swatches {
			row = append(row, escapeCell(styles.Swatch(res.attr, defaults, " "+res.Group+" ")))
		}
		rows = append(rows, row)
	}
	return writeTable(out, headers, rows)
}
