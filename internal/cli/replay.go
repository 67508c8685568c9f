package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/opencode-ai/hlstate/internal/config"
	"github.com/opencode-ai/hlstate/internal/hlstate"
	"github.com/opencode-ai/hlstate/internal/logging"
	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/opencode-ai/hlstate/internal/redraw"
	"github.com/opencode-ai/hlstate/internal/styles"
	"github.com/spf13/cobra"
)

var replayTheme string

func init() {
	rootCmd.AddCommand(replayCmd)
	rootCmd.PersistentFlags().StringVar(&replayTheme, "theme", "", "seed default colours from a built-in palette")
}

var replayCmd = &cobra.Command{
	Use:   "replay <capture>",
	Short: "Replay a redraw capture and print the highlight table",
	Long: `Replay a file of msgpack-rpc messages captured from Neovim (use - for stdin)
and print every defined attribute with the group names bound to it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := replayCapture(cmd.Context(), cmd, args[0])
		if err != nil {
			return err
		}

		report := buildReplayReport(session)
		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, report)
		}
		return writeReplayTable(out, report, session.Snapshot())
	},
}

// captureSession is the result of replaying one capture.
type captureSession struct {
	ID         string
	Source     string
	Dispatcher *redraw.Dispatcher
}

// Snapshot returns the final highlight state.
func (s *captureSession) Snapshot() *hlstate.State {
	return s.Dispatcher.Snapshot()
}

func replayCapture(ctx context.Context, cmd *cobra.Command, source string) (*captureSession, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	sessionID := uuid.NewString()
	logger := logging.Component("cli").With().
		Str("session_id", sessionID).
		Str("source", source).
		Logger()

	state := hlstate.New(hlstate.WithLogger(logger))
	if err := seedTheme(state, cfg); err != nil {
		return nil, err
	}

	in, closeFn, err := openCapture(cmd, source)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	dispatcher := redraw.NewDispatcher(state, redraw.Options{
		PublishOnFlush: cfg.Replay.PublishOnFlush,
		Logger:         &logger,
	})

	step := startProgress(cmd.ErrOrStderr(), "Replaying "+source)
	if err := dispatcher.Run(ctx, in); err != nil {
		step.Fail(err)
		return nil, fmt.Errorf("failed to replay %s: %w", source, err)
	}

	snap := dispatcher.Snapshot()
	step.Done(fmt.Sprintf("%d attributes, %d groups", snap.Len(), len(snap.Names())))

	stats := dispatcher.Stats()
	logger.Info().
		Int("attrs", snap.Len()).
		Int("groups", len(snap.Names())).
		Int("ignored", stats.Ignored).
		Int("flushes", stats.Flushes).
		Msg("capture replayed")

	return &captureSession{ID: sessionID, Source: source, Dispatcher: dispatcher}, nil
}

func seedTheme(state *hlstate.State, cfg *config.Config) error {
	name := cfg.Display.Theme
	if replayTheme != "" {
		name = replayTheme
	}
	if name == "" {
		return nil
	}

	theme, ok := styles.LookupTheme(name)
	if !ok {
		return &PreflightError{
			Message:  fmt.Sprintf("unknown theme %q", name),
			Hint:     "Available themes: " + strings.Join(styles.ThemeNames(), ", "),
			NextStep: "hlstate themes",
		}
	}
	args, err := theme.DefaultColorsArgs()
	if err != nil {
		return err
	}
	return state.DefaultColorsSet(args)
}

func openCapture(cmd *cobra.Command, source string) (io.Reader, func(), error) {
	if source == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	file, err := os.Open(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &PreflightError{
				Message:  fmt.Sprintf("capture not found: %s", source),
				Hint:     "Pass a file of msgpack-rpc messages recorded from nvim --embed, or - for stdin",
				NextStep: "hlstate replay --help",
			}
		}
		return nil, nil, fmt.Errorf("failed to open capture: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// AttrReport is one defined attribute with the names bound to it.
type AttrReport struct {
	models.Attr
	Names []string `json:"names,omitempty"`
}

// ReplayReport is the payload written by `hlstate replay --json`.
type ReplayReport struct {
	Session  string            `json:"session"`
	Source   string            `json:"source"`
	Defaults models.Attr       `json:"defaults"`
	Attrs    []AttrReport      `json:"attrs"`
	Groups   map[string]int    `json:"groups"`
	Stats    models.EventStats `json:"stats"`
}

// JSONLines emits one line per attribute.
func (r ReplayReport) JSONLines() []any {
	lines := make([]any, 0, len(r.Attrs))
	for _, attr := range r.Attrs {
		lines = append(lines, attr)
	}
	return lines
}

func buildReplayReport(session *captureSession) ReplayReport {
	snap := session.Snapshot()

	groups := make(map[string]int)
	namesByID := make(map[int][]string)
	for _, name := range snap.Names() {
		id := snap.IDForName(name)
		groups[name] = id
		namesByID[id] = append(namesByID[id], name)
	}

	attrs := make([]AttrReport, 0, snap.Len())
	for _, id := range snap.IDs() {
		attr, _ := snap.Lookup(id)
		attrs = append(attrs, AttrReport{Attr: attr, Names: namesByID[id]})
	}

	return ReplayReport{
		Session:  session.ID,
		Source:   session.Source,
		Defaults: snap.DefaultColors(),
		Attrs:    attrs,
		Groups:   groups,
		Stats:    session.Dispatcher.Stats(),
	}
}

func writeReplayTable(out io.Writer, report ReplayReport, snap *hlstate.State) error {
	swatches := SwatchesEnabled()
	headers := []string{"ID", "NAMES", "FG", "BG", "SP", "REVERSE", "FLAGS", "OPACITY"}
	if swatches {
		headers = append(headers, "SAMPLE")
	}

	defaults := snap.DefaultColors()
	rows := make([][]string, 0, len(report.Attrs)+1)
	rows = append(rows, attrRow(defaults, defaults, []string{"(default)"}, swatches))
	for _, attr := range report.Attrs {
		rows = append(rows, attrRow(attr.Attr, defaults, attr.Names, swatches))
	}

	if err := writeTable(out, headers, rows); err != nil {
		return err
	}

	stats := report.Stats
	_, err := fmt.Fprintf(out, "\n%d attributes, %d groups, %d ignored events, %d flushes\n",
		len(report.Attrs), len(report.Groups), stats.Ignored, stats.Flushes)
	return err
}

func attrRow(attr, defaults models.Attr, names []string, swatch bool) []string {
	nameCell := strings.Join(names, ",")
	if nameCell == "" {
		nameCell = "-"
	}
	flags := attr.Flags.String()
	if flags == "" {
		flags = "-"
	}

	row := []string{
		strconv.Itoa(attr.ID),
		nameCell,
		attr.Foreground.String(),
		attr.Background.String(),
		attr.Special.String(),
		formatYesNo(attr.Reverse),
		flags,
		strconv.FormatFloat(attr.Opacity, 'f', 2, 64),
	}
	if swatch {
		row = append(row, escapeCell(styles.Swatch(attr, defaults, " Sample ")))
	}
	return row
}
