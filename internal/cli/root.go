// Package cli implements the hlstate command line.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/opencode-ai/hlstate/internal/config"
	"github.com/opencode-ai/hlstate/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var (
	configPath  string
	logLevel    string
	logFormat   string
	jsonOutput  bool
	jsonlOutput bool
	noColor     bool
	noProgress  bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hlstate",
	Short: "Inspect Neovim highlight state",
	Long: `hlstate replays captured Neovim msgpack-rpc redraw streams and reports the
resulting highlight table: attribute definitions, group bindings and the
default colours.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/hlstate/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&jsonOutput, "json", false, "write JSON output")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "write JSON lines output")
	flags.BoolVar(&noColor, "no-color", false, "disable colour swatches")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

func initConfig() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return &PreflightError{
			Message:  fmt.Sprintf("failed to load config: %v", err),
			Hint:     "Check the config file syntax and values",
			NextStep: "hlstate --config <path> --help",
		}
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	appConfig = cfg
	return nil
}

// GetConfig returns the loaded configuration, or nil before a command ran.
func GetConfig() *config.Config {
	return appConfig
}

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether --jsonl was given.
func IsJSONLOutput() bool {
	return jsonlOutput
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// PreflightError is a user-facing failure with guidance on how to proceed.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\nhint: ")
		b.WriteString(e.Hint)
	}
	if e.NextStep != "" {
		b.WriteString("\nnext: ")
		b.WriteString(e.NextStep)
	}
	return b.String()
}
