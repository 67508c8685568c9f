// Package config loads hlstate configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. HLSTATE_LOGGING_LEVEL.
const EnvPrefix = "HLSTATE"

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Display DisplayConfig `mapstructure:"display"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error.
	Level string `mapstructure:"level"`

	// Format is console or json.
	Format string `mapstructure:"format"`
}

// DisplayConfig controls how resolved attributes are printed.
type DisplayConfig struct {
	// Theme seeds the default colours before any default_colors_set arrives.
	// Empty leaves them zeroed.
	Theme string `mapstructure:"theme"`

	// Swatches prints a coloured sample next to each attribute when stdout is a TTY.
	Swatches bool `mapstructure:"swatches"`
}

// ReplayConfig controls redraw stream handling.
type ReplayConfig struct {
	// PublishOnFlush publishes a snapshot only at flush boundaries.
	// When false, a snapshot is published after every redraw notification.
	PublishOnFlush bool `mapstructure:"publish_on_flush"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Display: DisplayConfig{
			Theme:    "",
			Swatches: true,
		},
		Replay: ReplayConfig{
			PublishOnFlush: true,
		},
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/hlstate or ~/.config/hlstate.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hlstate")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "hlstate")
}

// Load reads configuration. An explicit path must exist; otherwise config.yaml
// in DefaultConfigDir is read when present. Environment overrides apply last.
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("display.theme", cfg.Display.Theme)
	v.SetDefault("display.swatches", cfg.Display.Swatches)
	v.SetDefault("replay.publish_on_flush", cfg.Replay.PublishOnFlush)
}

// Validate checks field values.
func (c *Config) Validate() error {
	validation := &models.ValidationErrors{}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		validation.AddMessage("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		validation.AddMessage("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}

	return validation.Err()
}
