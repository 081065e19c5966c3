// Package config resolves byteshell settings from defaults, BYTESHELL_*
// environment variables and command-line flags. There is no config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment variable the shell reads
	// for its own settings.
	EnvPrefix = "BYTESHELL"

	KeyHistorySize   = "history-size"
	KeyInputCapacity = "input-capacity"
	KeyMaxArgs       = "max-args"
	KeyColor         = "color"
	KeyBanner        = "banner"
	KeyLogFile       = "log-file"
	KeyLogLevel      = "log-level"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved shell settings.
type Config struct {
	// HistorySize is the maximum number of remembered command lines.
	HistorySize int `mapstructure:"history-size"`
	// InputCapacity bounds the line buffer; a line holds at most
	// InputCapacity-1 characters.
	InputCapacity int `mapstructure:"input-capacity"`
	// MaxArgs bounds tokenizing; a command has at most MaxArgs-1 arguments.
	MaxArgs  int    `mapstructure:"max-args"`
	Color    bool   `mapstructure:"color"`
	Banner   bool   `mapstructure:"banner"`
	LogFile  string `mapstructure:"log-file"`
	LogLevel string `mapstructure:"log-level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		HistorySize:   100,
		InputCapacity: 1024,
		MaxArgs:       64,
		Color:         true,
		Banner:        true,
		LogFile:       "",
		LogLevel:      "info",
	}
}

// RegisterFlags declares the configuration flags on fs and binds them to v.
func RegisterFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	d := DefaultConfig()
	fs.Int(KeyHistorySize, d.HistorySize, "number of command lines kept in history")
	fs.Int(KeyInputCapacity, d.InputCapacity, "line buffer capacity in bytes")
	fs.Int(KeyMaxArgs, d.MaxArgs, "maximum number of tokens per command, including the name")
	fs.Bool(KeyColor, d.Color, "color the prompt")
	fs.Bool(KeyBanner, d.Banner, "print the welcome banner on startup")
	fs.String(KeyLogFile, d.LogFile, "write logs to this file (disabled when empty)")
	fs.String(KeyLogLevel, d.LogLevel, "log level: debug, info, warn or error")

	for _, key := range []string{KeyHistorySize, KeyInputCapacity, KeyMaxArgs, KeyColor, KeyBanner, KeyLogFile, KeyLogLevel} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load resolves the configuration from v. Precedence is flags, then
// environment, then defaults.
func Load(v *viper.Viper) (*Config, error) {
	d := DefaultConfig()
	v.SetDefault(KeyHistorySize, d.HistorySize)
	v.SetDefault(KeyInputCapacity, d.InputCapacity)
	v.SetDefault(KeyMaxArgs, d.MaxArgs)
	v.SetDefault(KeyColor, d.Color)
	v.SetDefault(KeyBanner, d.Banner)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	if c.HistorySize < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, KeyHistorySize, c.HistorySize)
	}
	if c.InputCapacity < 2 {
		return fmt.Errorf("%w: %s must be at least 2, got %d", ErrInvalidConfig, KeyInputCapacity, c.InputCapacity)
	}
	if c.MaxArgs < 2 {
		return fmt.Errorf("%w: %s must be at least 2, got %d", ErrInvalidConfig, KeyMaxArgs, c.MaxArgs)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyLogLevel, err)
	}
	return nil
}
