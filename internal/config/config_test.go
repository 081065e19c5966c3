package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, v *viper.Viper) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("byteshell", pflag.ContinueOnError)
	require.NoError(t, RegisterFlags(fs, v))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	// NO_COLOR disables color whenever it is present, even when empty.
	t.Setenv("NO_COLOR", "")
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	d := DefaultConfig()
	assert.Equal(t, d.HistorySize, cfg.HistorySize)
	assert.Equal(t, d.InputCapacity, cfg.InputCapacity)
	assert.Equal(t, d.MaxArgs, cfg.MaxArgs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.True(t, cfg.Banner)
	assert.False(t, cfg.Color)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BYTESHELL_HISTORY_SIZE", "7")
	t.Setenv("BYTESHELL_LOG_LEVEL", "debug")
	t.Setenv("BYTESHELL_BANNER", "false")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.HistorySize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Banner)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("BYTESHELL_MAX_ARGS", "8")

	v := viper.New()
	fs := newFlagSet(t, v)
	require.NoError(t, fs.Parse([]string{"--max-args", "16", "--log-file", "/tmp/bs.log"}))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.MaxArgs)
	assert.Equal(t, "/tmp/bs.log", cfg.LogFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "zero history", env: map[string]string{"BYTESHELL_HISTORY_SIZE": "0"}},
		{name: "tiny input capacity", env: map[string]string{"BYTESHELL_INPUT_CAPACITY": "1"}},
		{name: "tiny max args", env: map[string]string{"BYTESHELL_MAX_ARGS": "1"}},
		{name: "unknown log level", env: map[string]string{"BYTESHELL_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			_, err := Load(viper.New())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
