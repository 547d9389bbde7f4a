package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, "finchart.log", c.Log.Output)
	assert.Equal(t, 100*time.Millisecond, c.Dashboard.FramePeriod)
	assert.Equal(t, 100*time.Millisecond, c.Dashboard.PollTimeout)
	assert.Equal(t, 30, c.Dashboard.WindowSize)
	assert.Equal(t, 2*time.Second, c.Dashboard.ShutdownTimeout)
	assert.Equal(t, time.Second, c.Generator.Interval)
	assert.Equal(t, int64(60), c.Generator.ClockStep)
	assert.Equal(t, 1024, c.Generator.ChannelCapacity)
	assert.Equal(t, "16250", c.Conversion.USDIDRRate)
	require.Len(t, c.Instruments, 4)
	assert.Equal(t, "USD/BTC", c.Instruments[0].Symbol)
}

func TestLoadYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finchart.yaml")
	data := []byte(`
environment: test
dashboard:
  window_size: 10
instruments:
  - symbol: USD/SOL
    quote: USD
    seed_price: 150
    volatility: 2
    volume_scale: 50
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, 10, c.Dashboard.WindowSize)
	assert.Equal(t, 100*time.Millisecond, c.Dashboard.FramePeriod)
	require.Len(t, c.Instruments, 1)
	assert.Equal(t, "USD/SOL", c.Instruments[0].Symbol)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("FINCHART_LOG_LEVEL", "DEBUG")
	t.Setenv("FINCHART_LOG_OUTPUT", "stderr")
	t.Setenv("FINCHART_SEED", "42")
	t.Setenv("FINCHART_USD_IDR_RATE", "15999.5")

	c, err := LoadWithEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "stderr", c.Log.Output)
	assert.Equal(t, uint64(42), c.Generator.Seed)
	assert.Equal(t, "15999.5", c.Conversion.USDIDRRate)
}

func TestLoadWithEnvRejectsBadSeed(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("FINCHART_SEED", "minus-one")

	_, err := LoadWithEnv()
	assert.ErrorContains(t, err, "read env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Environment = "qa" },
			wantErr: "Environment must be one of: development, test, production",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "Log.Format must be one of",
		},
		{
			name:    "zero frame period",
			mutate:  func(c *Config) { c.Dashboard.FramePeriod = 0 },
			wantErr: "Dashboard.FramePeriod must be greater than 0",
		},
		{
			name:    "no instruments",
			mutate:  func(c *Config) { c.Instruments = nil },
			wantErr: "Instruments is required",
		},
		{
			name:    "instrument without seed",
			mutate:  func(c *Config) { c.Instruments[0].SeedPrice = 0 },
			wantErr: "Instruments[0].SeedPrice must be greater than 0",
		},
		{
			name:    "unknown currency",
			mutate:  func(c *Config) { c.Instruments[1].Quote = "ZZZ" },
			wantErr: "instruments[1].quote",
		},
		{
			name:    "duplicate symbol",
			mutate:  func(c *Config) { c.Instruments[1].Symbol = c.Instruments[0].Symbol },
			wantErr: "is duplicated",
		},
		{
			name:    "rate not a number",
			mutate:  func(c *Config) { c.Conversion.USDIDRRate = "lots" },
			wantErr: "conversion.usd_idr_rate",
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.Conversion.USDIDRRate = "-5" },
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Default()
			require.NoError(t, err)
			tt.mutate(c)

			err = c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidationErrorsCarryCodes(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	c.Log.Output = ""

	err = c.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "ERR_REQUIRED", verrs[0].Code)
	assert.Equal(t, "Log.Output", verrs[0].Field)
}
