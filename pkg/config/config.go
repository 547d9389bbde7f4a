package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FINCHART"

// PathEnv optionally names a YAML file to load before env overrides.
const PathEnv = EnvPrefix + "_CONFIG"

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required,oneof=development test production"`
	Log         struct {
		Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format     string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output     string `yaml:"output" default:"finchart.log" validate:"required"`
		TimeFormat string `yaml:"time_format" default:"2006-01-02T15:04:05Z07:00"`
	} `yaml:"log"`
	Dashboard struct {
		FramePeriod     time.Duration `yaml:"frame_period" default:"100ms" validate:"gt=0"`
		PollTimeout     time.Duration `yaml:"poll_timeout" default:"100ms" validate:"gt=0"`
		WindowSize      int           `yaml:"window_size" default:"30" validate:"gte=1,lte=1000"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"2s" validate:"gt=0"`
	} `yaml:"dashboard"`
	Generator struct {
		Interval        time.Duration `yaml:"interval" default:"1s" validate:"gt=0"`
		ClockStep       int64         `yaml:"clock_step" default:"60" validate:"gt=0"`
		Seed            uint64        `yaml:"seed"`
		ChannelCapacity int           `yaml:"channel_capacity" default:"1024" validate:"gte=1"`
	} `yaml:"generator"`
	Conversion struct {
		USDIDRRate string `yaml:"usd_idr_rate" default:"16250" validate:"required"`
	} `yaml:"conversion"`
	Instruments []Instrument `yaml:"instruments" validate:"required,min=1,dive"`
}

// Instrument describes one synthetic series.
type Instrument struct {
	Symbol      string  `yaml:"symbol" validate:"required,max=16"`
	Quote       string  `yaml:"quote" validate:"required,len=3"`
	SeedPrice   float64 `yaml:"seed_price" validate:"gt=0"`
	Volatility  float64 `yaml:"volatility" validate:"gte=0"`
	VolumeScale float64 `yaml:"volume_scale" validate:"gte=0"`
}

// DefaultInstruments is the built-in market table.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{Symbol: "USD/BTC", Quote: "USD", SeedPrice: 103879.0, Volatility: 100, VolumeScale: 5},
		{Symbol: "USD/ETH", Quote: "USD", SeedPrice: 2548.64, Volatility: 10, VolumeScale: 20},
		{Symbol: "IDR/BTC", Quote: "IDR", SeedPrice: 1729998000.0, Volatility: 1e6, VolumeScale: 5},
		{Symbol: "IDR/ETH", Quote: "IDR", SeedPrice: 42679530.0, Volatility: 1e5, VolumeScale: 20},
	}
}

// overrides are the FINCHART_* variables. Empty values leave the config as is.
type overrides struct {
	Environment string  `envconfig:"ENVIRONMENT"`
	LogLevel    string  `envconfig:"LOG_LEVEL"`
	LogFormat   string  `envconfig:"LOG_FORMAT"`
	LogOutput   string  `envconfig:"LOG_OUTPUT"`
	Seed        *uint64 `envconfig:"SEED"`
	USDIDRRate  string  `envconfig:"USD_IDR_RATE"`
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	c.Instruments = DefaultInstruments()
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv starts from the defaults (or the file named by FINCHART_CONFIG)
// and applies FINCHART_* environment overrides.
func LoadWithEnv() (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path := os.Getenv(PathEnv); path != "" {
		c, err = Load(path)
	} else {
		c, err = Default()
	}
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	var env overrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("read env: %w", err)
	}

	if env.Environment != "" {
		c.Environment = env.Environment
	}
	if env.LogLevel != "" {
		c.Log.Level = strings.ToLower(env.LogLevel)
	}
	if env.LogFormat != "" {
		c.Log.Format = env.LogFormat
	}
	if env.LogOutput != "" {
		c.Log.Output = env.LogOutput
	}
	if env.Seed != nil {
		c.Generator.Seed = *env.Seed
	}
	if env.USDIDRRate != "" {
		c.Conversion.USDIDRRate = env.USDIDRRate
	}
	return nil
}

// Validate checks struct rules and the values they cannot express.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}

	rate, err := decimal.NewFromString(c.Conversion.USDIDRRate)
	if err != nil {
		return fmt.Errorf("conversion.usd_idr_rate: %w", err)
	}
	if !rate.IsPositive() {
		return errors.New("conversion.usd_idr_rate must be positive")
	}

	seen := make(map[string]struct{}, len(c.Instruments))
	for i, inst := range c.Instruments {
		if _, err := currency.ParseISO(inst.Quote); err != nil {
			return fmt.Errorf("instruments[%d].quote %q: %w", i, inst.Quote, err)
		}
		if _, dup := seen[inst.Symbol]; dup {
			return fmt.Errorf("instruments[%d].symbol %q is duplicated", i, inst.Symbol)
		}
		seen[inst.Symbol] = struct{}{}
	}
	return nil
}
