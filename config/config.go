package config

import (
	"math"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/brainbox/logger"
	"github.com/sartorproj/brainbox/processing"
)

// Config is the root configuration for the brainbox command.
type Config struct {
	Log     LogConfig     `yaml:"log" envPrefix:"BRAINBOX_LOG_"`
	Sync    SyncConfig    `yaml:"sync" envPrefix:"BRAINBOX_SYNC_"`
	Binning BinningConfig `yaml:"binning" envPrefix:"BRAINBOX_BINNING_"`
	Ephys   EphysConfig   `yaml:"ephys" envPrefix:"BRAINBOX_EPHYS_"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level       string   `yaml:"level" env:"LEVEL"`
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS" envSeparator:","`
	Console     bool     `yaml:"console" env:"CONSOLE"`
}

// SyncConfig configures resampling.
type SyncConfig struct {
	DT          float64 `yaml:"dt" env:"DT"`
	Interp      string  `yaml:"interp" env:"INTERP"`
	Extrapolate bool    `yaml:"extrapolate" env:"EXTRAPOLATE"`
	FillValue   string  `yaml:"fill_value" env:"FILL_VALUE"` // parsed as float, "NaN" allowed
	Epsilon     float64 `yaml:"epsilon" env:"EPSILON"`
}

// BinningConfig configures spike binning and the per-unit summary.
type BinningConfig struct {
	BinSize      float64 `yaml:"bin_size" env:"BIN_SIZE"`
	Intervals    bool    `yaml:"intervals" env:"INTERVALS"`
	LjungBoxLags int     `yaml:"ljung_box_lags" env:"LJUNG_BOX_LAGS"`
}

// EphysConfig configures multi-probe session synchronization.
type EphysConfig struct {
	Workers int    `yaml:"workers" env:"WORKERS"`
	ALFDir  string `yaml:"alf_dir" env:"ALF_DIR"`
	RawDir  string `yaml:"raw_dir" env:"RAW_DIR"`
}

// Load reads a YAML config file, expands ${VAR} references and applies
// BRAINBOX_* environment overrides, including those from a .env file in
// the working directory. An empty path starts from an empty config.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, "parse config yaml")
		}
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return cfg, nil
}

// SyncOptions converts the sync section to processing options. The config
// must have been validated.
func (c *Config) SyncOptions() *processing.SyncOptions {
	opts := processing.DefaultSyncOptions()
	if kind, err := processing.ParseKind(c.Sync.Interp); err == nil {
		opts.Interp = kind
	}
	if c.Sync.Extrapolate {
		opts.Fill = processing.Extrapolate()
	} else if v, err := strconv.ParseFloat(c.Sync.FillValue, 64); err == nil {
		opts.Fill = processing.FillWith(v)
	} else {
		opts.Fill = processing.FillWith(math.NaN())
	}
	if c.Sync.Epsilon > 0 {
		opts.Epsilon = c.Sync.Epsilon
	}
	return opts
}

// LoggerOptions converts the log section to logger options.
func (c *Config) LoggerOptions() []logger.Options {
	opts := []logger.Options{logger.WithLoggingLevel(logger.Level(c.Log.Level))}
	if len(c.Log.OutputPaths) > 0 {
		opts = append(opts, logger.WithOutputPaths(c.Log.OutputPaths))
	}
	if c.Log.Console {
		opts = append(opts, logger.WithConsoleEncoding())
	}
	return opts
}
