package config

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sartorproj/brainbox/processing"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if !(c.Sync.DT > 0) || math.IsInf(c.Sync.DT, 0) {
		return errors.Errorf("sync.dt must be a positive number, got %v", c.Sync.DT)
	}
	if _, err := processing.ParseKind(c.Sync.Interp); err != nil {
		return errors.Errorf("sync.interp: %v", err)
	}
	if _, err := strconv.ParseFloat(c.Sync.FillValue, 64); err != nil {
		return errors.Errorf("sync.fill_value must be a number or NaN, got %q", c.Sync.FillValue)
	}
	if !(c.Sync.Epsilon > 0 && c.Sync.Epsilon < 1) {
		return errors.Errorf("sync.epsilon must be in (0, 1), got %v", c.Sync.Epsilon)
	}

	if !(c.Binning.BinSize > 0) || math.IsInf(c.Binning.BinSize, 0) {
		return errors.Errorf("binning.bin_size must be a positive number, got %v", c.Binning.BinSize)
	}
	if c.Binning.LjungBoxLags < 1 {
		return errors.New("binning.ljung_box_lags must be >= 1")
	}

	if c.Ephys.Workers < 1 {
		return errors.New("ephys.workers must be >= 1")
	}
	if c.Ephys.ALFDir == "" {
		return errors.New("ephys.alf_dir is required")
	}
	if c.Ephys.RawDir == "" {
		return errors.New("ephys.raw_dir is required")
	}
	return nil
}
