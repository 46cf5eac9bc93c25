package config

import "github.com/sartorproj/brainbox/processing"

// Default values for optional configuration fields.
const (
	DefaultLogLevel     = "info"
	DefaultDT           = 0.01
	DefaultInterp       = "zero"
	DefaultFillValue    = "NaN"
	DefaultEpsilon      = processing.DefaultEpsilon
	DefaultBinSize      = 0.05
	DefaultLjungBoxLags = 10
	DefaultWorkers      = 4
	DefaultALFDir       = "alf"
	DefaultRawDir       = "raw_ephys_data"
)

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if len(c.Log.OutputPaths) == 0 {
		c.Log.OutputPaths = []string{"stderr"}
	}

	if c.Sync.DT == 0 {
		c.Sync.DT = DefaultDT
	}
	if c.Sync.Interp == "" {
		c.Sync.Interp = DefaultInterp
	}
	if c.Sync.FillValue == "" {
		c.Sync.FillValue = DefaultFillValue
	}
	if c.Sync.Epsilon == 0 {
		c.Sync.Epsilon = DefaultEpsilon
	}

	if c.Binning.BinSize == 0 {
		c.Binning.BinSize = DefaultBinSize
	}
	if c.Binning.LjungBoxLags == 0 {
		c.Binning.LjungBoxLags = DefaultLjungBoxLags
	}

	if c.Ephys.Workers == 0 {
		c.Ephys.Workers = DefaultWorkers
	}
	if c.Ephys.ALFDir == "" {
		c.Ephys.ALFDir = DefaultALFDir
	}
	if c.Ephys.RawDir == "" {
		c.Ephys.RawDir = DefaultRawDir
	}
}
