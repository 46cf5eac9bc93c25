package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/brainbox/processing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
log:
  level: debug
sync:
  dt: 0.02
  interp: linear
  extrapolate: true
binning:
  bin_size: 0.1
  intervals: true
ephys:
  workers: 8
`
	cfg, err := Load(writeTempFile(t, yaml))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 0.02, cfg.Sync.DT)
	assert.Equal(t, "linear", cfg.Sync.Interp)
	assert.True(t, cfg.Sync.Extrapolate)
	assert.Equal(t, 0.1, cfg.Binning.BinSize)
	assert.True(t, cfg.Binning.Intervals)
	assert.Equal(t, 8, cfg.Ephys.Workers)
	assert.Empty(t, cfg.Ephys.ALFDir, "defaults are not applied by Load")
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_ALF_DIR", "alf_v2")

	cfg, err := Load(writeTempFile(t, "ephys:\n  alf_dir: ${TEST_ALF_DIR}\n"))
	require.NoError(t, err)
	assert.Equal(t, "alf_v2", cfg.Ephys.ALFDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BRAINBOX_SYNC_DT", "0.5")
	t.Setenv("BRAINBOX_EPHYS_WORKERS", "2")
	t.Setenv("BRAINBOX_LOG_OUTPUT_PATHS", "stdout,/tmp/brainbox.log")

	cfg, err := Load(writeTempFile(t, "sync:\n  dt: 0.01\n  interp: nearest\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Sync.DT, "environment wins over the file")
	assert.Equal(t, "nearest", cfg.Sync.Interp, "unset variables leave the file value")
	assert.Equal(t, 2, cfg.Ephys.Workers)
	assert.Equal(t, []string{"stdout", "/tmp/brainbox.log"}, cfg.Log.OutputPaths)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Sync.DT, "no file needed")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeTempFile(t, "sync: [unclosed"))
	assert.Error(t, err)

	t.Setenv("BRAINBOX_SYNC_DT", "fast")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(writeTempFile(t, "sync:\n  interp: linear\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Log.OutputPaths)
	assert.Equal(t, DefaultDT, cfg.Sync.DT)
	assert.Equal(t, "linear", cfg.Sync.Interp)
	assert.Equal(t, DefaultFillValue, cfg.Sync.FillValue)
	assert.Equal(t, DefaultEpsilon, cfg.Sync.Epsilon)
	assert.Equal(t, DefaultBinSize, cfg.Binning.BinSize)
	assert.Equal(t, DefaultLjungBoxLags, cfg.Binning.LjungBoxLags)
	assert.Equal(t, DefaultWorkers, cfg.Ephys.Workers)
	assert.Equal(t, DefaultALFDir, cfg.Ephys.ALFDir)
	assert.Equal(t, DefaultRawDir, cfg.Ephys.RawDir)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"zero dt", func(c *Config) { c.Sync.DT = -1 }, "sync.dt"},
		{"interp", func(c *Config) { c.Sync.Interp = "quadratic" }, "sync.interp"},
		{"fill value", func(c *Config) { c.Sync.FillValue = "none" }, "sync.fill_value"},
		{"epsilon", func(c *Config) { c.Sync.Epsilon = 2 }, "sync.epsilon"},
		{"bin size", func(c *Config) { c.Binning.BinSize = math.Inf(1) }, "binning.bin_size"},
		{"lags", func(c *Config) { c.Binning.LjungBoxLags = -1 }, "binning.ljung_box_lags"},
		{"workers", func(c *Config) { c.Ephys.Workers = -3 }, "ephys.workers"},
		{"alf dir", func(c *Config) { c.Ephys.ALFDir = "" }, "ephys.alf_dir"},
		{"raw dir", func(c *Config) { c.Ephys.RawDir = "" }, "ephys.raw_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	_, err := LoadAndValidate(writeTempFile(t, "sync:\n  dt: -0.1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")

	cfg, err := LoadAndValidate(writeTempFile(t, "sync:\n  interp: linear\n  fill_value: \"0\"\n"))
	require.NoError(t, err)

	opts := cfg.SyncOptions()
	assert.Equal(t, processing.Linear, opts.Interp)
	assert.False(t, opts.Fill.Extrapolates())
	assert.Equal(t, 0.0, opts.Fill.Value())
	assert.Equal(t, processing.DefaultEpsilon, opts.Epsilon)
	assert.Len(t, cfg.LoggerOptions(), 2)
}

func TestSyncOptionsDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Sync.Extrapolate = true

	opts := cfg.SyncOptions()
	assert.Equal(t, processing.Zero, opts.Interp)
	assert.True(t, opts.Fill.Extrapolates())

	cfg.Sync.Extrapolate = false
	assert.True(t, math.IsNaN(cfg.SyncOptions().Fill.Value()))
}
