// Package config loads the brainbox configuration.
//
// Configuration comes from an optional YAML file with ${VAR} expansion,
// then BRAINBOX_* environment variables (a .env file in the working
// directory is read first), then defaults for anything still unset.
//
//	log:
//	  level: info
//	  output_paths: [stderr]
//	sync:
//	  dt: 0.01
//	  interp: linear
//	  extrapolate: false
//	  fill_value: NaN
//	binning:
//	  bin_size: 0.05
//	  intervals: true
//	ephys:
//	  workers: 4
//	  alf_dir: alf
//	  raw_dir: raw_ephys_data
//
// Environment variables are the upper-cased field names under their
// section prefix, e.g. BRAINBOX_SYNC_DT or BRAINBOX_EPHYS_WORKERS.
package config
