package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/brainbox/batch"
	"github.com/sartorproj/brainbox/ephys"
	"github.com/sartorproj/brainbox/logger"
	"github.com/sartorproj/brainbox/processing"
	"github.com/sartorproj/brainbox/stats"
	"github.com/sartorproj/brainbox/timeseries"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runResample(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("resample", flag.ContinueOnError)
	var inputs stringList
	fs.Var(&inputs, "in", "input CSV with a time column (repeatable)")
	dt := fs.Float64("dt", a.cfg.Sync.DT, "grid step in seconds")
	interp := fs.String("interp", a.cfg.Sync.Interp, "interpolation: zero, nearest, next, linear, cubic, akima, fritsch-butland")
	extrapolate := fs.Bool("extrapolate", a.cfg.Sync.Extrapolate, "extend the grid to whole steps and extrapolate")
	timeColumn := fs.String("time-column", "times", "name of the time column")
	out := fs.String("out", "-", "output CSV, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("resample: at least one -in file is required")
	}
	if _, err := processing.ParseKind(*interp); err != nil {
		return err
	}

	csvOpts := timeseries.DefaultCSVOptions()
	csvOpts.TimeColumn = *timeColumn

	series := make([]*timeseries.TimeSeries, 0, len(inputs))
	for _, path := range inputs {
		ts, err := timeseries.LoadCSV(path, csvOpts)
		if err != nil {
			return err
		}
		a.log.DebugContext(ctx, "loaded series",
			logger.NewField("file", path),
			logger.NewField("samples", ts.Len()),
			logger.NewField("columns", ts.NumColumns()),
		)
		series = append(series, ts)
	}

	a.cfg.Sync.Interp = *interp
	a.cfg.Sync.Extrapolate = *extrapolate
	synced, err := processing.Sync(*dt, series, nil, a.cfg.SyncOptions())
	if err != nil {
		return err
	}

	a.log.InfoContext(ctx, "resampled",
		logger.NewField("inputs", len(series)),
		logger.NewField("samples", synced.Len()),
		logger.NewField("columns", synced.NumColumns()),
		logger.NewField("dt", *dt),
	)
	return writeSeries(a, *out, synced)
}

// unitJSON is one unit of the bin summary. Undefined statistics are null.
type unitJSON struct {
	Unit      string   `json:"unit"`
	RateHz    float64  `json:"rate_hz"`
	Fano      *float64 `json:"fano"`
	LjungBoxQ *float64 `json:"ljung_box_q"`
	LjungBoxP *float64 `json:"ljung_box_p"`
}

func runBin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("bin", flag.ContinueOnError)
	in := fs.String("in", "", "spikes CSV with times and clusters columns")
	binSize := fs.Float64("binsize", a.cfg.Binning.BinSize, "bin size in seconds")
	intervals := fs.Bool("intervals", a.cfg.Binning.Intervals, "label rows with [start, end) intervals")
	out := fs.String("out", "-", "output CSV, - for stdout")
	summary := fs.String("summary", "", "write a per-unit JSON summary to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("bin: -in is required")
	}

	csvOpts := timeseries.DefaultCSVOptions()
	csvOpts.Columns = []string{processing.ClustersColumn}
	spikes, err := timeseries.LoadCSV(*in, csvOpts)
	if err != nil {
		return err
	}

	binned, err := processing.BinSpikes(spikes, *binSize, *intervals)
	if err != nil {
		return err
	}

	units, err := stats.Summarize(binned, *binSize, a.cfg.Binning.LjungBoxLags)
	if err != nil {
		return err
	}
	rates := make([]float64, len(units))
	for i, u := range units {
		rates[i] = u.Rate
	}
	a.log.InfoContext(ctx, "binned spikes",
		logger.NewField("spikes", spikes.Len()),
		logger.NewField("bins", binned.Len()),
		logger.NewField("units", binned.NumColumns()),
		logger.NewField("mean_rate_hz", stat.Mean(rates, nil)),
	)

	if err := writeSeries(a, *out, binned); err != nil {
		return err
	}
	if *summary != "" {
		return writeSummary(*summary, units)
	}
	return nil
}

func writeSummary(path string, units []stats.UnitSummary) error {
	out := make([]unitJSON, len(units))
	for i, u := range units {
		out[i] = unitJSON{Unit: u.Unit, RateHz: u.Rate, Fano: finiteOrNil(u.Fano)}
		if u.LjungBox != nil {
			out[i].LjungBoxQ = finiteOrNil(u.LjungBox.Statistic)
			out[i].LjungBoxP = finiteOrNil(u.LjungBox.PValue)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, data, 0o644))
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func runUnits(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("units", flag.ContinueOnError)
	in := fs.String("in", "", "spikes CSV with times, clusters and feature columns")
	features := fs.String("features", "", "comma separated features to split (default: all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("units: -in is required")
	}

	ts, err := timeseries.LoadCSV(*in, nil)
	if err != nil {
		return err
	}
	spikes := processing.Bunch{"times": ts.Times}
	for j := 0; j < ts.NumColumns(); j++ {
		spikes[ts.ColumnName(j)] = ts.Col(j)
	}

	var keys []string
	if *features != "" {
		for _, f := range strings.Split(*features, ",") {
			keys = append(keys, strings.TrimSpace(f))
		}
	}

	units, err := processing.GetUnitsBunch(spikes, keys...)
	if err != nil {
		return err
	}
	names := units.Features()
	ids := units[names[0]].Units()

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	header := []string{"unit", "spikes"}
	for _, n := range names {
		header = append(header, "mean_"+n)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, id := range ids {
		row := []string{fmt.Sprint(id), fmt.Sprint(len(units[names[0]].Unit(id)))}
		for _, n := range names {
			vals := units[n].Unit(id)
			if len(vals) == 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.4g", stat.Mean(vals, nil)))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	a.log.InfoContext(ctx, "split spikes per unit",
		logger.NewField("spikes", ts.Len()),
		logger.NewField("units", len(ids)),
		logger.NewField("features", names),
	)
	return errors.WithStack(tw.Flush())
}

func runEphysSync(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("ephys-sync", flag.ContinueOnError)
	workers := fs.Int("workers", a.cfg.Ephys.Workers, "probes processed in parallel per session")
	sessions := fs.Int("sessions", 1, "sessions processed in parallel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("ephys-sync: at least one session directory is required")
	}

	results, err := batch.MapAll(ctx, fs.Args(), *sessions, func(ctx context.Context, session string) ([]ephys.ProbeResult, error) {
		return ephys.SyncSpikeSortings(ctx, session, &ephys.Options{
			ALFDir:  a.cfg.Ephys.ALFDir,
			RawDir:  a.cfg.Ephys.RawDir,
			Workers: *workers,
			Logger:  a.log.WithFields(logger.NewField("session", session)),
		})
	})
	if err != nil {
		return err
	}

	var errs error
	for i, r := range results {
		session := fs.Arg(i)
		for _, p := range r.Value {
			if p.Err == nil {
				a.log.InfoContext(ctx, "probe synchronised",
					logger.NewField("session", session),
					logger.NewField("probe", p.Label),
					logger.NewField("spikes", p.Spikes),
				)
			}
		}
		if r.Err != nil {
			errs = multierr.Append(errs, errors.Wrap(r.Err, session))
		}
	}
	return errs
}

func writeSeries(a *app, path string, ts *timeseries.TimeSeries) error {
	if path == "-" {
		return timeseries.WriteCSV(a.stdout, ts)
	}
	return timeseries.SaveCSV(ts, path)
}
