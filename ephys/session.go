package ephys

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/brainbox/batch"
	"github.com/sartorproj/brainbox/logger"
)

// File names inside a probe directory.
const (
	SpikeTimesFile = "spikes.times.npy"
	syncPattern    = "*.sync.npy"
)

var (
	// ErrNoProbes is returned when a session has no probe with spike times.
	ErrNoProbes = errors.New("ephys: no probe with spike times in session")

	// ErrNoSyncFile is returned when a probe has no synchronisation file.
	ErrNoSyncFile = errors.New("ephys: no synchronisation file")

	// ErrBadSyncTable is returned for a sync table that cannot be applied.
	ErrBadSyncTable = errors.New("ephys: sync table must have two columns and at least two rows")
)

// Options configures SyncSpikeSortings.
type Options struct {
	ALFDir  string // spike sorting output, relative to the session
	RawDir  string // raw recordings holding the sync files, relative to the session
	Workers int
	Logger  logger.Interface
}

// DefaultOptions returns the standard session layout with four workers.
func DefaultOptions() *Options {
	return &Options{
		ALFDir:  "alf",
		RawDir:  "raw_ephys_data",
		Workers: 4,
		Logger:  logger.NewNop(),
	}
}

// Probe is one probe of a session.
type Probe struct {
	Label      string
	SpikeTimes string // path of spikes.times.npy
	SyncFile   string // path of the sync table, "" when missing
}

// ProbeResult reports one synchronised probe.
type ProbeResult struct {
	Probe
	Spikes int
	Err    error
}

// Probes lists the probes of a session: every sub-directory of the ALF
// directory holding a spikes.times.npy file, in label order.
func Probes(session string, opts *Options) ([]Probe, error) {
	opts = withDefaults(opts)

	alf := filepath.Join(session, opts.ALFDir)
	entries, err := os.ReadDir(alf)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", alf)
	}

	var probes []Probe
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		st := filepath.Join(alf, e.Name(), SpikeTimesFile)
		if _, err := os.Stat(st); err != nil {
			continue
		}

		matches, err := filepath.Glob(filepath.Join(session, opts.RawDir, e.Name(), syncPattern))
		if err != nil {
			return nil, errors.Wrap(err, "glob sync files")
		}
		sort.Strings(matches)

		p := Probe{Label: e.Name(), SpikeTimes: st}
		if len(matches) > 0 {
			p.SyncFile = matches[0]
		}
		probes = append(probes, p)
	}

	if len(probes) == 0 {
		return nil, errors.Wrapf(ErrNoProbes, "%s", alf)
	}
	sort.Slice(probes, func(i, j int) bool { return probes[i].Label < probes[j].Label })
	return probes, nil
}

// SyncSpikeSortings rewrites the spike times of every probe of a session
// on the reference clock, using the probe's sync table. Probes are
// processed in parallel. A failing probe does not stop the others; every
// failure is logged, reported in its ProbeResult and combined into the
// returned error.
func SyncSpikeSortings(ctx context.Context, session string, opts *Options) ([]ProbeResult, error) {
	opts = withDefaults(opts)

	probes, err := Probes(session, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.InfoContext(ctx, "synchronising spike sortings",
		logger.NewField("session", session),
		logger.NewField("probes", len(probes)),
	)

	results, err := batch.MapAll(ctx, probes, opts.Workers, func(ctx context.Context, p Probe) (int, error) {
		return syncProbe(ctx, p, opts.Logger)
	})
	if err != nil {
		return nil, err
	}

	out := make([]ProbeResult, len(probes))
	var errs error
	for i, r := range results {
		out[i] = ProbeResult{Probe: probes[i], Spikes: r.Value, Err: r.Err}
		if r.Err != nil {
			errs = multierr.Append(errs, errors.Wrapf(r.Err, "probe %s", probes[i].Label))
		}
	}
	return out, errs
}

func syncProbe(ctx context.Context, p Probe, log logger.Interface) (int, error) {
	log = log.WithFields(logger.NewField("probe", p.Label))

	if p.SyncFile == "" {
		err := errors.Wrapf(ErrNoSyncFile, "for %s", p.Label)
		log.ErrorContext(ctx, err)
		return 0, err
	}

	var points mat.Dense
	if err := readNpy(p.SyncFile, &points); err != nil {
		return 0, err
	}
	var times []float64
	if err := readNpy(p.SpikeTimes, &times); err != nil {
		return 0, err
	}

	synced, err := ApplySync(&points, times)
	if err != nil {
		return 0, errors.Wrap(err, p.SyncFile)
	}
	if err := writeNpy(p.SpikeTimes, synced); err != nil {
		return 0, err
	}

	log.DebugContext(ctx, "spike times synchronised",
		logger.NewField("spikes", len(synced)),
		logger.NewField("sync_file", p.SyncFile),
	)
	return len(synced), nil
}

func withDefaults(opts *Options) *Options {
	def := DefaultOptions()
	if opts == nil {
		return def
	}
	o := *opts
	if o.ALFDir == "" {
		o.ALFDir = def.ALFDir
	}
	if o.RawDir == "" {
		o.RawDir = def.RawDir
	}
	if o.Workers < 1 {
		o.Workers = def.Workers
	}
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	return &o
}

func readNpy(path string, ptr any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if err := npyio.Read(f, ptr); err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	return nil
}

// writeNpy replaces path through a temporary file in the same directory,
// keeping the permissions of the file it replaces.
func writeNpy(path string, values []float64) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".spikes-*.npy")
	if err != nil {
		return errors.WithStack(err)
	}
	defer os.Remove(tmp.Name())

	if err := npyio.Write(tmp, values); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.Rename(tmp.Name(), path))
}
