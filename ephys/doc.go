// Package ephys synchronises spike sorting output of multi-probe
// recordings onto a common clock.
//
// Each probe records on its own clock. A sync table, a two-column numpy
// array of (probe time, reference time) pairs, maps it to the session
// reference:
//
//	ref, err := ephys.ApplySync(points, spikeTimes)
//
// A session on disk looks like:
//
//	<session>/alf/probe00/spikes.times.npy
//	<session>/raw_ephys_data/probe00/_spikeglx_sync.sync.npy
//
// SyncSpikeSortings rewrites every probe's spikes.times.npy in place:
//
//	results, err := ephys.SyncSpikeSortings(ctx, "/data/subject/2020-01-01/001", nil)
//	for _, r := range results {
//	    fmt.Println(r.Label, r.Spikes, r.Err)
//	}
package ephys
