package ephys

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/brainbox/processing"
)

// ApplySync maps probe-clock times to the reference clock through a sync
// table. Each row of points is (probe time, reference time). Times between
// sync points are interpolated linearly and times outside them follow the
// first or last segment.
func ApplySync(points *mat.Dense, times []float64) ([]float64, error) {
	if points == nil {
		return nil, errors.Wrap(ErrBadSyncTable, "nil table")
	}
	r, c := points.Dims()
	if c != 2 {
		return nil, errors.Wrapf(ErrBadSyncTable, "%d columns, want 2", c)
	}
	if r < 2 {
		return nil, errors.Wrapf(ErrBadSyncTable, "%d sync points, want at least 2", r)
	}

	synced, err := processing.Interpolate(
		mat.Col(nil, 0, points),
		mat.Col(nil, 1, points),
		times,
		processing.Linear,
		processing.Extrapolate(),
	)
	if err != nil {
		return nil, errors.Wrap(ErrBadSyncTable, err.Error())
	}
	return synced, nil
}
