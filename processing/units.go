package processing

import (
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// MaxClusterID is the largest unit id GetUnitsBunch accepts.
const MaxClusterID = math.MaxInt32

// Bunch holds flat per-spike arrays keyed by feature name. All arrays are
// aligned by spike index; "clusters" holds the unit id of each spike.
type Bunch map[string][]float64

// FeatureBunch maps a unit id, as a decimal string, to that unit's values
// of one feature.
type FeatureBunch map[string][]float64

// Unit returns the values of unit id.
func (fb FeatureBunch) Unit(id int) []float64 {
	return fb[strconv.Itoa(id)]
}

// Units returns the unit ids in numeric order.
func (fb FeatureBunch) Units() []int {
	ids := make([]int, 0, len(fb))
	for k := range fb {
		if id, err := strconv.Atoi(k); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// UnitsBunch maps a feature name to its per-unit split.
type UnitsBunch map[string]FeatureBunch

// Features returns the feature names in sorted order.
func (ub UnitsBunch) Features() []string {
	keys := make([]string, 0, len(ub))
	for k := range ub {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetUnitsBunch splits every requested feature of spikes by unit. With no
// features given, every field of spikes is split.
//
// Units span 0..max(clusters); ids never observed get an empty slice so
// each FeatureBunch has exactly max+1 entries.
func GetUnitsBunch(spikes Bunch, features ...string) (UnitsBunch, error) {
	clusters, ok := spikes[ClustersColumn]
	if !ok {
		return nil, ErrMissingClusters
	}
	if len(clusters) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "no spikes")
	}

	numUnits := 0
	for i, c := range clusters {
		if math.IsNaN(c) || c < 0 || c > MaxClusterID || c != math.Trunc(c) {
			return nil, errors.Wrapf(ErrInvalidCluster, "clusters[%d] = %v", i, c)
		}
		numUnits = max(numUnits, int(c)+1)
	}

	// One pass over the clusters; the grouping is shared by every feature.
	groups := make([][]int, numUnits)
	for i, c := range clusters {
		u := int(c)
		groups[u] = append(groups[u], i)
	}

	if len(features) == 0 {
		for k := range spikes {
			features = append(features, k)
		}
		sort.Strings(features)
	}

	units := make(UnitsBunch, len(features))
	for _, key := range features {
		values, ok := spikes[key]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownFeature, "%q", key)
		}
		if len(values) != len(clusters) {
			return nil, errors.Wrapf(ErrShapeMismatch, "feature %q has %d values for %d spikes", key, len(values), len(clusters))
		}

		fb := make(FeatureBunch, numUnits)
		for u, idx := range groups {
			sub := make([]float64, len(idx))
			for j, i := range idx {
				sub[j] = values[i]
			}
			fb[strconv.Itoa(u)] = sub
		}
		units[key] = fb
	}
	return units, nil
}
