package timeseries

import "strconv"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start float64
	End   float64
}

// Width returns End - Start.
func (iv Interval) Width() float64 {
	return iv.End - iv.Start
}

// Contains reports whether t lies in [Start, End).
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Start && t < iv.End
}

func (iv Interval) String() string {
	return "[" + strconv.FormatFloat(iv.Start, 'g', -1, 64) + ", " +
		strconv.FormatFloat(iv.End, 'g', -1, 64) + ")"
}
