package timeseries

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimeColumn string   // Column name for timestamps (default: "times")
	Columns    []string // Value columns to load (default: every non-time column)
	HasHeader  bool     // Whether CSV has header row (default: true)
	Delimiter  rune     // Field delimiter (default: ',')
	SkipRows   int      // Number of rows to skip at start
	// KeepMissing loads missing values ("", "NA", "NaN", "null") as NaN
	// instead of skipping their row. Rows without a timestamp are always
	// skipped.
	KeepMissing bool
}

// Interval header columns written by WriteCSV for interval-labelled series.
const (
	startColumn = "start"
	endColumn   = "end"
)

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn: "times",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*TimeSeries, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	ts, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return ts, nil
}

// LoadCSVFromReader loads a time series from an io.Reader.
//
// Rows whose timestamp or any selected value is empty, "NA", "NaN" or
// "null" are skipped unless KeepMissing is set. A header with "start" and
// "end" columns but no time column is read as interval labels, the layout
// WriteCSV produces for binned series. Without a header the first column
// holds the timestamps and every other column is a value column; the
// result is then unlabelled.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*TimeSeries, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, errors.Wrap(err, "skip rows")
		}
	}

	lay := layout{endIdx: -1}
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, errors.Wrap(err, "read header")
		}
		if lay, err = resolveColumns(header, opts); err != nil {
			return nil, err
		}
	}

	var times []float64
	var intervals []Interval
	var rows [][]float64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		// Without a header the layout is fixed by the first record.
		if lay.valueIdx == nil {
			for i := range record {
				if i != lay.timeIdx {
					lay.valueIdx = append(lay.valueIdx, i)
				}
			}
		}

		t, ok := parseField(record, lay.timeIdx)
		if !ok {
			continue
		}
		var end float64
		if lay.endIdx >= 0 {
			if end, ok = parseField(record, lay.endIdx); !ok {
				continue
			}
		}

		row := make([]float64, len(lay.valueIdx))
		valid := true
		for j, idx := range lay.valueIdx {
			v, ok := parseField(record, idx)
			if !ok {
				if !opts.KeepMissing || !isMissing(record, idx) {
					valid = false
					break
				}
				v = math.NaN()
			}
			row[j] = v
		}
		if !valid {
			continue
		}

		times = append(times, t)
		rows = append(rows, row)
		if lay.endIdx >= 0 {
			intervals = append(intervals, Interval{Start: t, End: end})
		}
	}

	if len(rows) == 0 {
		return nil, errors.Wrap(ErrEmpty, "no valid data found in CSV")
	}
	ts, err := NewFromRows(times, rows, lay.columns)
	if err != nil {
		return nil, err
	}
	if intervals != nil {
		ts.Intervals = intervals
		if err := ts.Validate(); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

// layout locates the time, interval end and value fields of a record.
type layout struct {
	timeIdx  int
	endIdx   int // -1 without interval labels
	valueIdx []int
	columns  []string
}

func resolveColumns(header []string, opts *CSVOptions) (layout, error) {
	timeColumn := opts.TimeColumn
	if timeColumn == "" {
		timeColumn = "times"
	}

	index := make(map[string]int, len(header))
	for i := range header {
		index[field(header, i)] = i
	}

	lay := layout{endIdx: -1}
	var ok bool
	if lay.timeIdx, ok = index[timeColumn]; !ok {
		start, hasStart := index[startColumn]
		end, hasEnd := index[endColumn]
		if !hasStart || !hasEnd {
			return layout{}, errors.Errorf("timeseries: time column %q not found", timeColumn)
		}
		lay.timeIdx, lay.endIdx = start, end
	}

	if len(opts.Columns) > 0 {
		for _, name := range opts.Columns {
			idx, ok := index[name]
			if !ok {
				return layout{}, errors.Errorf("timeseries: column %q not found", name)
			}
			lay.valueIdx = append(lay.valueIdx, idx)
			lay.columns = append(lay.columns, name)
		}
	} else {
		for i := range header {
			if i == lay.timeIdx || i == lay.endIdx {
				continue
			}
			lay.valueIdx = append(lay.valueIdx, i)
			lay.columns = append(lay.columns, field(header, i))
		}
	}
	if len(lay.valueIdx) == 0 {
		return layout{}, errors.Wrap(ErrEmpty, "no value columns")
	}
	return lay, nil
}

func parseField(record []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(record) || isMissing(record, idx) {
		return 0, false
	}
	v, err := strconv.ParseFloat(field(record, idx), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isMissing reports whether record[idx] is absent or a missing-value token.
func isMissing(record []string, idx int) bool {
	if idx < 0 || idx >= len(record) {
		return true
	}
	switch field(record, idx) {
	case "", "NA", "NaN", "null":
		return true
	}
	return false
}

func field(record []string, idx int) string {
	return strings.TrimSpace(strings.Trim(record[idx], "\""))
}

// SaveCSV saves a time series to a CSV file.
func SaveCSV(ts *TimeSeries, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := WriteCSV(file, ts); err != nil {
		file.Close()
		return errors.Wrapf(err, "save %s", filename)
	}
	return errors.Wrapf(file.Close(), "save %s", filename)
}

// WriteCSV writes a time series as CSV. The first column is "times", or
// "start" and "end" when the series carries interval labels. NaN values are
// written as "NaN"; load with KeepMissing to read them back.
func WriteCSV(w io.Writer, ts *TimeSeries) error {
	writer := csv.NewWriter(w)

	c := ts.NumColumns()
	header := []string{"times"}
	if ts.Intervals != nil {
		header = []string{startColumn, endColumn}
	}
	for j := 0; j < c; j++ {
		header = append(header, ts.ColumnName(j))
	}
	if err := writer.Write(header); err != nil {
		return errors.WithStack(err)
	}

	for i, t := range ts.Times {
		record := make([]string, 0, len(header))
		if ts.Intervals != nil {
			record = append(record, formatFloat(ts.Intervals[i].Start), formatFloat(ts.Intervals[i].End))
		} else {
			record = append(record, formatFloat(t))
		}
		for j := 0; j < c; j++ {
			record = append(record, formatFloat(ts.Values.At(i, j)))
		}
		if err := writer.Write(record); err != nil {
			return errors.WithStack(err)
		}
	}

	writer.Flush()
	return errors.WithStack(writer.Error())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
