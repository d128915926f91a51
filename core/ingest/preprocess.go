package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/motionlens/core/algo"
	"github.com/huangsam/motionlens/schema"
)

// Accelerometer columns consumed by Preprocess.
var AccelColumns = []string{"Accel_X", "Accel_Y", "Accel_Z"}

// PreprocessOptions configures the low-pass filter.
type PreprocessOptions struct {
	Cutoff     float64
	SampleRate float64
	Order      int
}

// DefaultPreprocessOptions mirrors the sensor setup the datasets were recorded with.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{Cutoff: algo.DefaultCutoffHz, SampleRate: algo.DefaultSampleRate, Order: algo.DefaultOrder}
}

// PreprocessSummary reports what Preprocess did.
type PreprocessSummary struct {
	RowsRead    int `json:"rows_read"`
	RowsDropped int `json:"rows_dropped"`
	RowsWritten int `json:"rows_written"`
}

// Preprocess derives motion_intensity from raw accelerometer readings. Rows
// with any empty field are dropped, each axis is low-pass filtered and
// min-max scaled, and the output carries the input columns plus the
// filtered axes and the intensity magnitude.
func Preprocess(r io.Reader, w io.Writer, opts PreprocessOptions) (PreprocessSummary, error) {
	var summary PreprocessSummary

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return summary, fmt.Errorf("failed to read accelerometer csv: %w", err)
	}
	if len(records) == 0 {
		return summary, fmt.Errorf("empty input: no header row")
	}

	header := records[0]
	cleanHeader(header)
	if err := checkHeader(header, AccelColumns); err != nil {
		return summary, err
	}
	axisIdx := make([]int, len(AccelColumns))
	for i, col := range AccelColumns {
		for j, h := range header {
			if h == col {
				axisIdx[i] = j
			}
		}
	}

	var kept [][]string
	axes := make([][]float64, len(AccelColumns))
	for n, fields := range records[1:] {
		summary.RowsRead++
		if hasMissing(fields, len(header)) {
			summary.RowsDropped++
			continue
		}
		for i, idx := range axisIdx {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
			if err != nil {
				return summary, &schema.ParseError{Row: n + 1, Field: AccelColumns[i], Value: fields[idx], Err: err}
			}
			axes[i] = append(axes[i], v)
		}
		kept = append(kept, fields[:len(header)])
	}

	scaled := make([][]float64, len(axes))
	for i, xs := range axes {
		filtered, err := algo.LowPass(xs, opts.Cutoff, opts.SampleRate, opts.Order)
		if err != nil {
			return summary, err
		}
		scaled[i] = algo.MinMaxScale(filtered)
	}

	out := csv.NewWriter(w)
	outHeader := append([]string{}, header...)
	for _, col := range AccelColumns {
		outHeader = append(outHeader, col+"_filtered")
	}
	outHeader = append(outHeader, schema.IntensityColumn)
	if err := out.Write(outHeader); err != nil {
		return summary, err
	}

	for n, fields := range kept {
		row := append([]string{}, fields...)
		x, y, z := scaled[0][n], scaled[1][n], scaled[2][n]
		row = append(row,
			formatFloat(x),
			formatFloat(y),
			formatFloat(z),
			formatFloat(algo.Magnitude(x, y, z)),
		)
		if err := out.Write(row); err != nil {
			return summary, err
		}
		summary.RowsWritten++
	}
	out.Flush()
	return summary, out.Error()
}

// hasMissing reports whether a row is short or has an empty field.
func hasMissing(fields []string, width int) bool {
	if len(fields) < width {
		return true
	}
	for _, f := range fields[:width] {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
