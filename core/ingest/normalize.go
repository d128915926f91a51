package ingest

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/motionlens/schema"
)

// NormalizerVersion changes whenever normalized output would differ for the
// same input, so cached datasets from older versions are ignored.
const NormalizerVersion = 1

// Row-level decoding failures wrapped in a ParseError.
var (
	ErrMissingValue      = errors.New("missing value")
	ErrNotFinite         = errors.New("value is not finite")
	ErrNegativeIntensity = errors.New("negative intensity")
	ErrReservedActivity  = errors.New("activity label is reserved")
	ErrNotInteger        = errors.New("value is not an integer")
)

// NormalizeOptions controls how raw rows become records.
type NormalizeOptions struct {
	Location *time.Location // hour-of-day is derived in this location; nil means time.Local
	Policy   schema.NegativePolicy
}

// Normalize converts raw rows into a dataset in input order. It stops at the
// first bad row so no partial dataset is returned.
func Normalize(rows []schema.RawRecord, opts NormalizeOptions) (schema.Dataset, error) {
	data := make(schema.Dataset, 0, len(rows))
	for i, row := range rows {
		rec, err := NormalizeRow(i, row, opts)
		if err != nil {
			return nil, err
		}
		data = append(data, rec)
	}
	return data, nil
}

// NormalizeRow converts the raw row at dataset position index.
func NormalizeRow(index int, row schema.RawRecord, opts NormalizeOptions) (schema.Record, error) {
	rowNum := index + 1
	fail := func(field, value string, err error) (schema.Record, error) {
		return schema.Record{}, &schema.ParseError{Row: rowNum, Field: field, Value: value, Err: err}
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	raw, err := requireValue(row, schema.IntensityColumn)
	if err != nil {
		return fail(schema.IntensityColumn, raw, err)
	}
	intensity, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fail(schema.IntensityColumn, raw, err)
	}
	if math.IsNaN(intensity) || math.IsInf(intensity, 0) {
		return fail(schema.IntensityColumn, raw, ErrNotFinite)
	}
	if intensity < 0 {
		switch opts.Policy {
		case schema.ClampNegative:
			intensity = 0
		case schema.PassNegative:
		default:
			return fail(schema.IntensityColumn, raw, ErrNegativeIntensity)
		}
	}

	raw, err = requireValue(row, schema.TimestampColumn)
	if err != nil {
		return fail(schema.TimestampColumn, raw, err)
	}
	ts, err := parseEpochSeconds(raw)
	if err != nil {
		return fail(schema.TimestampColumn, raw, err)
	}
	ts = ts.In(loc)

	raw, err = requireValue(row, schema.ParticipantColumn)
	if err != nil {
		return fail(schema.ParticipantColumn, raw, err)
	}
	participant, err := parseParticipant(raw)
	if err != nil {
		return fail(schema.ParticipantColumn, raw, err)
	}

	activity, err := requireValue(row, schema.ActivityColumn)
	if err != nil {
		return fail(schema.ActivityColumn, activity, err)
	}
	if strings.EqualFold(activity, schema.AllActivities) {
		return fail(schema.ActivityColumn, activity, ErrReservedActivity)
	}

	return schema.Record{
		Index:         index,
		Timestamp:     ts,
		Hour:          ts.Hour(),
		ParticipantID: participant,
		Activity:      activity,
		Intensity:     intensity,
	}, nil
}

// requireValue returns the trimmed value of col or ErrMissingValue.
func requireValue(row schema.RawRecord, col string) (string, error) {
	v, ok := row[col]
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return v, ErrMissingValue
	}
	return v, nil
}

// parseEpochSeconds decodes Unix seconds, allowing a fractional part.
func parseEpochSeconds(s string) (time.Time, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, ErrNotFinite
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))), nil
}

// parseParticipant accepts integers, including integral floats such as "3.0".
func parseParticipant(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrNotInteger
	}
	return int(f), nil
}
