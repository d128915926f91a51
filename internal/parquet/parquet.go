// Package parquet provides data structures and functions for exporting
// motionlens datasets and projections to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/motionlens/schema"
	"github.com/parquet-go/parquet-go"
)

// RecordRow is one normalized record, as produced by the flat projection or
// read back from the dataset cache.
type RecordRow struct {
	// Index is the record position in its dataset
	Index int64 `parquet:"index,snappy"`

	// Timestamp is the reading instant (stored as TIMESTAMP with nanosecond precision)
	Timestamp time.Time `parquet:"timestamp,snappy"`

	Hour          int32   `parquet:"hour,snappy"`
	ParticipantID int64   `parquet:"participant_id,snappy"`
	Activity      string  `parquet:"activity,snappy,dict"`
	Intensity     float64 `parquet:"intensity,snappy"`

	// CacheKey identifies the cached dataset the row came from (nullable)
	CacheKey *string `parquet:"cache_key,optional,snappy"`
}

// HourBucketRow is one bucket of the hourly projection.
type HourBucketRow struct {
	Hour       int32   `parquet:"hour,snappy"`
	Activity   string  `parquet:"activity,snappy,dict"`
	Count      int32   `parquet:"count,snappy"`
	Mean       float64 `parquet:"mean,snappy"`
	Normalized float64 `parquet:"normalized,snappy"`
}

// MatrixCellRow is one cell of the interaction matrix in long form.
type MatrixCellRow struct {
	Source string  `parquet:"source,snappy,dict"`
	Target string  `parquet:"target,snappy,dict"`
	Value  float64 `parquet:"value,snappy"`
}

// DomainValueRow is one selectable filter value.
type DomainValueRow struct {
	// Kind is "activity" or "participant"
	Kind  string `parquet:"kind,snappy,dict"`
	Value string `parquet:"value,snappy"`
	Order int32  `parquet:"order,snappy"`
}

// ReplayStepRow is one dispatched event and its outcome.
type ReplayStepRow struct {
	Step    int32   `parquet:"step,snappy"`
	Kind    string  `parquet:"kind,snappy,dict"`
	Changed bool    `parquet:"changed,snappy"`
	Views   string  `parquet:"views,snappy"`
	State   string  `parquet:"state,snappy"` // JSON-encoded filter state
	Error   *string `parquet:"error,optional,snappy"`
}

// WriteRows writes rows to a new Parquet file at outputPath.
func WriteRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteRowsTo(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteRowsTo writes rows as a Parquet file to w.
// The schema is derived from the struct tags of T.
func WriteRowsTo[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRecords converts records into parquet rows. An empty cacheKey
// leaves the cache_key column null.
func ConvertRecords(records []schema.Record, cacheKey string) []RecordRow {
	var key *string
	if cacheKey != "" {
		key = &cacheKey
	}
	rows := make([]RecordRow, len(records))
	for i, r := range records {
		rows[i] = RecordRow{
			Index:         int64(r.Index),
			Timestamp:     r.Timestamp.UTC(),
			Hour:          int32(r.Hour),
			ParticipantID: int64(r.ParticipantID),
			Activity:      r.Activity,
			Intensity:     r.Intensity,
			CacheKey:      key,
		}
	}
	return rows
}

// ConvertHourly converts an hourly projection into parquet rows.
func ConvertHourly(p schema.HourlyProjection) []HourBucketRow {
	rows := make([]HourBucketRow, len(p.Buckets))
	for i, b := range p.Buckets {
		rows[i] = HourBucketRow{
			Hour:       int32(b.Hour),
			Activity:   b.Activity,
			Count:      int32(b.Count),
			Mean:       b.Mean,
			Normalized: b.Normalized,
		}
	}
	return rows
}

// ConvertMatrix flattens the interaction matrix into one row per cell.
func ConvertMatrix(m schema.InteractionMatrix) []MatrixCellRow {
	rows := make([]MatrixCellRow, 0, len(m.Activities)*len(m.Activities))
	for i, src := range m.Activities {
		for j, dst := range m.Activities {
			rows = append(rows, MatrixCellRow{Source: src, Target: dst, Value: m.Cells[i][j]})
		}
	}
	return rows
}

// ConvertDomain lists activities then participants in first-seen order.
func ConvertDomain(d schema.Domain) []DomainValueRow {
	rows := make([]DomainValueRow, 0, len(d.Activities)+len(d.Participants))
	for i, a := range d.Activities {
		rows = append(rows, DomainValueRow{Kind: "activity", Value: a, Order: int32(i)})
	}
	for i, p := range d.Participants {
		rows = append(rows, DomainValueRow{Kind: "participant", Value: fmt.Sprint(p), Order: int32(i)})
	}
	return rows
}

// ConvertReplaySteps converts dispatched events into parquet rows.
// stateJSON renders each step's filter state.
func ConvertReplaySteps(results []schema.EventResult, stateJSON func(schema.FilterState) string) []ReplayStepRow {
	rows := make([]ReplayStepRow, len(results))
	for i, r := range results {
		views := make([]string, len(r.Views))
		for j, v := range r.Views {
			views[j] = string(v)
		}
		row := ReplayStepRow{
			Step:    int32(i + 1),
			Kind:    string(r.Event.Kind),
			Changed: r.Changed,
			Views:   strings.Join(views, ","),
			State:   stateJSON(r.State),
		}
		if r.Error != "" {
			msg := r.Error
			row.Error = &msg
		}
		rows[i] = row
	}
	return rows
}
