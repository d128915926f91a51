package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/huangsam/motionlens/core/algo"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/parquet"
	"github.com/huangsam/motionlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintFlat outputs the flat projection behind the heatmap or line view.
// The table shows at most cfg.ResultLimit records; other formats carry all of them.
func PrintFlat(view schema.ViewKind, records []schema.Record, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		table: func(w io.Writer) error { return writeFlatTable(w, view, records, cfg, fmtFloat, intFmt) },
		csv:   func(w *csv.Writer) error { return writeFlatCSV(w, records, cfg, fmtFloat) },
		json:  func(w io.Writer) error { return writeFlatJSON(w, records) },
		parquet: func(path string) error {
			return parquet.WriteRows(parquet.ConvertRecords(records, ""), path)
		},
	})
}

// intensityLevels scales each intensity over the bounds of records.
func intensityLevels(records []schema.Record) []float64 {
	levels := make([]float64, len(records))
	if len(records) == 0 {
		return levels
	}
	lo, hi := stats.Bounds(schema.Dataset(records).Intensities())
	for i, r := range records {
		levels[i] = algo.Level(r.Intensity, lo, hi)
	}
	return levels
}

// writeFlatTable prints the records with an intensity label.
func writeFlatTable(w io.Writer, view schema.ViewKind, records []schema.Record, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Index", "Timestamp", "Hour", "Participant", "Activity", "Intensity", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	levels := intensityLevels(records)
	shown := min(len(records), cfg.ResultLimit)
	labelWidth := GetMaxLabelWidth(cfg)
	var data [][]string
	for i, r := range records[:shown] {
		label := contract.GetPlainLabel(levels[i])
		if cfg.UseColors {
			label = contract.GetColorLabel(levels[i])
		}
		data = append(data, []string{
			fmt.Sprintf(intFmt, r.Index),
			formatTime(r.Timestamp, cfg),
			fmt.Sprintf(intFmt, r.Hour),
			fmt.Sprintf(intFmt, r.ParticipantID),
			truncate(r.Activity, labelWidth),
			fmtFloat(r.Intensity),
			label,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d of %d records for the %s view\n", shown, len(records), view)
	return err
}

// writeFlatCSV writes every record with its label.
func writeFlatCSV(w *csv.Writer, records []schema.Record, cfg *contract.Config, fmtFloat func(float64) string) error {
	levels := intensityLevels(records)
	data := make([][]string, len(records))
	for i, r := range records {
		data[i] = []string{
			strconv.Itoa(r.Index),
			r.Timestamp.In(location(cfg)).Format(time.RFC3339),
			strconv.Itoa(r.Hour),
			strconv.Itoa(r.ParticipantID),
			r.Activity,
			fmtFloat(r.Intensity),
			contract.GetPlainLabel(levels[i]),
		}
	}
	return writeCSVRows(w, []string{"index", "timestamp", "hour", "participant_id", "activity", "intensity", "label"}, data)
}

// writeFlatJSON writes every record with its label.
func writeFlatJSON(w io.Writer, records []schema.Record) error {
	type JSONRecord struct {
		Label string `json:"label"`
		schema.Record
	}
	levels := intensityLevels(records)
	output := make([]JSONRecord, len(records))
	for i, r := range records {
		output[i] = JSONRecord{Label: contract.GetPlainLabel(levels[i]), Record: r}
	}
	return writeJSON(w, output)
}

// location returns the configured display location.
func location(cfg *contract.Config) *time.Location {
	if cfg.Location != nil {
		return cfg.Location
	}
	return time.Local
}

// formatTime renders t in the configured location.
func formatTime(t time.Time, cfg *contract.Config) string {
	return t.In(location(cfg)).Format(contract.DateTimeFormat)
}
