package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/parquet"
	"github.com/huangsam/motionlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHourly outputs the hourly projection behind the radial clock.
func PrintHourly(p schema.HourlyProjection, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		table: func(w io.Writer) error { return writeHourlyTable(w, p, cfg, fmtFloat, intFmt) },
		csv:   func(w *csv.Writer) error { return writeHourlyCSV(w, p, fmtFloat) },
		json:  func(w io.Writer) error { return writeJSON(w, p) },
		parquet: func(path string) error {
			return parquet.WriteRows(parquet.ConvertHourly(p), path)
		},
	})
}

func writeHourlyTable(w io.Writer, p schema.HourlyProjection, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Hour", "Activity", "Count", "Mean", "Normalized", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := GetMaxLabelWidth(cfg)
	var data [][]string
	for _, b := range p.Buckets {
		label := contract.GetPlainLabel(b.Normalized)
		if cfg.UseColors {
			label = contract.GetColorLabel(b.Normalized)
		}
		data = append(data, []string{
			fmt.Sprintf(intFmt, b.Hour),
			truncate(b.Activity, labelWidth),
			fmt.Sprintf(intFmt, b.Count),
			fmtFloat(b.Mean),
			fmtFloat(b.Normalized),
			label,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d buckets, largest mean %s\n", len(p.Buckets), fmtFloat(p.MaxMean))
	return err
}

func writeHourlyCSV(w *csv.Writer, p schema.HourlyProjection, fmtFloat func(float64) string) error {
	data := make([][]string, len(p.Buckets))
	for i, b := range p.Buckets {
		data[i] = []string{
			strconv.Itoa(b.Hour),
			b.Activity,
			strconv.Itoa(b.Count),
			fmtFloat(b.Mean),
			fmtFloat(b.Normalized),
		}
	}
	return writeCSVRows(w, []string{"hour", "activity", "count", "mean", "normalized"}, data)
}
