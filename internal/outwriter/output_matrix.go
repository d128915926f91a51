package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/parquet"
	"github.com/huangsam/motionlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintMatrix outputs the activity interaction matrix behind the chord view.
// CSV and Parquet carry the matrix in long form, one row per cell.
func PrintMatrix(m schema.InteractionMatrix, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		table: func(w io.Writer) error { return writeMatrixTable(w, m, cfg, fmtFloat) },
		csv:   func(w *csv.Writer) error { return writeMatrixCSV(w, m, fmtFloat) },
		json:  func(w io.Writer) error { return writeJSON(w, m) },
		parquet: func(path string) error {
			return parquet.WriteRows(parquet.ConvertMatrix(m), path)
		},
	})
}

// writeMatrixTable prints the square matrix with activities on both axes.
func writeMatrixTable(w io.Writer, m schema.InteractionMatrix, cfg *contract.Config, fmtFloat func(float64) string) error {
	labelWidth := GetMaxLabelWidth(cfg)
	header := []string{"Activity"}
	for _, a := range m.Activities {
		header = append(header, truncate(a, labelWidth))
	}

	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, len(m.Activities))
	for i, a := range m.Activities {
		row := []string{truncate(a, labelWidth)}
		for _, v := range m.Cells[i] {
			row = append(row, fmtFloat(v))
		}
		data[i] = row
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total intensity %s across %d activities\n", fmtFloat(m.Total()), len(m.Activities))
	return err
}

func writeMatrixCSV(w *csv.Writer, m schema.InteractionMatrix, fmtFloat func(float64) string) error {
	cells := parquet.ConvertMatrix(m)
	data := make([][]string, len(cells))
	for i, c := range cells {
		data[i] = []string{c.Source, c.Target, fmtFloat(c.Value)}
	}
	return writeCSVRows(w, []string{"source", "target", "value"}, data)
}
