package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/parquet"
	"github.com/huangsam/motionlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDomain outputs the selectable filter values of a dataset.
func PrintDomain(domain schema.Domain, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		table: func(w io.Writer) error { return writeDomainTable(w, domain, cfg, fmtFloat) },
		csv:   func(w *csv.Writer) error { return writeDomainCSV(w, domain) },
		json:  func(w io.Writer) error { return writeJSON(w, domain) },
		parquet: func(path string) error {
			return parquet.WriteRows(parquet.ConvertDomain(domain), path)
		},
	})
}

// writeDomainTable prints the domain as a two-column summary.
func writeDomainTable(w io.Writer, domain schema.Domain, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	participants := make([]string, len(domain.Participants))
	for i, p := range domain.Participants {
		participants[i] = strconv.Itoa(p)
	}
	data := [][]string{
		{"Records", strconv.Itoa(domain.Records)},
		{"Activities", strings.Join(domain.Activities, ", ")},
		{"Participants", strings.Join(participants, ", ")},
	}
	if domain.Records > 0 {
		data = append(data,
			[]string{"First reading", formatTime(domain.Extent.Start, cfg)},
			[]string{"Last reading", formatTime(domain.Extent.End, cfg)},
			[]string{"Intensity", fmtFloat(domain.IntensityMin) + " .. " + fmtFloat(domain.IntensityMax)},
		)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Select an activity (or %q) and a participant to filter the views\n", schema.AllActivities)
	return err
}

// writeDomainCSV writes one row per selectable value.
func writeDomainCSV(w *csv.Writer, domain schema.Domain) error {
	rows := parquet.ConvertDomain(domain)
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.Kind, r.Value, strconv.Itoa(int(r.Order))}
	}
	return writeCSVRows(w, []string{"kind", "value", "order"}, data)
}
