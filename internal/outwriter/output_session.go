package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/parquet"
	"github.com/huangsam/motionlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummary outputs the lifecycle state and filters of a session.
func PrintSummary(summary schema.SessionSummary, cfg *contract.Config) error {
	return dispatch(cfg, formatWriters{
		table: func(w io.Writer) error { return writeSummaryTable(w, summary, cfg) },
		csv:   func(w *csv.Writer) error { return writeSummaryCSV(w, summary, cfg) },
		json:  func(w io.Writer) error { return writeJSON(w, summary) },
	})
}

func summaryRows(summary schema.SessionSummary, cfg *contract.Config) [][]string {
	rows := [][]string{
		{"Session", summary.ID},
		{"Status", string(summary.Status)},
		{"Source", summary.Source},
		{"Records", strconv.Itoa(summary.Records)},
	}
	if summary.Status == schema.ReadyStatus {
		rows = append(rows, stateRows(summary.State, cfg)...)
	}
	if summary.Error != "" {
		rows = append(rows, []string{"Error", summary.Error})
	}
	return rows
}

// stateRows lists every filter field with its display value.
func stateRows(state schema.FilterState, cfg *contract.Config) [][]string {
	return [][]string{
		{"Activity", state.Activity},
		{"Participant", state.ParticipantLabel()},
		{"Hours", state.HourRange.String()},
		{"Window", formatWindow(state.TimeWindow, cfg)},
		{"Clock", string(state.ClockMode)},
	}
}

func writeSummaryTable(w io.Writer, summary schema.SessionSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(summaryRows(summary, cfg)); err != nil {
		return err
	}
	return table.Render()
}

func writeSummaryCSV(w *csv.Writer, summary schema.SessionSummary, cfg *contract.Config) error {
	return writeCSVRows(w, []string{"field", "value"}, summaryRows(summary, cfg))
}

// PrintReplay outputs one row per dispatched event of a replay script.
func PrintReplay(results []schema.EventResult, cfg *contract.Config) error {
	return dispatch(cfg, formatWriters{
		table: func(w io.Writer) error { return writeReplayTable(w, results, cfg) },
		csv:   func(w *csv.Writer) error { return writeReplayCSV(w, results, cfg) },
		json:  func(w io.Writer) error { return writeJSON(w, results) },
		parquet: func(path string) error {
			return parquet.WriteRows(parquet.ConvertReplaySteps(results, stateJSON), path)
		},
	})
}

// stateJSON renders a filter state as compact JSON.
func stateJSON(state schema.FilterState) string {
	b, err := json.Marshal(state)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func replayRow(step int, r schema.EventResult, cfg *contract.Config) []string {
	views := make([]string, len(r.Views))
	for i, v := range r.Views {
		views[i] = string(v)
	}
	return []string{
		strconv.Itoa(step),
		string(r.Event.Kind),
		strconv.FormatBool(r.Changed),
		strings.Join(views, ","),
		r.State.Activity,
		r.State.ParticipantLabel(),
		r.State.HourRange.String(),
		formatWindow(r.State.TimeWindow, cfg),
		string(r.State.ClockMode),
		r.Error,
	}
}

func writeReplayTable(w io.Writer, results []schema.EventResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Step", "Event", "Changed", "Views", "Activity", "Participant", "Hours", "Window", "Clock", "Error"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	labelWidth := GetMaxLabelWidth(cfg)
	rejected := 0
	var data [][]string
	for i, r := range results {
		row := replayRow(i+1, r, cfg)
		row[4] = truncate(row[4], labelWidth)
		row[9] = truncate(row[9], labelWidth)
		data = append(data, row)
		if r.Error != "" {
			rejected++
		}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Replayed %d events (%d rejected)\n", len(results), rejected)
	return err
}

func writeReplayCSV(w *csv.Writer, results []schema.EventResult, cfg *contract.Config) error {
	data := make([][]string, len(results))
	for i, r := range results {
		data[i] = replayRow(i+1, r, cfg)
	}
	return writeCSVRows(w, []string{"step", "event", "changed", "views", "activity", "participant", "hours", "window", "clock", "error"}, data)
}

// formatWindow renders an optional time window, "-" when unset.
func formatWindow(window *schema.TimeWindow, cfg *contract.Config) string {
	if window == nil {
		return "-"
	}
	return window.Start.In(location(cfg)).Format(time.RFC3339) + contract.WindowSeparator + window.End.In(location(cfg)).Format(time.RFC3339)
}
