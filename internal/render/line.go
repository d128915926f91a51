package render

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/motionlens/schema"
	chart "github.com/wcharczuk/go-chart/v2"
)

// writeLine draws the time-ordered flat series with the y axis starting at 0.
func writeLine(w io.Writer, frame schema.ViewFrame, size Size) error {
	xs := make([]time.Time, 0, len(frame.Flat)+1)
	ys := make([]float64, 0, len(frame.Flat)+1)
	for _, r := range frame.Flat {
		xs = append(xs, r.Timestamp)
		ys = append(ys, r.Intensity)
	}
	// A single instant has no x range; pad it so the axis can be drawn.
	if !xs[len(xs)-1].After(xs[0]) {
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[len(ys)-1])
	}

	top := frame.Domain.IntensityMax
	if top <= 0 {
		top = 1
	}
	color := palette[0]
	if frame.State.Activity != schema.AllActivities {
		color = activityColor(frame.Domain, frame.State.Activity)
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("Motion intensity over time: %s, participant %s", frame.State.Activity, frame.State.ParticipantLabel()),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat("15:04")},
		YAxis:      chart.YAxis{Name: "intensity", Range: &chart.ContinuousRange{Min: 0, Max: top}},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "intensity",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: color, StrokeWidth: 1.5},
			},
		},
	}
	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render line chart: %w", err)
	}
	return nil
}
