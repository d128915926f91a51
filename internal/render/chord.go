package render

import (
	"fmt"
	"io"

	"github.com/huangsam/motionlens/schema"
	chart "github.com/wcharczuk/go-chart/v2"
)

// writeChord draws the matrix diagonal as a ring of arcs, one per activity.
// Only self-interactions carry weight, so no ribbons connect the arcs.
func writeChord(w io.Writer, frame schema.ViewFrame, size Size) error {
	diagonal := frame.Matrix.Diagonal()
	values := make([]chart.Value, 0, len(diagonal))
	for i, total := range diagonal {
		if total <= 0 {
			continue
		}
		activity := frame.Matrix.Activities[i]
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f", activity, total),
			Value: total,
			Style: chart.Style{FillColor: activityColor(frame.Domain, activity)},
		})
	}

	side := min(size.Width, size.Height)
	donut := chart.DonutChart{
		Title:  "Activity totals: " + frame.State.Activity,
		Width:  side,
		Height: side,
		Values: values,
	}
	if err := donut.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render chord diagram: %w", err)
	}
	return nil
}
