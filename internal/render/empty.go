package render

import (
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/huangsam/motionlens/schema"
)

// emptyMessages describes the empty state of each view.
var emptyMessages = map[schema.ViewKind]string{
	schema.HeatmapView: "No readings match the current filters",
	schema.LineView:    "No readings in the selected window",
	schema.ClockView:   "No readings in the selected hours",
	schema.ChordView:   "No activity totals to show",
}

// writeEmpty draws a labelled blank canvas.
func writeEmpty(w io.Writer, frame schema.ViewFrame, size Size) error {
	msg, ok := emptyMessages[frame.View]
	if !ok {
		msg = "Nothing to show"
	}
	canvas := svg.New(w)
	canvas.Start(size.Width, size.Height)
	canvas.Title(string(frame.View))
	canvas.Rect(0, 0, size.Width, size.Height, "fill:white;stroke:#ddd")
	canvas.Text(size.Width/2, size.Height/2, msg, "font-size:14px;font-family:sans-serif;text-anchor:middle;fill:#888")
	canvas.End()
	return nil
}
