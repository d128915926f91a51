package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/huangsam/motionlens/core/algo"
	"github.com/huangsam/motionlens/schema"
)

// Radii of the clock face as fractions of the canvas radius.
const (
	clockInner = 0.4
	clockDepth = 0.5
	clockLabel = 0.95
)

// writeClock draws one wedge per hourly bucket. A wedge spans its hour on the
// dial and grows outward with the normalized mean intensity.
func writeClock(w io.Writer, frame schema.ViewFrame, size Size) error {
	side := min(size.Width, size.Height)
	cx, cy := float64(side)/2, float64(side)/2
	radius := float64(side)/2 - 16

	canvas := svg.New(w)
	canvas.Start(side, side)
	canvas.Title(fmt.Sprintf("Hourly intensity (%s)", frame.State.ClockMode))
	canvas.Rect(0, 0, side, side, "fill:white")
	canvas.Gtransform(fmt.Sprintf("translate(%.2f,%.2f)", cx, cy))

	inner := radius * clockInner
	canvas.Circle(0, 0, int(inner), "fill:none;stroke:#ccc")
	for _, b := range frame.Hourly.Buckets {
		a0, a1 := algo.HourArc(b.Hour, frame.State.ClockMode)
		outer := inner + radius*clockDepth*b.Normalized
		color := activityColor(frame.Domain, b.Activity)
		canvas.Path(wedgePath(inner, outer, a0, a1),
			fmt.Sprintf("fill:%s;fill-opacity:0.7;stroke:white;stroke-width:0.5", color.String()))
	}
	for _, tick := range algo.ClockFace(frame.State.ClockMode) {
		x, y := polar(radius*clockLabel, tick.Angle)
		canvas.Text(int(x), int(y), tick.Label, "font-size:10px;font-family:sans-serif;text-anchor:middle;dominant-baseline:middle;fill:#555")
	}
	canvas.Gend()
	canvas.End()
	return nil
}

// polar converts an angle measured clockwise from 12 o'clock to canvas coordinates.
func polar(r, angle float64) (float64, float64) {
	return r * math.Sin(angle), -r * math.Cos(angle)
}

// wedgePath returns the SVG path of an annular sector.
func wedgePath(inner, outer, a0, a1 float64) string {
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	ox0, oy0 := polar(outer, a0)
	ox1, oy1 := polar(outer, a1)
	ix1, iy1 := polar(inner, a1)
	ix0, iy0 := polar(inner, a0)
	return fmt.Sprintf("M%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f Z",
		ox0, oy0, outer, outer, large, ox1, oy1,
		ix1, iy1, inner, inner, large, ix0, iy0)
}
