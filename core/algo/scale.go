// Package algo has the numeric helpers shared by views: time scales for the
// line chart brush, the clock face layout, the heatmap grid and signal filtering.
package algo

import (
	"math"
	"time"

	"github.com/huangsam/motionlens/schema"
)

// TimeScale maps a time domain linearly onto the pixel range [0, Width].
type TimeScale struct {
	Domain schema.TimeWindow
	Width  float64
}

// NewTimeScale creates a scale over domain with the given pixel width.
func NewTimeScale(domain schema.TimeWindow, width float64) TimeScale {
	return TimeScale{Domain: domain, Width: width}
}

// Degenerate reports whether the scale cannot be inverted meaningfully.
func (s TimeScale) Degenerate() bool {
	return s.Width <= 0 || !s.Domain.End.After(s.Domain.Start)
}

// Scale returns the pixel position of t.
func (s TimeScale) Scale(t time.Time) float64 {
	if s.Degenerate() {
		return 0
	}
	frac := float64(t.Sub(s.Domain.Start)) / float64(s.Domain.Duration())
	return frac * s.Width
}

// Invert returns the time at pixel x. x is clamped to the pixel range and the
// result is clamped to the domain.
func (s TimeScale) Invert(x float64) time.Time {
	if s.Degenerate() {
		return s.Domain.Start
	}
	x = clamp(x, 0, s.Width)
	offset := time.Duration(math.Round(float64(s.Domain.Duration()) * (x / s.Width)))
	t := s.Domain.Start.Add(offset)
	if t.After(s.Domain.End) {
		return s.Domain.End
	}
	return t
}

// InvertExtent converts a brushed pixel extent into a time window. It returns
// false for a collapsed extent or a degenerate scale.
func (s TimeScale) InvertExtent(x0, x1 float64) (schema.TimeWindow, bool) {
	if s.Degenerate() || math.IsNaN(x0) || math.IsNaN(x1) {
		return schema.TimeWindow{}, false
	}
	x0, x1 = clamp(x0, 0, s.Width), clamp(x1, 0, s.Width)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x0 == x1 {
		return schema.TimeWindow{}, false
	}
	w := schema.TimeWindow{Start: s.Invert(x0), End: s.Invert(x1)}
	if !w.End.After(w.Start) {
		return schema.TimeWindow{}, false
	}
	return w, true
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
