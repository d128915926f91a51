package schema

import (
	"strconv"
	"time"
)

// Contains reports whether t falls inside the closed window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Covers reports whether other lies entirely inside the window.
func (w TimeWindow) Covers(other TimeWindow) bool {
	return w.Contains(other.Start) && w.Contains(other.End)
}

// Duration returns the span of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether hour falls in [Start, End).
func (r HourRange) Contains(hour int) bool {
	return hour >= r.Start && hour < r.End
}

// String renders the range as "lo-hi".
func (r HourRange) String() string {
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// FullDay is the hour range that admits every hour.
func FullDay() HourRange {
	return HourRange{Start: 0, End: HoursPerDay}
}

// Extent returns the smallest window holding every record timestamp.
// The second value is false for an empty dataset.
func (d Dataset) Extent() (TimeWindow, bool) {
	if len(d) == 0 {
		return TimeWindow{}, false
	}
	w := TimeWindow{Start: d[0].Timestamp, End: d[0].Timestamp}
	for _, r := range d[1:] {
		if r.Timestamp.Before(w.Start) {
			w.Start = r.Timestamp
		}
		if r.Timestamp.After(w.End) {
			w.End = r.Timestamp
		}
	}
	return w, true
}

// Intensities returns the intensity column of the dataset.
func (d Dataset) Intensities() []float64 {
	out := make([]float64, len(d))
	for i, r := range d {
		out[i] = r.Intensity
	}
	return out
}

// HasActivity reports whether the domain lists activity.
func (d Domain) HasActivity(activity string) bool {
	for _, a := range d.Activities {
		if a == activity {
			return true
		}
	}
	return false
}

// HasParticipant reports whether the domain lists id.
func (d Domain) HasParticipant(id int) bool {
	for _, p := range d.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the filter state.
func (s FilterState) Clone() FilterState {
	clone := s
	if s.ParticipantID != nil {
		id := *s.ParticipantID
		clone.ParticipantID = &id
	}
	if s.TimeWindow != nil {
		w := *s.TimeWindow
		clone.TimeWindow = &w
	}
	return clone
}

// Equal reports whether two filter states select the same records and display mode.
func (s FilterState) Equal(other FilterState) bool {
	if s.Activity != other.Activity || s.HourRange != other.HourRange || s.ClockMode != other.ClockMode {
		return false
	}
	if (s.ParticipantID == nil) != (other.ParticipantID == nil) {
		return false
	}
	if s.ParticipantID != nil && *s.ParticipantID != *other.ParticipantID {
		return false
	}
	if (s.TimeWindow == nil) != (other.TimeWindow == nil) {
		return false
	}
	if s.TimeWindow != nil {
		return s.TimeWindow.Start.Equal(other.TimeWindow.Start) && s.TimeWindow.End.Equal(other.TimeWindow.End)
	}
	return true
}

// ParticipantLabel renders the participant selection for display.
func (s FilterState) ParticipantLabel() string {
	if s.ParticipantID == nil {
		return "none"
	}
	return strconv.Itoa(*s.ParticipantID)
}

// Empty reports whether the projection has no buckets.
func (p HourlyProjection) Empty() bool {
	return len(p.Buckets) == 0
}

// Diagonal returns the per-activity totals on the matrix diagonal.
func (m InteractionMatrix) Diagonal() []float64 {
	out := make([]float64, len(m.Activities))
	for i := range m.Activities {
		out[i] = m.Cells[i][i]
	}
	return out
}

// Total returns the sum of every matrix cell.
func (m InteractionMatrix) Total() float64 {
	total := 0.0
	for _, row := range m.Cells {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Empty reports whether the frame has nothing to draw.
func (f ViewFrame) Empty() bool {
	switch f.View {
	case HeatmapView, LineView:
		return len(f.Flat) == 0
	case ClockView:
		return f.Hourly.Empty()
	case ChordView:
		return f.Matrix.Total() == 0
	}
	return true
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
