// Package schema holds the shared types, constants and errors of motionlens.
package schema

import "time"

// RawRecord is one input row keyed by column name.
type RawRecord map[string]string

// Record is one normalized motion-intensity reading.
type Record struct {
	Index         int       `json:"index"` // position in the dataset, used as identity
	Timestamp     time.Time `json:"timestamp"`
	Hour          int       `json:"hour"`
	ParticipantID int       `json:"participant_id"`
	Activity      string    `json:"activity"`
	Intensity     float64   `json:"intensity"`
}

// Dataset is the ordered, read-only sequence of records for a session.
type Dataset []Record

// TimeWindow is a closed interval of time.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// HourRange is a half-open range of hours [Start, End).
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Domain holds the selectable filter values derived from a dataset.
type Domain struct {
	Activities   []string   `json:"activities"`
	Participants []int      `json:"participants"`
	Extent       TimeWindow `json:"extent"`
	IntensityMin float64    `json:"intensity_min"`
	IntensityMax float64    `json:"intensity_max"`
	Records      int        `json:"records"`
}

// FilterState is the shared selection that every view reads on render.
type FilterState struct {
	Activity      string      `json:"activity"`
	ParticipantID *int        `json:"participant_id"`
	HourRange     HourRange   `json:"hour_range"`
	TimeWindow    *TimeWindow `json:"time_window"`
	ClockMode     ClockMode   `json:"clock_mode"`
}

// HourBucket is the aggregate of one (hour, activity) group.
type HourBucket struct {
	Hour       int     `json:"hour"`
	Activity   string  `json:"activity"`
	Count      int     `json:"count"`
	Mean       float64 `json:"mean"`
	Normalized float64 `json:"normalized"`
}

// HourlyProjection is the radial clock input.
type HourlyProjection struct {
	Buckets []HourBucket `json:"buckets"`
	MaxMean float64      `json:"max_mean"`
}

// InteractionMatrix is the chord diagram input, indexed by activity.
type InteractionMatrix struct {
	Activities []string    `json:"activities"`
	Cells      [][]float64 `json:"cells"`
}

// ViewFrame is everything a renderer needs to draw one view.
type ViewFrame struct {
	View   ViewKind          `json:"view"`
	State  FilterState       `json:"state"`
	Domain Domain            `json:"-"`
	Flat   []Record          `json:"flat,omitempty"`
	Axis   *TimeWindow       `json:"axis,omitempty"` // line chart time domain
	Hourly HourlyProjection  `json:"hourly"`
	Matrix InteractionMatrix `json:"matrix"`
}

// BrushExtent is a brushed pixel range on the line chart x axis.
type BrushExtent struct {
	X0 float64 `json:"x0" yaml:"x0"`
	X1 float64 `json:"x1" yaml:"x1"`
}

// Event is a raw user interaction delivered to a session.
type Event struct {
	Kind        EventKind    `json:"kind" yaml:"kind"`
	Activity    string       `json:"activity,omitempty" yaml:"activity,omitempty"`
	Participant *int         `json:"participant,omitempty" yaml:"participant,omitempty"`
	HourStart   *int         `json:"hour_start,omitempty" yaml:"hour_start,omitempty"`
	HourEnd     *int         `json:"hour_end,omitempty" yaml:"hour_end,omitempty"`
	Is24h       *bool        `json:"is_24h,omitempty" yaml:"is_24h,omitempty"`
	Brush       *BrushExtent `json:"brush,omitempty" yaml:"brush,omitempty"`
}

// EventResult is the outcome of dispatching one event.
type EventResult struct {
	Event   Event       `json:"event"`
	State   FilterState `json:"state"`
	Views   []ViewKind  `json:"views"`
	Changed bool        `json:"changed"`
	Error   string      `json:"error,omitempty"`
}

// SessionSummary describes a session for status output.
type SessionSummary struct {
	ID      string        `json:"id"`
	Status  SessionStatus `json:"status"`
	Source  string        `json:"source"`
	Records int           `json:"records"`
	State   FilterState   `json:"state"`
	Error   string        `json:"error,omitempty"`
}
