package core

import (
	"github.com/huangsam/motionlens/core/agg"
	"github.com/huangsam/motionlens/core/algo"
	"github.com/huangsam/motionlens/schema"
)

// viewAdapter is one linked view. It projects the filter state into a frame
// for the renderer and declares which filter fields invalidate it.
type viewAdapter interface {
	Kind() schema.ViewKind
	Fields() []schema.FilterField
	Project(state schema.FilterState) schema.ViewFrame
}

// heatmapView draws one cell per flat record.
type heatmapView struct {
	data   schema.Dataset
	domain schema.Domain
}

func (v *heatmapView) Kind() schema.ViewKind { return schema.HeatmapView }

func (v *heatmapView) Fields() []schema.FilterField {
	return []schema.FilterField{schema.ActivityField, schema.ParticipantField, schema.WindowField}
}

func (v *heatmapView) Project(state schema.FilterState) schema.ViewFrame {
	return schema.ViewFrame{
		View:   schema.HeatmapView,
		State:  state,
		Domain: v.domain,
		Flat:   agg.ProjectFlat(v.data, state),
	}
}

// lineView draws the time-ordered flat series and owns the brush. Its time
// scale always spans the extent of the last projection it produced.
type lineView struct {
	data   schema.Dataset
	domain schema.Domain
	width  float64
	scale  algo.TimeScale
}

func newLineView(data schema.Dataset, domain schema.Domain, width int) *lineView {
	return &lineView{data: data, domain: domain, width: float64(width)}
}

func (v *lineView) Kind() schema.ViewKind { return schema.LineView }

func (v *lineView) Fields() []schema.FilterField {
	return []schema.FilterField{schema.ActivityField, schema.ParticipantField, schema.WindowField}
}

func (v *lineView) Project(state schema.FilterState) schema.ViewFrame {
	flat := agg.TimeOrdered(agg.ProjectFlat(v.data, state))
	frame := schema.ViewFrame{
		View:   schema.LineView,
		State:  state,
		Domain: v.domain,
		Flat:   flat,
	}
	if extent, ok := schema.Dataset(flat).Extent(); ok {
		v.scale = algo.NewTimeScale(extent, v.width)
		frame.Axis = &extent
	} else {
		v.scale = algo.TimeScale{Width: v.width}
	}
	return frame
}

// Brush inverts a pixel extent through the current scale. It returns false
// when there is nothing to select.
func (v *lineView) Brush(extent *schema.BrushExtent) (schema.TimeWindow, bool) {
	if extent == nil {
		return schema.TimeWindow{}, false
	}
	return v.scale.InvertExtent(extent.X0, extent.X1)
}

// Axis returns the time domain of the current scale.
func (v *lineView) Axis() (schema.TimeWindow, bool) {
	if v.scale.Degenerate() {
		return schema.TimeWindow{}, false
	}
	return v.scale.Domain, true
}

// clockView draws the hourly aggregate on a radial face.
type clockView struct {
	data   schema.Dataset
	domain schema.Domain
}

func (v *clockView) Kind() schema.ViewKind { return schema.ClockView }

func (v *clockView) Fields() []schema.FilterField {
	return []schema.FilterField{schema.ActivityField, schema.HoursField, schema.ClockField}
}

func (v *clockView) Project(state schema.FilterState) schema.ViewFrame {
	return schema.ViewFrame{
		View:   schema.ClockView,
		State:  state,
		Domain: v.domain,
		Hourly: agg.ProjectHourly(v.data, state),
	}
}

// HourRange merges a slider move into the current range. Missing bounds
// keep their current value.
func (v *clockView) HourRange(ev schema.Event, current schema.HourRange) schema.HourRange {
	next := current
	if ev.HourStart != nil {
		next.Start = *ev.HourStart
	}
	if ev.HourEnd != nil {
		next.End = *ev.HourEnd
	}
	return next
}

// chordView draws the activity interaction matrix.
type chordView struct {
	data   schema.Dataset
	domain schema.Domain
}

func (v *chordView) Kind() schema.ViewKind { return schema.ChordView }

func (v *chordView) Fields() []schema.FilterField {
	return []schema.FilterField{schema.ActivityField}
}

func (v *chordView) Project(state schema.FilterState) schema.ViewFrame {
	return schema.ViewFrame{
		View:   schema.ChordView,
		State:  state,
		Domain: v.domain,
		Matrix: agg.ProjectMatrix(v.data, v.domain, state),
	}
}
