package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/huangsam/motionlens/schema"
)

// Listener is called with a snapshot of the new state after a mutation.
type Listener func(state schema.FilterState)

type subscription struct {
	view   schema.ViewKind
	fields map[schema.FilterField]struct{}
	fn     Listener
}

// FilterStore owns the filter state of one session. Mutators validate their
// input against the domain and leave the state untouched on failure. On
// success the field is replaced and every subscriber of that field is
// notified in registration order.
//
// A FilterStore has a single writer; callers serialize access.
type FilterStore struct {
	domain schema.Domain
	state  schema.FilterState
	subs   []subscription
}

// NewFilterStore validates initial against domain and returns a store holding it.
func NewFilterStore(domain schema.Domain, initial schema.FilterState) (*FilterStore, error) {
	fs := &FilterStore{domain: domain}
	if err := fs.validateActivity(initial.Activity); err != nil {
		return nil, err
	}
	if err := fs.validateParticipant(initial.ParticipantID); err != nil {
		return nil, err
	}
	if err := validateHours(initial.HourRange); err != nil {
		return nil, err
	}
	if err := fs.validateWindow(initial.TimeWindow); err != nil {
		return nil, err
	}
	if err := validateClock(initial.ClockMode); err != nil {
		return nil, err
	}
	fs.state = initial.Clone()
	return fs, nil
}

// Get returns a deep copy of the current state.
func (fs *FilterStore) Get() schema.FilterState {
	return fs.state.Clone()
}

// Domain returns the domain the store validates against.
func (fs *FilterStore) Domain() schema.Domain {
	return fs.domain
}

// Subscribe registers fn for changes to any of fields on behalf of view.
func (fs *FilterStore) Subscribe(view schema.ViewKind, fields []schema.FilterField, fn Listener) {
	set := make(map[schema.FilterField]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	fs.subs = append(fs.subs, subscription{view: view, fields: set, fn: fn})
}

// subscribers returns the views subscribed to field, in registration order.
func (fs *FilterStore) subscribers(field schema.FilterField) []schema.ViewKind {
	var views []schema.ViewKind
	for _, s := range fs.subs {
		if _, ok := s.fields[field]; ok {
			views = append(views, s.view)
		}
	}
	return views
}

// SetActivity selects one domain activity or "all".
func (fs *FilterStore) SetActivity(activity string) error {
	if err := fs.validateActivity(activity); err != nil {
		return err
	}
	fs.state.Activity = activity
	fs.notify(schema.ActivityField)
	return nil
}

// SetParticipant selects one domain participant, or none with a nil id.
func (fs *FilterStore) SetParticipant(id *int) error {
	if err := fs.validateParticipant(id); err != nil {
		return err
	}
	if id == nil {
		fs.state.ParticipantID = nil
	} else {
		fs.state.ParticipantID = schema.IntPtr(*id)
	}
	fs.notify(schema.ParticipantField)
	return nil
}

// SetHourRange sets the half-open hour range used by the clock view.
func (fs *FilterStore) SetHourRange(r schema.HourRange) error {
	if err := validateHours(r); err != nil {
		return err
	}
	fs.state.HourRange = r
	fs.notify(schema.HoursField)
	return nil
}

// SetTimeWindow sets the brushed window. A nil window clears it.
func (fs *FilterStore) SetTimeWindow(w *schema.TimeWindow) error {
	if err := fs.validateWindow(w); err != nil {
		return err
	}
	if w == nil {
		fs.state.TimeWindow = nil
	} else {
		copied := *w
		fs.state.TimeWindow = &copied
	}
	fs.notify(schema.WindowField)
	return nil
}

// SetClockMode switches the clock face between 12 and 24 hours.
func (fs *FilterStore) SetClockMode(mode schema.ClockMode) error {
	if err := validateClock(mode); err != nil {
		return err
	}
	fs.state.ClockMode = mode
	fs.notify(schema.ClockField)
	return nil
}

func (fs *FilterStore) notify(field schema.FilterField) {
	for _, s := range fs.subs {
		if _, ok := s.fields[field]; ok {
			s.fn(fs.state.Clone())
		}
	}
}

func (fs *FilterStore) validateActivity(activity string) error {
	if activity == schema.AllActivities || fs.domain.HasActivity(activity) {
		return nil
	}
	return &schema.InvalidFilterValue{Field: schema.ActivityField, Value: activity, Reason: "not in the dataset"}
}

func (fs *FilterStore) validateParticipant(id *int) error {
	if id == nil || fs.domain.HasParticipant(*id) {
		return nil
	}
	return &schema.InvalidFilterValue{Field: schema.ParticipantField, Value: strconv.Itoa(*id), Reason: "not in the dataset"}
}

func (fs *FilterStore) validateWindow(w *schema.TimeWindow) error {
	if w == nil {
		return nil
	}
	value := w.Start.Format(time.RFC3339) + ".." + w.End.Format(time.RFC3339)
	if w.End.Before(w.Start) {
		return &schema.InvalidFilterValue{Field: schema.WindowField, Value: value, Reason: "end is before start"}
	}
	if fs.domain.Records == 0 || !fs.domain.Extent.Covers(*w) {
		return &schema.InvalidFilterValue{Field: schema.WindowField, Value: value, Reason: "outside the dataset extent"}
	}
	return nil
}

func validateHours(r schema.HourRange) error {
	if r.Start < 0 || r.End > schema.HoursPerDay || r.Start > r.End {
		return &schema.InvalidFilterValue{
			Field:  schema.HoursField,
			Value:  r.String(),
			Reason: fmt.Sprintf("must satisfy 0 <= lo <= hi <= %d", schema.HoursPerDay),
		}
	}
	return nil
}

func validateClock(mode schema.ClockMode) error {
	if _, ok := schema.ValidClockModes[mode]; !ok {
		return &schema.InvalidFilterValue{Field: schema.ClockField, Value: string(mode), Reason: "must be 12h or 24h"}
	}
	return nil
}
