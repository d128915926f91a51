// Package agg has the projection logic that turns a dataset and a filter state
// into the record sequences and aggregates each view draws.
//
// Every function here is pure: the dataset and the state are only read, and
// identical inputs always produce identical outputs.
package agg

import (
	"sort"

	"github.com/huangsam/motionlens/schema"
)

// ProjectFlat returns the records matching the activity, participant and time
// window filters, in dataset order. It returns an empty slice when nothing matches.
func ProjectFlat(data schema.Dataset, state schema.FilterState) []schema.Record {
	out := make([]schema.Record, 0, len(data))
	for _, r := range data {
		if !matchesActivity(r, state.Activity) {
			continue
		}
		if state.ParticipantID != nil && r.ParticipantID != *state.ParticipantID {
			continue
		}
		if state.TimeWindow != nil && !state.TimeWindow.Contains(r.Timestamp) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TimeOrdered returns a copy of records sorted by timestamp. Records sharing a
// timestamp keep their relative order.
func TimeOrdered(records []schema.Record) []schema.Record {
	out := make([]schema.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// matchesActivity reports whether r passes the activity filter.
func matchesActivity(r schema.Record, activity string) bool {
	return activity == schema.AllActivities || activity == "" || r.Activity == activity
}
