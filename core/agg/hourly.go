package agg

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/huangsam/motionlens/schema"
)

// hourKey identifies one radial bucket.
type hourKey struct {
	hour     int
	activity string
}

// ProjectHourly filters by hour range and then activity, groups the remaining
// records by (hour, activity) in first-seen order and computes the mean
// intensity per group. Means are normalized by the largest mean so the top
// group maps to 1.0. A non-positive largest mean yields all-zero values.
func ProjectHourly(data schema.Dataset, state schema.FilterState) schema.HourlyProjection {
	var order []hourKey
	groups := make(map[hourKey][]float64)

	for _, r := range data {
		if !state.HourRange.Contains(r.Hour) {
			continue
		}
		if !matchesActivity(r, state.Activity) {
			continue
		}
		key := hourKey{hour: r.Hour, activity: r.Activity}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r.Intensity)
	}

	if len(order) == 0 {
		return schema.HourlyProjection{Buckets: []schema.HourBucket{}}
	}

	buckets := make([]schema.HourBucket, 0, len(order))
	maxMean := 0.0
	for i, key := range order {
		values := groups[key]
		mean := stats.Mean(values)
		if i == 0 || mean > maxMean {
			maxMean = mean
		}
		buckets = append(buckets, schema.HourBucket{
			Hour:     key.hour,
			Activity: key.activity,
			Count:    len(values),
			Mean:     mean,
		})
	}

	for i := range buckets {
		buckets[i].Normalized = normalize(buckets[i].Mean, maxMean)
	}

	return schema.HourlyProjection{Buckets: buckets, MaxMean: maxMean}
}

// normalize maps v into [0,1] against top.
func normalize(v, top float64) float64 {
	if top <= 0 {
		return 0
	}
	n := v / top
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}
