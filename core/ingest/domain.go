package ingest

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/huangsam/motionlens/schema"
)

// ExtractDomain derives the selectable filter values of a dataset. Activities
// and participants keep first-seen order.
func ExtractDomain(data schema.Dataset) schema.Domain {
	domain := schema.Domain{
		Activities:   []string{},
		Participants: []int{},
		Records:      len(data),
	}
	seenActivity := make(map[string]struct{})
	seenParticipant := make(map[int]struct{})
	for _, r := range data {
		if _, ok := seenActivity[r.Activity]; !ok {
			seenActivity[r.Activity] = struct{}{}
			domain.Activities = append(domain.Activities, r.Activity)
		}
		if _, ok := seenParticipant[r.ParticipantID]; !ok {
			seenParticipant[r.ParticipantID] = struct{}{}
			domain.Participants = append(domain.Participants, r.ParticipantID)
		}
	}

	if extent, ok := data.Extent(); ok {
		domain.Extent = extent
		domain.IntensityMin, domain.IntensityMax = stats.Bounds(data.Intensities())
	}
	return domain
}
