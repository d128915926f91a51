package agg

import "github.com/huangsam/motionlens/schema"

// ProjectMatrix builds the activity interaction matrix in domain order. Each
// record adds its intensity to the diagonal cell of its own activity, so the
// off-diagonal cells stay zero. Only the activity filter applies.
func ProjectMatrix(data schema.Dataset, domain schema.Domain, state schema.FilterState) schema.InteractionMatrix {
	n := len(domain.Activities)
	index := make(map[string]int, n)
	for i, a := range domain.Activities {
		index[a] = i
	}

	activities := make([]string, n)
	copy(activities, domain.Activities)
	cells := make([][]float64, n)
	for i := range cells {
		cells[i] = make([]float64, n)
	}

	for _, r := range data {
		if !matchesActivity(r, state.Activity) {
			continue
		}
		i, ok := index[r.Activity]
		if !ok {
			continue
		}
		cells[i][i] += r.Intensity
	}

	return schema.InteractionMatrix{Activities: activities, Cells: cells}
}
