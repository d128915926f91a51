package schema

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeWindowContains(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	w := TimeWindow{Start: start, End: end}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start is inclusive", start, true},
		{"end is inclusive", end, true},
		{"middle", start.Add(30 * time.Minute), true},
		{"before", start.Add(-time.Second), false},
		{"after", end.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.at))
		})
	}

	assert.True(t, w.Covers(TimeWindow{Start: start.Add(time.Minute), End: end}))
	assert.False(t, w.Covers(TimeWindow{Start: start, End: end.Add(time.Minute)}))
	assert.Equal(t, time.Hour, w.Duration())
}

func TestHourRangeContains(t *testing.T) {
	r := HourRange{Start: 6, End: 12}
	assert.False(t, r.Contains(5))
	assert.True(t, r.Contains(6))
	assert.True(t, r.Contains(11))
	assert.False(t, r.Contains(12), "upper bound is exclusive")
	assert.Equal(t, "6-12", r.String())
	assert.True(t, FullDay().Contains(23))
}

func TestDatasetExtent(t *testing.T) {
	_, ok := Dataset{}.Extent()
	assert.False(t, ok)

	base := time.Unix(1700000000, 0).UTC()
	d := Dataset{
		{Index: 0, Timestamp: base.Add(time.Hour)},
		{Index: 1, Timestamp: base},
		{Index: 2, Timestamp: base.Add(3 * time.Hour)},
	}
	w, ok := d.Extent()
	require.True(t, ok)
	assert.True(t, w.Start.Equal(base))
	assert.True(t, w.End.Equal(base.Add(3*time.Hour)))
}

func TestFilterStateCloneIsDeep(t *testing.T) {
	w := TimeWindow{Start: time.Unix(0, 0), End: time.Unix(60, 0)}
	s := FilterState{Activity: "walk", ParticipantID: IntPtr(3), TimeWindow: &w, HourRange: FullDay(), ClockMode: Clock24h}

	clone := s.Clone()
	*clone.ParticipantID = 9
	clone.TimeWindow.End = time.Unix(120, 0)

	assert.Equal(t, 3, *s.ParticipantID)
	assert.Equal(t, time.Unix(60, 0), s.TimeWindow.End)
	assert.False(t, s.Equal(clone))
	assert.True(t, s.Equal(s.Clone()))
}

func TestFilterStateParticipantLabel(t *testing.T) {
	assert.Equal(t, "none", FilterState{}.ParticipantLabel())
	assert.Equal(t, "7", FilterState{ParticipantID: IntPtr(7)}.ParticipantLabel())
}

func TestInteractionMatrixTotals(t *testing.T) {
	m := InteractionMatrix{
		Activities: []string{"walk", "run"},
		Cells:      [][]float64{{1.5, 0}, {0, 2.5}},
	}
	assert.Equal(t, []float64{1.5, 2.5}, m.Diagonal())
	assert.InDelta(t, 4.0, m.Total(), 1e-9)
}

func TestViewFrameEmpty(t *testing.T) {
	assert.True(t, ViewFrame{View: HeatmapView}.Empty())
	assert.False(t, ViewFrame{View: LineView, Flat: []Record{{}}}.Empty())
	assert.True(t, ViewFrame{View: ClockView}.Empty())
	assert.True(t, ViewFrame{View: ChordView, Matrix: InteractionMatrix{Activities: []string{"a"}, Cells: [][]float64{{0}}}}.Empty())
}

func TestTypedErrors(t *testing.T) {
	parseErr := &ParseError{Row: 4, Field: IntensityColumn, Value: "abc", Err: strconv.ErrSyntax}
	loadErr := &DataLoadError{Source: "data.csv", Err: parseErr}

	var target *ParseError
	require.True(t, errors.As(loadErr, &target))
	assert.Equal(t, 4, target.Row)
	assert.ErrorIs(t, loadErr, strconv.ErrSyntax)
	assert.Contains(t, loadErr.Error(), "data.csv")
	assert.Contains(t, loadErr.Error(), `"abc"`)

	invalid := &InvalidFilterValue{Field: ActivityField, Value: "swim", Reason: "not in domain"}
	assert.Equal(t, `invalid activity filter value "swim": not in domain`, invalid.Error())
}
