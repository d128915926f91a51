package core

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/motionlens/core/ingest"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeRecorder counts session telemetry.
type fakeRecorder struct {
	mu          sync.Mutex
	events      map[string]int
	renders     map[schema.ViewKind]int
	renderErrs  int
	projections int
	records     int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{events: map[string]int{}, renders: map[schema.ViewKind]int{}}
}

func (r *fakeRecorder) ObserveEvent(kind schema.EventKind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[string(kind)+":"+outcome]++
}

func (r *fakeRecorder) ObserveRender(view schema.ViewKind, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders[view]++
	if err != nil {
		r.renderErrs++
	}
}

func (r *fakeRecorder) ObserveProjection(schema.ViewKind, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projections++
}

func (r *fakeRecorder) SetRecords(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = n
}

// renderedViews lists the views a mock renderer drew, in call order.
func renderedViews(m *contract.MockRenderer) []schema.ViewKind {
	var views []schema.ViewKind
	for _, call := range m.Calls {
		views = append(views, call.Arguments.Get(0).(schema.ViewFrame).View)
	}
	return views
}

func acceptAll() *contract.MockRenderer {
	m := &contract.MockRenderer{}
	m.On("Render", mock.Anything).Return(nil)
	return m
}

func TestSessionLoad(t *testing.T) {
	renderer := acceptAll()
	recorder := newFakeRecorder()
	session := loadSession(t, testConfig(), threeRecords, renderer, recorder)

	assert.Equal(t, schema.ReadyStatus, session.Status())
	assert.NotEmpty(t, session.ID())
	assert.Equal(t, schema.AllViews, renderedViews(renderer))
	assert.Equal(t, 3, recorder.records)
	assert.Equal(t, 4, recorder.projections)

	state, err := session.State()
	require.NoError(t, err)
	assert.Equal(t, schema.AllActivities, state.Activity)
	assert.Equal(t, 1, *state.ParticipantID)
	assert.Equal(t, schema.FullDay(), state.HourRange)
	assert.Equal(t, schema.Clock24h, state.ClockMode)
	assert.Nil(t, state.TimeWindow)

	domain, err := session.Domain()
	require.NoError(t, err)
	assert.Equal(t, []string{"walk", "run"}, domain.Activities)

	axis, ok := session.Axis()
	require.True(t, ok)
	assert.True(t, axis.Start.Equal(t0))
	assert.True(t, axis.End.Equal(t0.Add(2*time.Minute)))

	err = session.Load(context.Background(), &ingest.BytesSource{Label: "again", Data: []byte(threeRecords)}, nil)
	assert.ErrorContains(t, err, "already ready")
}

func TestSessionInitialParticipant(t *testing.T) {
	tests := []struct {
		selector string
		want     *int
	}{
		{"", schema.IntPtr(1)},
		{contract.ParticipantFirst, schema.IntPtr(1)},
		{contract.ParticipantNone, nil},
		{"2", schema.IntPtr(2)},
	}
	for _, tt := range tests {
		t.Run("selector "+tt.selector, func(t *testing.T) {
			cfg := testConfig()
			cfg.Participant = tt.selector
			state, err := loadSession(t, cfg, twoParticipants, nil, nil).State()
			require.NoError(t, err)
			assert.Equal(t, tt.want, state.ParticipantID)
		})
	}

	for _, selector := range []string{"7", "abc"} {
		t.Run("rejects "+selector, func(t *testing.T) {
			cfg := testConfig()
			cfg.Participant = selector
			session := NewSession(cfg, nil, nil)
			err := session.Load(context.Background(), &ingest.BytesSource{Label: "p.csv", Data: []byte(twoParticipants)}, nil)
			var invalid *schema.InvalidFilterValue
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, schema.ParticipantField, invalid.Field)
			assert.Equal(t, schema.FailedStatus, session.Status())
		})
	}
}

func TestSessionLoadFailure(t *testing.T) {
	recorder := newFakeRecorder()
	session := NewSession(testConfig(), nil, recorder)
	bad := "motion_intensity,Timestamp,Participant_ID,Activity_Type\nabc,1714982400,1,walk\n"
	err := session.Load(context.Background(), &ingest.BytesSource{Label: "bad.csv", Data: []byte(bad)}, nil)

	var loadErr *schema.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	var parseErr *schema.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, schema.FailedStatus, session.Status())

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.ActivityEvent, Activity: "walk"})
	assert.NoError(t, err)
	assert.Nil(t, views)
	assert.Equal(t, schema.FilterState{}, state)
	assert.Equal(t, 1, recorder.events["activity:ignored"])

	_, err = session.State()
	assert.ErrorIs(t, err, schema.ErrSessionNotReady)
	_, err = session.Frame(schema.HeatmapView)
	assert.ErrorIs(t, err, schema.ErrSessionNotReady)

	summary := session.Summary()
	assert.Equal(t, schema.FailedStatus, summary.Status)
	assert.Equal(t, "bad.csv", summary.Source)
	assert.NotEmpty(t, summary.Error)

	err = session.Load(context.Background(), &ingest.BytesSource{Label: "good.csv", Data: []byte(threeRecords)}, nil)
	assert.ErrorContains(t, err, "already failed")
}

func TestSessionBeforeLoad(t *testing.T) {
	session := NewSession(testConfig(), nil, nil)
	assert.Equal(t, schema.LoadingStatus, session.Status())

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.BrushClearEvent})
	assert.NoError(t, err)
	assert.Nil(t, views)
	assert.Equal(t, schema.FilterState{}, state)

	_, err = session.Domain()
	assert.ErrorIs(t, err, schema.ErrSessionNotReady)
	_, ok := session.Axis()
	assert.False(t, ok)

	result := session.Dispatch(schema.Event{Kind: schema.ActivityEvent, Activity: "run"})
	assert.False(t, result.Changed)
	assert.Equal(t, []schema.ViewKind{}, result.Views)
}

func TestHandleEventActivity(t *testing.T) {
	renderer := acceptAll()
	session := loadSession(t, testConfig(), threeRecords, renderer, nil)
	renderer.Calls = nil

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.ActivityEvent, Activity: "run"})
	require.NoError(t, err)
	assert.Equal(t, "run", state.Activity)
	assert.Equal(t, 1, *state.ParticipantID)
	assert.Equal(t, schema.AllViews, views)
	assert.Equal(t, schema.AllViews, renderedViews(renderer))

	frame, err := session.Frame(schema.HeatmapView)
	require.NoError(t, err)
	require.Len(t, frame.Flat, 1)
	assert.Equal(t, "run", frame.Flat[0].Activity)
	assert.Equal(t, 1, frame.Flat[0].ParticipantID)
	assert.InDelta(t, 0.9, frame.Flat[0].Intensity, 1e-9)
}

func TestHandleEventRejected(t *testing.T) {
	recorder := newFakeRecorder()
	renderer := acceptAll()
	session := loadSession(t, testConfig(), threeRecords, renderer, recorder)
	renderer.Calls = nil

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.ActivityEvent, Activity: "swim"})
	var invalid *schema.InvalidFilterValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "swim", invalid.Value)
	assert.Equal(t, schema.AllActivities, state.Activity)
	assert.Nil(t, views)
	assert.Empty(t, renderer.Calls)
	assert.Equal(t, 1, recorder.events["activity:rejected"])

	_, _, err = session.HandleEvent(schema.Event{Kind: "zoom"})
	assert.ErrorContains(t, err, "unsupported event kind")
}

func TestHandleEventHours(t *testing.T) {
	session := loadSession(t, testConfig(), threeRecords, nil, nil)

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.HoursEvent, HourStart: schema.IntPtr(0), HourEnd: schema.IntPtr(6)})
	require.NoError(t, err)
	assert.Equal(t, schema.HourRange{Start: 0, End: 6}, state.HourRange)
	assert.Equal(t, []schema.ViewKind{schema.ClockView}, views)

	frame, err := session.Frame(schema.ClockView)
	require.NoError(t, err)
	assert.Empty(t, frame.Hourly.Buckets)
	assert.False(t, math.IsNaN(frame.Hourly.MaxMean))

	state, _, err = session.HandleEvent(schema.Event{Kind: schema.HoursEvent, HourEnd: schema.IntPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, schema.HourRange{Start: 0, End: 12}, state.HourRange)

	_, _, err = session.HandleEvent(schema.Event{Kind: schema.HoursEvent, HourStart: schema.IntPtr(20)})
	var invalid *schema.InvalidFilterValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, schema.HoursField, invalid.Field)
}

func TestHandleEventClock(t *testing.T) {
	session := loadSession(t, testConfig(), threeRecords, nil, nil)

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.ClockEvent, Is24h: schema.BoolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, schema.Clock12h, state.ClockMode)
	assert.Equal(t, []schema.ViewKind{schema.ClockView}, views)

	state, _, err = session.HandleEvent(schema.Event{Kind: schema.ClockEvent, Is24h: schema.BoolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, schema.Clock24h, state.ClockMode)
}

func TestHandleEventParticipant(t *testing.T) {
	session := loadSession(t, testConfig(), twoParticipants, nil, nil)

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.ParticipantEvent, Participant: schema.IntPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, *state.ParticipantID)
	assert.Equal(t, []schema.ViewKind{schema.HeatmapView, schema.LineView}, views)

	frame, err := session.Frame(schema.LineView)
	require.NoError(t, err)
	require.Len(t, frame.Flat, 2)
	for _, r := range frame.Flat {
		assert.Equal(t, 2, r.ParticipantID)
	}

	state, _, err = session.HandleEvent(schema.Event{Kind: schema.ParticipantEvent})
	require.NoError(t, err)
	assert.Nil(t, state.ParticipantID)
}

func TestHandleEventBrush(t *testing.T) {
	session := loadSession(t, testConfig(), threeRecords, nil, nil)

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.BrushEvent, Brush: &schema.BrushExtent{X0: 0, X1: 400}})
	require.NoError(t, err)
	require.NotNil(t, state.TimeWindow)
	assert.True(t, state.TimeWindow.Start.Equal(t0))
	assert.True(t, state.TimeWindow.End.Equal(t0.Add(time.Minute)))
	assert.Equal(t, []schema.ViewKind{schema.HeatmapView, schema.LineView}, views)

	axis, ok := session.Axis()
	require.True(t, ok)
	assert.True(t, axis.End.Equal(t0.Add(time.Minute)), "the axis follows the displayed records")

	t.Run("collapsed extent is a no-op", func(t *testing.T) {
		before := state
		after, views, err := session.HandleEvent(schema.Event{Kind: schema.BrushEvent, Brush: &schema.BrushExtent{X0: 200, X1: 200}})
		require.NoError(t, err)
		assert.Nil(t, views)
		assert.True(t, before.Equal(after))
	})

	t.Run("missing extent is a no-op", func(t *testing.T) {
		result := session.Dispatch(schema.Event{Kind: schema.BrushEvent})
		assert.False(t, result.Changed)
		assert.Empty(t, result.Error)
		assert.Equal(t, []schema.ViewKind{}, result.Views)
	})

	t.Run("clear", func(t *testing.T) {
		after, views, err := session.HandleEvent(schema.Event{Kind: schema.BrushClearEvent})
		require.NoError(t, err)
		assert.Nil(t, after.TimeWindow)
		assert.Equal(t, []schema.ViewKind{schema.HeatmapView, schema.LineView}, views)

		axis, ok := session.Axis()
		require.True(t, ok)
		assert.True(t, axis.End.Equal(t0.Add(2*time.Minute)))
	})
}

func TestHandleEventRenderError(t *testing.T) {
	recorder := newFakeRecorder()
	renderer := &contract.MockRenderer{}
	renderer.On("Render", mock.MatchedBy(func(f schema.ViewFrame) bool { return f.View == schema.ClockView })).Return(errors.New("canvas lost"))
	renderer.On("Render", mock.Anything).Return(nil)

	session := NewSession(testConfig(), renderer, recorder)
	err := session.Load(context.Background(), &ingest.BytesSource{Label: "r.csv", Data: []byte(threeRecords)}, nil)
	assert.ErrorContains(t, err, "failed to render clock")
	assert.Equal(t, schema.ReadyStatus, session.Status(), "render failures do not fail the load")

	state, views, err := session.HandleEvent(schema.Event{Kind: schema.ClockEvent, Is24h: schema.BoolPtr(false)})
	assert.ErrorContains(t, err, "canvas lost")
	assert.Equal(t, schema.Clock12h, state.ClockMode)
	assert.Equal(t, []schema.ViewKind{schema.ClockView}, views)
	assert.Equal(t, 2, recorder.renderErrs)
}

func TestDispatch(t *testing.T) {
	recorder := newFakeRecorder()
	session := loadSession(t, testConfig(), threeRecords, nil, recorder)

	result := session.Dispatch(schema.Event{Kind: schema.ActivityEvent, Activity: "walk"})
	assert.True(t, result.Changed)
	assert.Empty(t, result.Error)
	assert.Equal(t, schema.AllViews, result.Views)

	result = session.Dispatch(schema.Event{Kind: schema.ActivityEvent, Activity: "walk"})
	assert.False(t, result.Changed, "same value re-renders without changing the state")
	assert.Equal(t, schema.AllViews, result.Views)

	result = session.Dispatch(schema.Event{Kind: schema.ActivityEvent, Activity: "swim"})
	assert.False(t, result.Changed)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, "walk", result.State.Activity)

	assert.Equal(t, 2, recorder.events["activity:applied"])
	assert.Equal(t, 1, recorder.events["activity:rejected"])
}

func TestSessionSummary(t *testing.T) {
	session := loadSession(t, testConfig(), threeRecords, nil, nil)
	summary := session.Summary()
	assert.Equal(t, session.ID(), summary.ID)
	assert.Equal(t, schema.ReadyStatus, summary.Status)
	assert.Equal(t, "test.csv", summary.Source)
	assert.Equal(t, 3, summary.Records)
	assert.Empty(t, summary.Error)
	assert.Equal(t, contract.DefaultChartWidth, session.ChartWidth())
}

func TestSessionConcurrentEvents(t *testing.T) {
	session := loadSession(t, testConfig(), twoParticipants, nil, nil)
	events := []schema.Event{
		{Kind: schema.ActivityEvent, Activity: "run"},
		{Kind: schema.ParticipantEvent, Participant: schema.IntPtr(2)},
		{Kind: schema.ClockEvent, Is24h: schema.BoolPtr(false)},
		{Kind: schema.HoursEvent, HourStart: schema.IntPtr(8), HourEnd: schema.IntPtr(11)},
	}

	var wg sync.WaitGroup
	for range 10 {
		for _, ev := range events {
			wg.Add(1)
			go func(ev schema.Event) {
				defer wg.Done()
				_, _, err := session.HandleEvent(ev)
				assert.NoError(t, err)
			}(ev)
		}
	}
	wg.Wait()

	state, err := session.State()
	require.NoError(t, err)
	assert.Equal(t, "run", state.Activity)
	assert.Equal(t, 2, *state.ParticipantID)
	assert.Equal(t, schema.Clock12h, state.ClockMode)
	assert.Equal(t, schema.HourRange{Start: 8, End: 11}, state.HourRange)
}
