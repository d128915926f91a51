package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/motionlens/core/ingest"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
)

// Event outcomes reported to the Recorder.
const (
	outcomeApplied  = "applied"
	outcomeNoop     = "noop"
	outcomeRejected = "rejected"
	outcomeIgnored  = "ignored"
)

// Session is the controller of one exploration: it loads the dataset once,
// owns the filter state and keeps the four views in sync with it.
//
// Sessions start in the loading state. Events delivered before the load
// resolves are ignored, and a failed load is terminal.
type Session struct {
	mu sync.Mutex

	id       string
	cfg      *contract.Config
	renderer contract.Renderer
	recorder contract.Recorder

	status  schema.SessionStatus
	source  string
	loadErr error

	data   schema.Dataset
	domain schema.Domain
	store  *FilterStore

	views []viewAdapter
	line  *lineView
	clock *clockView
	dirty map[schema.ViewKind]bool
}

// NewSession creates a session in the loading state. A nil renderer or
// recorder disables rendering or telemetry.
func NewSession(cfg *contract.Config, renderer contract.Renderer, recorder contract.Recorder) *Session {
	return &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		renderer: renderer,
		recorder: recorder,
		status:   schema.LoadingStatus,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Status returns the lifecycle state of the session.
func (s *Session) Status() schema.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Load reads the dataset behind src, resolves the configured initial filters
// against its domain and renders every view once. It may only be called once.
func (s *Session) Load(ctx context.Context, src contract.DataSource, mgr contract.CacheManager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != schema.LoadingStatus {
		return fmt.Errorf("session %s is already %s", s.id, s.status)
	}
	s.source = src.Name()

	opts := ingest.NormalizeOptions{Location: s.cfg.Location, Policy: s.cfg.NegativePolicy}
	data, err := ingest.Load(ctx, src, opts, mgr)
	if err != nil {
		return s.fail(err)
	}
	domain := ingest.ExtractDomain(data)

	initial, err := s.initialState(domain)
	if err != nil {
		return s.fail(err)
	}
	store, err := NewFilterStore(domain, initial)
	if err != nil {
		return s.fail(err)
	}

	s.data = data
	s.domain = domain
	s.store = store
	s.wireViews()
	s.status = schema.ReadyStatus
	if s.recorder != nil {
		s.recorder.SetRecords(len(data))
	}

	for _, v := range s.views {
		s.dirty[v.Kind()] = true
	}
	_, err = s.flush()
	return err
}

func (s *Session) fail(err error) error {
	s.status = schema.FailedStatus
	s.loadErr = err
	return err
}

// initialState turns the configured filters into a state for domain.
func (s *Session) initialState(domain schema.Domain) (schema.FilterState, error) {
	state := s.cfg.InitialState()
	if state.Activity == "" {
		state.Activity = schema.AllActivities
	}
	if state.ClockMode == "" {
		state.ClockMode = schema.Clock24h
	}
	if state.HourRange == (schema.HourRange{}) {
		state.HourRange = schema.FullDay()
	}

	switch s.cfg.Participant {
	case "", contract.ParticipantFirst:
		if len(domain.Participants) > 0 {
			state.ParticipantID = schema.IntPtr(domain.Participants[0])
		}
	case contract.ParticipantNone:
		state.ParticipantID = nil
	default:
		id, err := strconv.Atoi(s.cfg.Participant)
		if err != nil {
			return state, &schema.InvalidFilterValue{Field: schema.ParticipantField, Value: s.cfg.Participant, Reason: "not an integer"}
		}
		state.ParticipantID = &id
	}
	return state, nil
}

// wireViews builds the adapters in refresh order and subscribes each one to
// the fields it reads.
func (s *Session) wireViews() {
	s.line = newLineView(s.data, s.domain, s.chartWidth())
	s.clock = &clockView{data: s.data, domain: s.domain}
	s.views = []viewAdapter{
		&heatmapView{data: s.data, domain: s.domain},
		s.line,
		s.clock,
		&chordView{data: s.data, domain: s.domain},
	}
	s.dirty = make(map[schema.ViewKind]bool, len(s.views))
	for _, v := range s.views {
		kind := v.Kind()
		s.store.Subscribe(kind, v.Fields(), func(schema.FilterState) {
			s.dirty[kind] = true
		})
	}
}

func (s *Session) chartWidth() int {
	if s.cfg.ChartWidth > 0 {
		return s.cfg.ChartWidth
	}
	return contract.DefaultChartWidth
}

// HandleEvent translates one interaction into a filter mutation, then
// re-projects and re-renders every view depending on the mutated field. It
// returns the resulting state and the refreshed views in refresh order.
//
// Before the session is ready the event is ignored. A rejected mutation
// returns the unchanged state with the error.
func (s *Session) HandleEvent(ev schema.Event) (schema.FilterState, []schema.ViewKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle(ev)
}

func (s *Session) handle(ev schema.Event) (schema.FilterState, []schema.ViewKind, error) {
	if s.status != schema.ReadyStatus {
		s.observeEvent(ev.Kind, outcomeIgnored)
		return schema.FilterState{}, nil, nil
	}

	before := s.store.Get()
	if err := s.translate(ev); err != nil {
		for k := range s.dirty {
			delete(s.dirty, k)
		}
		s.observeEvent(ev.Kind, outcomeRejected)
		return before, nil, err
	}

	views, err := s.flush()
	after := s.store.Get()
	if len(views) == 0 {
		s.observeEvent(ev.Kind, outcomeNoop)
	} else {
		s.observeEvent(ev.Kind, outcomeApplied)
	}
	return after, views, err
}

// translate routes a raw interaction to the adapter that owns it and from
// there to one filter mutator.
func (s *Session) translate(ev schema.Event) error {
	switch ev.Kind {
	case schema.ActivityEvent:
		return s.store.SetActivity(ev.Activity)
	case schema.ParticipantEvent:
		return s.store.SetParticipant(ev.Participant)
	case schema.HoursEvent:
		return s.store.SetHourRange(s.clock.HourRange(ev, s.store.Get().HourRange))
	case schema.ClockEvent:
		mode := schema.Clock12h
		if ev.Is24h != nil && *ev.Is24h {
			mode = schema.Clock24h
		}
		return s.store.SetClockMode(mode)
	case schema.BrushEvent:
		w, ok := s.line.Brush(ev.Brush)
		if !ok {
			return nil
		}
		return s.store.SetTimeWindow(&w)
	case schema.BrushClearEvent:
		return s.store.SetTimeWindow(nil)
	default:
		return fmt.Errorf("unsupported event kind %q", ev.Kind)
	}
}

// flush projects and renders every dirty view in refresh order.
func (s *Session) flush() ([]schema.ViewKind, error) {
	state := s.store.Get()
	var refreshed []schema.ViewKind
	var errs []error
	for _, v := range s.views {
		kind := v.Kind()
		if !s.dirty[kind] {
			continue
		}
		delete(s.dirty, kind)
		refreshed = append(refreshed, kind)

		start := time.Now()
		frame := v.Project(state)
		if s.recorder != nil {
			s.recorder.ObserveProjection(kind, time.Since(start))
		}
		if s.renderer == nil {
			continue
		}
		err := s.renderer.Render(frame)
		if s.recorder != nil {
			s.recorder.ObserveRender(kind, err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to render %s: %w", kind, err))
		}
	}
	return refreshed, errors.Join(errs...)
}

func (s *Session) observeEvent(kind schema.EventKind, outcome string) {
	if s.recorder != nil {
		s.recorder.ObserveEvent(kind, outcome)
	}
}

// Dispatch handles ev and reports the outcome as a result record.
func (s *Session) Dispatch(ev schema.Event) schema.EventResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var before schema.FilterState
	if s.store != nil {
		before = s.store.Get()
	}
	state, views, err := s.handle(ev)
	result := schema.EventResult{
		Event:   ev,
		State:   state,
		Views:   views,
		Changed: s.store != nil && !before.Equal(state),
	}
	if views == nil {
		result.Views = []schema.ViewKind{}
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// State returns a snapshot of the filter state.
func (s *Session) State() (schema.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != schema.ReadyStatus {
		return schema.FilterState{}, schema.ErrSessionNotReady
	}
	return s.store.Get(), nil
}

// Domain returns the domain of the loaded dataset.
func (s *Session) Domain() (schema.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != schema.ReadyStatus {
		return schema.Domain{}, schema.ErrSessionNotReady
	}
	return s.domain, nil
}

// Frame projects the current state for one view without rendering it.
func (s *Session) Frame(view schema.ViewKind) (schema.ViewFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != schema.ReadyStatus {
		return schema.ViewFrame{}, schema.ErrSessionNotReady
	}
	for _, v := range s.views {
		if v.Kind() == view {
			return v.Project(s.store.Get()), nil
		}
	}
	return schema.ViewFrame{}, fmt.Errorf("unknown view %q", view)
}

// Axis returns the time domain the line view currently maps onto its width.
func (s *Session) Axis() (schema.TimeWindow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.line == nil {
		return schema.TimeWindow{}, false
	}
	return s.line.Axis()
}

// ChartWidth returns the pixel width brush extents are measured against.
func (s *Session) ChartWidth() int {
	return s.chartWidth()
}

// Summary describes the session for status output.
func (s *Session) Summary() schema.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := schema.SessionSummary{
		ID:      s.id,
		Status:  s.status,
		Source:  s.source,
		Records: len(s.data),
	}
	if s.store != nil {
		summary.State = s.store.Get()
	}
	if s.loadErr != nil {
		summary.Error = s.loadErr.Error()
	}
	return summary
}
