// Package tui has the interactive terminal explorer for a loaded session.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/schema"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f77b4"))
	paneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d62728"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ca02c"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff7f0e"))
)

const help = "a/A activity  p participant  h/l start hour  H/L end hour  c clock  b/B brush half  x clear  q quit"

// Model is the bubbletea model of the explorer.
type Model struct {
	session *core.Session
	domain  schema.Domain

	activities   []string
	participants []*int

	last schema.EventResult
	err  error
}

// New creates the explorer model over a ready session.
func New(session *core.Session) (Model, error) {
	domain, err := session.Domain()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		session:      session,
		domain:       domain,
		activities:   append([]string{schema.AllActivities}, domain.Activities...),
		participants: []*int{nil},
	}
	for _, p := range domain.Participants {
		m.participants = append(m.participants, schema.IntPtr(p))
	}
	return m, nil
}

// Run starts the explorer in the alternate screen and blocks until it quits.
func Run(ctx context.Context, session *core.Session) error {
	m, err := New(session)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	ev, ok := m.eventFor(key.String())
	if !ok {
		return m, nil
	}
	m.last = m.session.Dispatch(ev)
	m.err = nil
	if m.last.Error != "" {
		m.err = fmt.Errorf("%s", m.last.Error)
	}
	return m, nil
}

// eventFor maps a key press to the interaction it stands for.
func (m Model) eventFor(key string) (schema.Event, bool) {
	state, err := m.session.State()
	if err != nil {
		return schema.Event{}, false
	}
	switch key {
	case "a", "A":
		step := 1
		if key == "A" {
			step = -1
		}
		next := cycle(indexOf(m.activities, state.Activity), step, len(m.activities))
		return schema.Event{Kind: schema.ActivityEvent, Activity: m.activities[next]}, true
	case "p":
		current := 0
		for i, p := range m.participants {
			if p != nil && state.ParticipantID != nil && *p == *state.ParticipantID {
				current = i
			}
		}
		return schema.Event{Kind: schema.ParticipantEvent, Participant: m.participants[cycle(current, 1, len(m.participants))]}, true
	case "h", "l":
		return schema.Event{Kind: schema.HoursEvent, HourStart: schema.IntPtr(state.HourRange.Start + step(key, "l"))}, true
	case "H", "L":
		return schema.Event{Kind: schema.HoursEvent, HourEnd: schema.IntPtr(state.HourRange.End + step(key, "L"))}, true
	case "c":
		return schema.Event{Kind: schema.ClockEvent, Is24h: schema.BoolPtr(state.ClockMode != schema.Clock24h)}, true
	case "b", "B":
		half := float64(m.session.ChartWidth()) / 2
		extent := &schema.BrushExtent{X0: 0, X1: half}
		if key == "B" {
			extent = &schema.BrushExtent{X0: half, X1: 2 * half}
		}
		return schema.Event{Kind: schema.BrushEvent, Brush: extent}, true
	case "x":
		return schema.Event{Kind: schema.BrushClearEvent}, true
	}
	return schema.Event{}, false
}

func step(key, up string) int {
	if key == up {
		return 1
	}
	return -1
}

func cycle(i, step, n int) int {
	return ((i+step)%n + n) % n
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return 0
}

// View implements tea.Model.
func (m Model) View() string {
	state, err := m.session.State()
	if err != nil {
		return errStyle.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("motionlens explorer"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.stateView(state)),
		paneStyle.Render(m.framesView()),
	))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(help))
	return b.String()
}

func (m Model) stateView(state schema.FilterState) string {
	window := "-"
	if state.TimeWindow != nil {
		window = state.TimeWindow.Start.Format("15:04:05") + ".." + state.TimeWindow.End.Format("15:04:05")
	}
	rows := [][2]string{
		{"activity", state.Activity},
		{"participant", state.ParticipantLabel()},
		{"hours", state.HourRange.String()},
		{"window", window},
		{"clock", string(state.ClockMode)},
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-11s", r[0])), r[1]))
	}
	return strings.Join(lines, "\n")
}

// framesView summarizes what each view currently shows.
func (m Model) framesView() string {
	var lines []string
	for _, view := range schema.AllViews {
		frame, err := m.session.Frame(view)
		if err != nil {
			lines = append(lines, errStyle.Render(err.Error()))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-8s", view)), describe(frame)))
		if view == schema.ClockView {
			lines = append(lines, hourBars(frame.Hourly)...)
		}
	}
	return strings.Join(lines, "\n")
}

func describe(frame schema.ViewFrame) string {
	if frame.Empty() {
		return "no data for the current filters"
	}
	switch frame.View {
	case schema.HeatmapView:
		return fmt.Sprintf("%d cells", len(frame.Flat))
	case schema.LineView:
		return fmt.Sprintf("%d points %s..%s", len(frame.Flat),
			frame.Axis.Start.Format("15:04:05"), frame.Axis.End.Format("15:04:05"))
	case schema.ClockView:
		return fmt.Sprintf("%d buckets, max mean %.2f", len(frame.Hourly.Buckets), frame.Hourly.MaxMean)
	case schema.ChordView:
		return fmt.Sprintf("%d activities, total %.2f", len(frame.Matrix.Activities), frame.Matrix.Total())
	}
	return ""
}

// hourBars draws one bar per bucket scaled by its normalized mean.
func hourBars(p schema.HourlyProjection) []string {
	const width = 20
	lines := make([]string, 0, len(p.Buckets))
	for _, bucket := range p.Buckets {
		n := int(bucket.Normalized*width + 0.5)
		lines = append(lines, fmt.Sprintf("  %02dh %-10s %s", bucket.Hour, bucket.Activity, barStyle.Render(strings.Repeat("█", n))))
	}
	return lines
}

func (m Model) statusLine() string {
	if m.err != nil {
		return errStyle.Render("rejected: " + m.err.Error())
	}
	if m.last.Event.Kind == "" {
		return labelStyle.Render(fmt.Sprintf("%d records loaded", m.domain.Records))
	}
	if len(m.last.Views) == 0 {
		return labelStyle.Render(fmt.Sprintf("%s: nothing to refresh", m.last.Event.Kind))
	}
	views := make([]string, len(m.last.Views))
	for i, v := range m.last.Views {
		views[i] = string(v)
	}
	return okStyle.Render(fmt.Sprintf("%s: refreshed %s", m.last.Event.Kind, strings.Join(views, ", ")))
}
