package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/motionlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `events:
  - kind: activity
    activity: walk
  - kind: brush
    brush: {x0: 0, x1: 800}
  - kind: hours
    hour_start: 6
    hour_end: 12
  - kind: clock
    is_24h: false
  - kind: participant
    participant: 9
  - kind: brush-clear
`

func TestReadScript(t *testing.T) {
	script, err := ReadScript(strings.NewReader(sampleScript))
	require.NoError(t, err)
	require.Len(t, script.Events, 6)
	assert.Equal(t, schema.ActivityEvent, script.Events[0].Kind)
	assert.Equal(t, &schema.BrushExtent{X0: 0, X1: 800}, script.Events[1].Brush)
	assert.Equal(t, 12, *script.Events[2].HourEnd)
	assert.False(t, *script.Events[3].Is24h)
	assert.Equal(t, 9, *script.Events[4].Participant)
}

func TestReadScriptErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "replay script is empty"},
		{"unknown field", "events:\n  - kind: activity\n    colour: red\n", "failed to parse replay script"},
		{"unknown kind", "events:\n  - kind: activity\n  - kind: zoom\n", `event 2: unsupported kind "zoom"`},
		{"malformed", "events: [", "failed to parse replay script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScript(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	script, err := LoadScript(path)
	require.NoError(t, err)
	assert.Len(t, script.Events, 6)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open replay script")
}

func TestReplay(t *testing.T) {
	script, err := ReadScript(strings.NewReader(sampleScript))
	require.NoError(t, err)

	session := loadSession(t, testConfig(), threeRecords, nil, nil)
	results := session.Replay(script)
	require.Len(t, results, 6)

	assert.True(t, results[0].Changed)
	assert.Equal(t, "walk", results[0].State.Activity)

	require.NotNil(t, results[1].State.TimeWindow)
	assert.True(t, results[1].State.TimeWindow.Start.Equal(t0))
	assert.True(t, results[1].State.TimeWindow.End.Equal(t0.Add(2*time.Minute)))

	assert.Equal(t, schema.HourRange{Start: 6, End: 12}, results[2].State.HourRange)
	assert.Equal(t, []schema.ViewKind{schema.ClockView}, results[3].Views)

	assert.NotEmpty(t, results[4].Error, "rejected events do not stop the replay")
	assert.False(t, results[4].Changed)

	assert.Nil(t, results[5].State.TimeWindow)
	assert.True(t, results[5].Changed)
}
