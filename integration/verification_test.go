//go:build integration

// Package integration contains integration tests for motionlens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/huangsam/motionlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intensityByActivity sums motion_intensity per activity straight from the CSV.
func intensityByActivity(t *testing.T, path string) map[string]float64 {
	t.Helper()
	file, err := os.Open(filepath.Join("..", path))
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	header := map[string]int{}
	for i, name := range rows[0] {
		header[name] = i
	}
	sums := map[string]float64{}
	for _, row := range rows[1:] {
		v, err := strconv.ParseFloat(row[header["motion_intensity"]], 64)
		require.NoError(t, err)
		sums[row[header["Activity_Type"]]] += v
	}
	return sums
}

// TestChordDiagonalMatchesSource checks the chord matrix against sums computed from the raw file.
func TestChordDiagonalMatchesSource(t *testing.T) {
	out, err := runMotionlens(t, "chord", smallDataset, "--output", "json", "--timezone", "UTC")
	require.NoError(t, err)

	var m schema.InteractionMatrix
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	want := intensityByActivity(t, smallDataset)
	require.Len(t, m.Activities, len(want))

	for i, a := range m.Activities {
		for j := range m.Activities {
			if i == j {
				assert.InDelta(t, want[a], m.Cells[i][j], 1e-9, "diagonal for %s", a)
			} else {
				assert.Zero(t, m.Cells[i][j])
			}
		}
	}
}

// TestDomainVerification checks first-seen activity order and participant listing.
func TestDomainVerification(t *testing.T) {
	out, err := runMotionlens(t, "domain", smallDataset, "--output", "json", "--timezone", "UTC")
	require.NoError(t, err)

	var domain schema.Domain
	require.NoError(t, json.Unmarshal([]byte(out), &domain))
	assert.Equal(t, []string{"walk", "run", "sit"}, domain.Activities)
	assert.Equal(t, []int{1, 2, 3}, domain.Participants)
	assert.Equal(t, 6, domain.Records)
}

// TestReplayVerification replays a script and checks every step.
func TestReplayVerification(t *testing.T) {
	script := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`events:
  - kind: activity
    activity: run
  - kind: activity
    activity: swim
  - kind: brush
    brush: {x0: 10, x1: 10}
  - kind: clock
    is_24h: false
`), 0o644))

	out, err := runMotionlens(t, "replay", smallDataset, "--script", script, "--output", "json", "--timezone", "UTC")
	require.NoError(t, err)

	var results []schema.EventResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 4)

	assert.True(t, results[0].Changed)
	assert.Equal(t, "run", results[0].State.Activity)

	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, "run", results[1].State.Activity)

	assert.False(t, results[2].Changed)
	assert.Nil(t, results[2].State.TimeWindow)

	assert.Equal(t, schema.Clock12h, results[3].State.ClockMode)
	assert.Equal(t, []schema.ViewKind{schema.ClockView}, results[3].Views)
}

// TestRenderWritesEveryView renders the dataset and checks one SVG per view.
func TestRenderWritesEveryView(t *testing.T) {
	dir := t.TempDir()
	_, err := runMotionlens(t, "render", smallDataset, "--svg-dir", dir, "--timezone", "UTC")
	require.NoError(t, err)
	for _, view := range schema.AllViews {
		assert.FileExists(t, filepath.Join(dir, string(view)+".svg"))
	}
}

// TestLoadFailureExitsNonZero checks that malformed input is fatal.
func TestLoadFailureExitsNonZero(t *testing.T) {
	_, err := runMotionlens(t, "line", "core/ingest/testdata/motion_bad_intensity.csv")
	assert.Error(t, err)
}
