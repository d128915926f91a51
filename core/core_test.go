package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/motionlens/core/ingest"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileConfig writes csv to a temp file and returns a config reading it.
func fileConfig(t *testing.T, csv string) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "motion.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	cfg := testConfig()
	cfg.Source = path
	return cfg
}

func quietContext() context.Context {
	return WithSuppressHeader(context.Background())
}

func TestOpenSession(t *testing.T) {
	t.Run("requires a source", func(t *testing.T) {
		_, err := OpenSession(quietContext(), testConfig(), nil, nil)
		assert.ErrorContains(t, err, "data source")
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Source = filepath.Join(t.TempDir(), "missing.csv")
		session, err := OpenSession(quietContext(), cfg, nil, nil)
		var loadErr *schema.DataLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, schema.FailedStatus, session.Status())
	})

	t.Run("loads", func(t *testing.T) {
		session, err := OpenSession(context.Background(), fileConfig(t, threeRecords), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, schema.ReadyStatus, session.Status())
	})
}

func TestExecuteDomain(t *testing.T) {
	cfg := fileConfig(t, twoParticipants)
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "domain.json")

	require.NoError(t, ExecuteDomain(quietContext(), cfg))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var domain schema.Domain
	require.NoError(t, json.Unmarshal(data, &domain))
	assert.Equal(t, []string{"walk", "run", "sit"}, domain.Activities)
	assert.Equal(t, []int{1, 2}, domain.Participants)
	assert.Equal(t, 4, domain.Records)
}

func TestExecuteView(t *testing.T) {
	tests := []struct {
		view  schema.ViewKind
		check func(t *testing.T, data []byte)
	}{
		{schema.HeatmapView, func(t *testing.T, data []byte) {
			var records []schema.Record
			require.NoError(t, json.Unmarshal(data, &records))
			assert.Len(t, records, 1)
		}},
		{schema.LineView, func(t *testing.T, data []byte) {
			var records []schema.Record
			require.NoError(t, json.Unmarshal(data, &records))
			require.Len(t, records, 1)
			assert.Equal(t, "run", records[0].Activity)
		}},
		{schema.ClockView, func(t *testing.T, data []byte) {
			var p schema.HourlyProjection
			require.NoError(t, json.Unmarshal(data, &p))
			require.Len(t, p.Buckets, 1)
			assert.Equal(t, 9, p.Buckets[0].Hour)
			assert.Equal(t, 2, p.Buckets[0].Count)
		}},
		{schema.ChordView, func(t *testing.T, data []byte) {
			var m schema.InteractionMatrix
			require.NoError(t, json.Unmarshal(data, &m))
			assert.Equal(t, []string{"walk", "run", "sit"}, m.Activities)
			assert.InDelta(t, 1.2, m.Cells[1][1], 1e-9)
			assert.Zero(t, m.Cells[0][1])
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			cfg := fileConfig(t, twoParticipants)
			cfg.Activity = "run"
			cfg.Output = schema.JSONOut
			cfg.OutputFile = filepath.Join(t.TempDir(), "view.json")

			require.NoError(t, ExecuteView(tt.view)(quietContext(), cfg))
			data, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}

	t.Run("unknown activity", func(t *testing.T) {
		cfg := fileConfig(t, twoParticipants)
		cfg.Activity = "swim"
		err := ExecuteView(schema.HeatmapView)(quietContext(), cfg)
		var invalid *schema.InvalidFilterValue
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestExecuteRender(t *testing.T) {
	t.Run("requires a directory", func(t *testing.T) {
		err := ExecuteRender(quietContext(), fileConfig(t, threeRecords))
		assert.ErrorContains(t, err, "--svg-dir")
	})

	t.Run("writes every view", func(t *testing.T) {
		cfg := fileConfig(t, threeRecords)
		cfg.SVGDir = filepath.Join(t.TempDir(), "svg")
		cfg.OutputFile = filepath.Join(t.TempDir(), "summary.txt")
		cfg.MetricsFile = filepath.Join(t.TempDir(), "metrics.prom")

		require.NoError(t, ExecuteRender(quietContext(), cfg))
		for _, view := range schema.AllViews {
			data, err := os.ReadFile(filepath.Join(cfg.SVGDir, string(view)+".svg"))
			require.NoError(t, err, view)
			assert.Contains(t, string(data), "<svg")
		}

		summary, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(summary), string(schema.ReadyStatus))

		metrics, err := os.ReadFile(cfg.MetricsFile)
		require.NoError(t, err)
		assert.Contains(t, string(metrics), "motionlens_view_renders_total")
		assert.Contains(t, string(metrics), "motionlens_dataset_records 3")
	})
}

func TestExecuteReplay(t *testing.T) {
	t.Run("requires a script", func(t *testing.T) {
		err := ExecuteReplay(quietContext(), fileConfig(t, threeRecords))
		assert.ErrorContains(t, err, "--script")
	})

	t.Run("replays", func(t *testing.T) {
		cfg := fileConfig(t, threeRecords)
		cfg.ScriptPath = filepath.Join(t.TempDir(), "script.yaml")
		require.NoError(t, os.WriteFile(cfg.ScriptPath, []byte(sampleScript), 0o644))
		cfg.Output = schema.JSONOut
		cfg.OutputFile = filepath.Join(t.TempDir(), "replay.json")

		require.NoError(t, ExecuteReplay(quietContext(), cfg))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var results []schema.EventResult
		require.NoError(t, json.Unmarshal(data, &results))
		assert.Len(t, results, 6)
	})
}

func TestExecutePreprocess(t *testing.T) {
	opts := ingest.DefaultPreprocessOptions()
	cfg := testConfig()
	cfg.Source = filepath.Join("ingest", "testdata", "accel.csv")
	cfg.OutputFile = filepath.Join(t.TempDir(), "motion.csv")
	cfg.Cutoff, cfg.SampleRate, cfg.Order = opts.Cutoff, opts.SampleRate, opts.Order

	require.NoError(t, ExecutePreprocess(quietContext(), cfg))
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	header, _, _ := strings.Cut(string(data), "\n")
	assert.Contains(t, header, schema.IntensityColumn)

	cfg.Source = ""
	assert.Error(t, ExecutePreprocess(quietContext(), cfg))
}
