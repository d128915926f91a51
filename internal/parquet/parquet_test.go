package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/motionlens/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(RecordRow))
	require.NotNil(t, s)

	for _, colName := range []string{"index", "timestamp", "hour", "participant_id", "activity", "intensity", "cache_key"} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestProjectionStructTags(t *testing.T) {
	cases := map[string]struct {
		schema  *parquet.Schema
		columns []string
	}{
		"hour bucket": {parquet.SchemaOf(new(HourBucketRow)), []string{"hour", "activity", "count", "mean", "normalized"}},
		"matrix cell": {parquet.SchemaOf(new(MatrixCellRow)), []string{"source", "target", "value"}},
		"domain":      {parquet.SchemaOf(new(DomainValueRow)), []string{"kind", "value", "order"}},
		"replay step": {parquet.SchemaOf(new(ReplayStepRow)), []string{"step", "kind", "changed", "views", "state", "error"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, colName := range tc.columns {
				_, ok := tc.schema.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func sampleRecords() []schema.Record {
	base := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	return []schema.Record{
		{Index: 0, Timestamp: base, Hour: 8, ParticipantID: 1, Activity: "walk", Intensity: 0.4},
		{Index: 1, Timestamp: base.Add(time.Minute), Hour: 8, ParticipantID: 2, Activity: "run", Intensity: 0.9},
	}
}

func TestWriteRowsRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "records.parquet")
	rows := ConvertRecords(sampleRecords(), "abc123")
	require.NoError(t, WriteRows(rows, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[RecordRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]RecordRow, 2)
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, "run", readData[1].Activity)
	assert.Equal(t, int64(2), readData[1].ParticipantID)
	require.NotNil(t, readData[0].CacheKey)
	assert.Equal(t, "abc123", *readData[0].CacheKey)
	assert.True(t, readData[0].Timestamp.Equal(sampleRecords()[0].Timestamp))
}

func TestWriteRowsToBuffer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRowsTo(&buf, ConvertHourly(schema.HourlyProjection{
		Buckets: []schema.HourBucket{{Hour: 8, Activity: "walk", Count: 2, Mean: 0.5, Normalized: 1}},
		MaxMean: 0.5,
	})))

	reader := parquet.NewGenericReader[HourBucketRow](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(1), reader.NumRows())
}

func TestWriteRowsBadPath(t *testing.T) {
	err := WriteRows([]MatrixCellRow{}, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}

func TestConverters(t *testing.T) {
	t.Run("records without cache key", func(t *testing.T) {
		rows := ConvertRecords(sampleRecords(), "")
		require.Len(t, rows, 2)
		assert.Nil(t, rows[0].CacheKey)
		assert.Equal(t, int32(8), rows[0].Hour)
	})

	t.Run("matrix in long form", func(t *testing.T) {
		rows := ConvertMatrix(schema.InteractionMatrix{
			Activities: []string{"walk", "run"},
			Cells:      [][]float64{{1.5, 0}, {0, 2}},
		})
		require.Len(t, rows, 4)
		assert.Equal(t, MatrixCellRow{Source: "walk", Target: "walk", Value: 1.5}, rows[0])
		assert.Equal(t, MatrixCellRow{Source: "run", Target: "run", Value: 2}, rows[3])
	})

	t.Run("domain", func(t *testing.T) {
		rows := ConvertDomain(schema.Domain{Activities: []string{"walk"}, Participants: []int{4, 2}})
		require.Len(t, rows, 3)
		assert.Equal(t, DomainValueRow{Kind: "participant", Value: "2", Order: 1}, rows[2])
	})

	t.Run("replay steps", func(t *testing.T) {
		results := []schema.EventResult{
			{Event: schema.Event{Kind: schema.ActivityEvent}, Views: []schema.ViewKind{schema.HeatmapView, schema.ChordView}, Changed: true},
			{Event: schema.Event{Kind: schema.BrushEvent}, Error: "boom"},
		}
		rows := ConvertReplaySteps(results, func(schema.FilterState) string { return "{}" })
		require.Len(t, rows, 2)
		assert.Equal(t, "heatmap,chord", rows[0].Views)
		assert.Nil(t, rows[0].Error)
		require.NotNil(t, rows[1].Error)
		assert.Equal(t, "boom", *rows[1].Error)
		assert.Equal(t, int32(2), rows[1].Step)
	})
}
