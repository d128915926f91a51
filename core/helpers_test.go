package core

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/motionlens/core/ingest"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
	"github.com/stretchr/testify/require"
)

// threeRecords holds walk, run, walk for participant 1 at 08:00, 08:01 and 08:02 UTC.
const threeRecords = `motion_intensity,Timestamp,Participant_ID,Activity_Type
0.4,1714982400,1,walk
0.9,1714982460,1,run
0.6,1714982520,1,walk
`

// twoParticipants spreads four records over two participants and two hours.
const twoParticipants = `motion_intensity,Timestamp,Participant_ID,Activity_Type
0.2,1714982400,1,walk
0.8,1714986000,2,run
0.4,1714986060,1,run
0.6,1714989600,2,sit
`

var t0 = time.Unix(1714982400, 0).UTC()

func testConfig() *contract.Config {
	return &contract.Config{
		Location:       time.UTC,
		NegativePolicy: schema.RejectNegative,
		ChartWidth:     contract.DefaultChartWidth,
		Precision:      contract.DefaultPrecision,
		ResultLimit:    contract.DefaultResultLimit,
		Output:         schema.TextOut,
	}
}

// loadSession returns a ready session over csv.
func loadSession(t *testing.T, cfg *contract.Config, csv string, renderer contract.Renderer, recorder contract.Recorder) *Session {
	t.Helper()
	session := NewSession(cfg, renderer, recorder)
	src := &ingest.BytesSource{Label: "test.csv", Data: []byte(csv)}
	require.NoError(t, session.Load(context.Background(), src, nil))
	return session
}
