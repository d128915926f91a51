package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/core/ingest"
	"github.com/huangsam/motionlens/internal/contract"
	mcp_internal "github.com/huangsam/motionlens/internal/mcp"
	"github.com/huangsam/motionlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const motion = `motion_intensity,Timestamp,Participant_ID,Activity_Type
0.4,1714982400,1,walk
0.9,1714982460,1,run
0.6,1714982520,2,walk
`

func newServer(t *testing.T) *server.MCPServer {
	t.Helper()
	cfg := &contract.Config{Location: time.UTC, NegativePolicy: schema.RejectNegative}
	session := core.NewSession(cfg, nil, nil)
	src := &ingest.BytesSource{Label: "motion.csv", Data: []byte(motion)}
	require.NoError(t, session.Load(context.Background(), src, nil))
	return mcp_internal.NewMCPServer(session)
}

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerReadTools(t *testing.T) {
	s := newServer(t)

	t.Run("get_domain", func(t *testing.T) {
		res := call(t, s, "get_domain", map[string]any{})
		require.False(t, res.IsError)
		var domain schema.Domain
		require.NoError(t, json.Unmarshal([]byte(text(res)), &domain))
		assert.Equal(t, []string{"walk", "run"}, domain.Activities)
		assert.Equal(t, []int{1, 2}, domain.Participants)
	})

	t.Run("get_state", func(t *testing.T) {
		res := call(t, s, "get_state", map[string]any{})
		require.False(t, res.IsError)
		var summary schema.SessionSummary
		require.NoError(t, json.Unmarshal([]byte(text(res)), &summary))
		assert.Equal(t, schema.ReadyStatus, summary.Status)
		assert.Equal(t, 1, *summary.State.ParticipantID)
	})

	t.Run("get_view", func(t *testing.T) {
		res := call(t, s, "get_view", map[string]any{"view": "chord"})
		require.False(t, res.IsError)
		var frame schema.ViewFrame
		require.NoError(t, json.Unmarshal([]byte(text(res)), &frame))
		assert.Equal(t, schema.ChordView, frame.View)
		assert.InDelta(t, 1.0, frame.Matrix.Cells[0][0], 1e-9)
	})

	t.Run("get_view unknown", func(t *testing.T) {
		res := call(t, s, "get_view", map[string]any{"view": "scatter"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "unknown view")
	})
}

func TestMCPServerDispatchEvent(t *testing.T) {
	s := newServer(t)

	t.Run("activity", func(t *testing.T) {
		res := call(t, s, "dispatch_event", map[string]any{"kind": "activity", "activity": "run"})
		require.False(t, res.IsError, text(res))
		var result schema.EventResult
		require.NoError(t, json.Unmarshal([]byte(text(res)), &result))
		assert.True(t, result.Changed)
		assert.Equal(t, "run", result.State.Activity)
		assert.Equal(t, schema.AllViews, result.Views)
	})

	t.Run("participant cleared", func(t *testing.T) {
		res := call(t, s, "dispatch_event", map[string]any{"kind": "participant"})
		require.False(t, res.IsError, text(res))
		var result schema.EventResult
		require.NoError(t, json.Unmarshal([]byte(text(res)), &result))
		assert.Nil(t, result.State.ParticipantID)
	})

	t.Run("hours", func(t *testing.T) {
		res := call(t, s, "dispatch_event", map[string]any{"kind": "hours", "hour_start": 6.0, "hour_end": 9.0})
		require.False(t, res.IsError, text(res))
		var result schema.EventResult
		require.NoError(t, json.Unmarshal([]byte(text(res)), &result))
		assert.Equal(t, schema.HourRange{Start: 6, End: 9}, result.State.HourRange)
		assert.Equal(t, []schema.ViewKind{schema.ClockView}, result.Views)
	})

	t.Run("brush", func(t *testing.T) {
		res := call(t, s, "dispatch_event", map[string]any{"kind": "activity", "activity": "all"})
		require.False(t, res.IsError, text(res))

		res = call(t, s, "dispatch_event", map[string]any{"kind": "brush", "x0": 0.0, "x1": 400.0})
		require.False(t, res.IsError, text(res))
		var result schema.EventResult
		require.NoError(t, json.Unmarshal([]byte(text(res)), &result))
		assert.NotNil(t, result.State.TimeWindow)
	})

	t.Run("rejected", func(t *testing.T) {
		res := call(t, s, "dispatch_event", map[string]any{"kind": "activity", "activity": "swim"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "event rejected")
	})

	t.Run("invalid kind", func(t *testing.T) {
		res := call(t, s, "dispatch_event", map[string]any{"kind": "zoom"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "unsupported kind")
	})

	t.Run("clock requires mode", func(t *testing.T) {
		res := call(t, s, "dispatch_event", map[string]any{"kind": "clock"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "is_24h is required")
	})
}

func TestMCPServerNotReady(t *testing.T) {
	session := core.NewSession(&contract.Config{}, nil, nil)
	s := mcp_internal.NewMCPServer(session)

	res := call(t, s, "get_domain", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), schema.ErrSessionNotReady.Error())

	res = call(t, s, "get_view", map[string]any{"view": "line"})
	assert.True(t, res.IsError)
}
