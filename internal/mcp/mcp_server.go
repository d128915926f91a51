// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	eventKinds = []string{
		string(schema.ActivityEvent),
		string(schema.ParticipantEvent),
		string(schema.HoursEvent),
		string(schema.ClockEvent),
		string(schema.BrushEvent),
		string(schema.BrushClearEvent),
	}
	viewKinds = []string{
		string(schema.HeatmapView),
		string(schema.LineView),
		string(schema.ClockView),
		string(schema.ChordView),
	}
)

// NewMCPServer initializes and configures the motionlens MCP server over a
// loaded session without starting it. This is exposed for unit testing.
func NewMCPServer(session *core.Session) *server.MCPServer {
	s := server.NewMCPServer(
		"Motionlens Session Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{session: session}

	// --- 1. Tool: get_domain ---
	s.AddTool(mcp.NewTool("get_domain",
		mcp.WithDescription("List the activities, participants, time extent and intensity range of the loaded dataset."),
	), h.handleGetDomain)

	// --- 2. Tool: get_state ---
	s.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Return the session status and the current filter state shared by every view."),
	), h.handleGetState)

	// --- 3. Tool: dispatch_event ---
	s.AddTool(mcp.NewTool("dispatch_event",
		mcp.WithDescription("Apply one user interaction to the session and report the new filter state and the views that were refreshed."),
		mcp.WithString("kind", mcp.Description("Interaction kind."), mcp.Enum(eventKinds...), mcp.Required()),
		mcp.WithString("activity", mcp.Description("Activity to select for kind=activity, or 'all'.")),
		mcp.WithNumber("participant", mcp.Description("Participant id for kind=participant. Omit to clear the participant filter.")),
		mcp.WithNumber("hour_start", mcp.Description("Lower hour bound (inclusive) for kind=hours.")),
		mcp.WithNumber("hour_end", mcp.Description("Upper hour bound (exclusive) for kind=hours.")),
		mcp.WithBoolean("is_24h", mcp.Description("Clock face mode for kind=clock.")),
		mcp.WithNumber("x0", mcp.Description("Brush start in pixels along the line chart for kind=brush.")),
		mcp.WithNumber("x1", mcp.Description("Brush end in pixels along the line chart for kind=brush.")),
	), h.handleDispatchEvent)

	// --- 4. Tool: get_view ---
	s.AddTool(mcp.NewTool("get_view",
		mcp.WithDescription("Project the current filter state for one view."),
		mcp.WithString("view", mcp.Description("View to project."), mcp.Enum(viewKinds...), mcp.Required()),
	), h.handleGetView)

	return s
}

// StartMCPServer serves the session over stdio until the client disconnects.
func StartMCPServer(_ context.Context, session *core.Session) error {
	s := NewMCPServer(session)
	return server.ServeStdio(s)
}
