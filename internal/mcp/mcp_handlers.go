package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	session *core.Session
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetDomain(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := h.session.Domain()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("domain unavailable: %v", err)), nil
	}
	return jsonResult(domain), nil
}

func (h *toolHandler) handleGetState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.session.Summary()), nil
}

func (h *toolHandler) handleDispatchEvent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ev, err := eventFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid event: %v", err)), nil
	}
	result := h.session.Dispatch(ev)
	if result.Error != "" {
		return mcp.NewToolResultError(fmt.Sprintf("event rejected: %s", result.Error)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleGetView(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := schema.ViewKind(request.GetString("view", ""))
	if _, ok := schema.ValidViews[view]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown view %q", view)), nil
	}
	frame, err := h.session.Frame(view)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("projection failed: %v", err)), nil
	}
	return jsonResult(frame), nil
}

// eventFromRequest builds an event from tool arguments. Optional numeric
// fields are only set when the client sent them.
func eventFromRequest(request mcp.CallToolRequest) (schema.Event, error) {
	ev := schema.Event{Kind: schema.EventKind(request.GetString("kind", ""))}
	if _, ok := schema.ValidEventKinds[ev.Kind]; !ok {
		return ev, fmt.Errorf("unsupported kind %q", ev.Kind)
	}
	args := request.GetArguments()
	has := func(key string) bool {
		_, ok := args[key]
		return ok
	}

	switch ev.Kind {
	case schema.ActivityEvent:
		ev.Activity = request.GetString("activity", "")
		if ev.Activity == "" {
			return ev, fmt.Errorf("activity is required")
		}
	case schema.ParticipantEvent:
		if has("participant") {
			ev.Participant = schema.IntPtr(request.GetInt("participant", 0))
		}
	case schema.HoursEvent:
		if has("hour_start") {
			ev.HourStart = schema.IntPtr(request.GetInt("hour_start", 0))
		}
		if has("hour_end") {
			ev.HourEnd = schema.IntPtr(request.GetInt("hour_end", 0))
		}
	case schema.ClockEvent:
		if !has("is_24h") {
			return ev, fmt.Errorf("is_24h is required")
		}
		ev.Is24h = schema.BoolPtr(request.GetBool("is_24h", true))
	case schema.BrushEvent:
		if has("x0") && has("x1") {
			ev.Brush = &schema.BrushExtent{
				X0: request.GetFloat("x0", 0),
				X1: request.GetFloat("x1", 0),
			}
		}
	}
	return ev, nil
}
