package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"gittrack/internal/contract"
	"gittrack/internal/dashboard"
	"gittrack/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	svc *dashboard.Service
}

func clampDays(days int) int {
	if days <= 0 {
		return contract.DefaultDashboardDays
	}
	if days > contract.MaxDashboardDays {
		return contract.MaxDashboardDays
	}
	return days
}

func resultJSON(data any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetSummary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.svc.Summary()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return resultJSON(summary), nil
}

func (h *toolHandler) handleGetDailyEdits(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := clampDays(request.GetInt("days", 0))
	points, err := h.svc.DailyEdits(days)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("daily edits failed: %v", err)), nil
	}
	return resultJSON(points), nil
}

func (h *toolHandler) handleGetCommitSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := clampDays(request.GetInt("days", 0))
	points, err := h.svc.CommitSeries(days)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("commit series failed: %v", err)), nil
	}
	return resultJSON(points), nil
}

func (h *toolHandler) handleGetNetLines(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	points, err := h.svc.CumulativeNetLines()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("net lines failed: %v", err)), nil
	}
	return resultJSON(points), nil
}

func (h *toolHandler) handleGetRepoBreakdown(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := clampDays(request.GetInt("days", 0))
	contribs, err := h.svc.RepoBreakdown(days)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("repo breakdown failed: %v", err)), nil
	}
	return resultJSON(contribs), nil
}

func (h *toolHandler) handleGetRunHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	runs, err := h.svc.RunHistory(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run history failed: %v", err)), nil
	}
	durations, err := h.svc.RunDurations(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run durations failed: %v", err)), nil
	}
	return resultJSON(struct {
		Runs      []schema.Run
		Durations *schema.RunDurationStats
	}{Runs: runs, Durations: durations}), nil
}

func (h *toolHandler) handleGetStreaks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	streaks, err := h.svc.Streaks()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("streaks failed: %v", err)), nil
	}
	return resultJSON(streaks), nil
}
