// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gittrack/internal/dashboard"
)

// NewMCPServer initializes and configures the gittrack MCP server
// without starting it. Exposed for unit testing.
func NewMCPServer(svc *dashboard.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Gittrack Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{svc: svc}

	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Get the most recent tracking run and the number of recorded days."),
	), h.handleGetSummary)

	s.AddTool(mcp.NewTool("get_daily_edits",
		mcp.WithDescription("Get the daily edits series with 7 and 30 day moving averages."),
		mcp.WithNumber("days", mcp.Description("Number of most recent days to return.")),
	), h.handleGetDailyEdits)

	s.AddTool(mcp.NewTool("get_commit_series",
		mcp.WithDescription("Get commits per day for the most recent days."),
		mcp.WithNumber("days", mcp.Description("Number of most recent days to return.")),
	), h.handleGetCommitSeries)

	s.AddTool(mcp.NewTool("get_net_lines",
		mcp.WithDescription("Get the cumulative net lines series (insertions minus deletions, clamped at zero)."),
	), h.handleGetNetLines)

	s.AddTool(mcp.NewTool("get_repo_breakdown",
		mcp.WithDescription("Get per-repository contributions over a recent window, busiest first."),
		mcp.WithNumber("days", mcp.Description("Window size in days.")),
	), h.handleGetRepoBreakdown)

	s.AddTool(mcp.NewTool("get_run_history",
		mcp.WithDescription("Get the most recent tracking runs with duration statistics."),
		mcp.WithNumber("limit", mcp.Description("Number of runs to return.")),
	), h.handleGetRunHistory)

	s.AddTool(mcp.NewTool("get_streaks",
		mcp.WithDescription("Get current and longest consecutive-day activity streaks."),
	), h.handleGetStreaks)

	return s
}

// StartMCPServer starts the gittrack MCP server on stdio.
func StartMCPServer(_ context.Context, svc *dashboard.Service) error {
	s := NewMCPServer(svc)
	return server.ServeStdio(s)
}
