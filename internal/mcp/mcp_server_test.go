package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrack/internal/dashboard"
	mcp_internal "gittrack/internal/mcp"
	"gittrack/internal/store"
	"gittrack/schema"
)

func TestMCPServerTools(t *testing.T) {
	s, err := store.New(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.UpsertDailyTotal(schema.DailyTotal{Date: "2025-10-21", DayStat: schema.NewDayStat(10, 2, 1)}))
	require.NoError(t, s.UpsertDailyTotal(schema.DailyTotal{Date: "2025-10-22", DayStat: schema.NewDayStat(5, 5, 2)}))

	now := time.Date(2025, time.October, 22, 12, 0, 0, 0, time.Local)
	svc := dashboard.New(s, func() time.Time { return now })
	srv := mcp_internal.NewMCPServer(svc)
	ctx := context.Background()

	t.Run("get_summary", func(t *testing.T) {
		tool := srv.GetTool("get_summary")
		require.NotNil(t, tool, "Tool get_summary should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_summary"},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "TotalDays")
	})

	t.Run("get_daily_edits", func(t *testing.T) {
		tool := srv.GetTool("get_daily_edits")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_daily_edits",
				Arguments: map[string]any{"days": 7.0},
			},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "2025-10-22")
		assert.Contains(t, text, "MA7")
	})

	t.Run("get_net_lines clamps at zero", func(t *testing.T) {
		tool := srv.GetTool("get_net_lines")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_net_lines"},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "Net")
	})

	t.Run("get_streaks", func(t *testing.T) {
		tool := srv.GetTool("get_streaks")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_streaks"},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "Current")
		assert.Contains(t, text, "Longest")
	})

	t.Run("get_run_history", func(t *testing.T) {
		tool := srv.GetTool("get_run_history")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_run_history",
				Arguments: map[string]any{"limit": 5.0},
			},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "Durations")
	})
}
