package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gtschema "gittrack/schema"
)

func TestDailyTotalRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(DailyTotalRow))
	require.NotNil(t, schema)

	for _, col := range []string{"date", "insertions", "deletions", "edits", "commits"} {
		_, ok := schema.Lookup(col)
		require.True(t, ok, "Column %s should exist in schema", col)
	}
}

func TestRunRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(RunRow))
	require.NotNil(t, schema)

	for _, col := range []string{"run_id", "started_at", "finished_at", "status", "duration_ms", "scanned_repos", "error_message"} {
		_, ok := schema.Lookup(col)
		require.True(t, ok, "Column %s should exist in schema", col)
	}
}

func TestWriteDailyTotalsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "daily_totals.parquet")

	rows := FromDailyTotals([]gtschema.DailyTotal{
		{Date: "2025-10-21", DayStat: gtschema.NewDayStat(10, 2, 1)},
		{Date: "2025-10-22", DayStat: gtschema.NewDayStat(5, 5, 2)},
	})
	require.NoError(t, WriteDailyTotalsParquet(rows, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()

	reader := parquet.NewGenericReader[DailyTotalRow](f)
	defer reader.Close()
	back := make([]DailyTotalRow, 2)
	n, err := reader.Read(back)
	require.Equal(t, 2, n)
	assert.Equal(t, "2025-10-21", back[0].Date)
	assert.Equal(t, int32(12), back[0].Edits)
	assert.Equal(t, int32(2), back[1].Commits)
	_ = err // io.EOF after the last row batch is fine
}

func TestWriteRepoDayStatsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "daily_repo_stats.parquet")

	rows := FromRepoDayStats([]gtschema.RepoDayRecord{
		{RepoID: 1, RepoName: "alpha", Date: "2025-10-22", DayStat: gtschema.NewDayStat(10, 2, 1)},
		{RepoID: 2, RepoName: "beta", Date: "2025-10-22", DayStat: gtschema.NewDayStat(3, 3, 2)},
	})
	require.NoError(t, WriteRepoDayStatsParquet(rows, outputPath))

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()

	reader := parquet.NewGenericReader[RepoDayStatRow](f)
	defer reader.Close()
	back := make([]RepoDayStatRow, 2)
	n, err := reader.Read(back)
	require.Equal(t, 2, n)
	assert.Equal(t, "alpha", back[0].RepoName)
	assert.Equal(t, int32(12), back[0].Edits)
	assert.Equal(t, int64(2), back[1].RepoID)
	assert.Equal(t, int32(2), back[1].Commits)
	_ = err // io.EOF after the last row batch is fine
}

func TestFromRunsNullableError(t *testing.T) {
	now := time.Now()
	rows := FromRuns([]gtschema.Run{
		{ID: 1, StartedAt: now, FinishedAt: now, Status: gtschema.RunSuccess, DurationMs: 1200, ScannedRepos: 3},
		{ID: 2, StartedAt: now, FinishedAt: now, Status: gtschema.RunFailed, ErrorMessage: "boom"},
	})

	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].ErrorMessage)
	require.NotNil(t, rows[1].ErrorMessage)
	assert.Equal(t, "boom", *rows[1].ErrorMessage)
}

func TestWriteRunsParquetEmpty(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteRunsParquet(nil, outputPath))

	_, err := os.Stat(outputPath)
	assert.NoError(t, err)
}
