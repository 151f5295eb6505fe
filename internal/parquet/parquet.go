// Package parquet exports tracking data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"gittrack/schema"
)

// DailyTotalRow maps a daily_totals record to a Parquet row.
type DailyTotalRow struct {
	Date       string `parquet:"date,snappy"`
	Insertions int32  `parquet:"insertions,snappy"`
	Deletions  int32  `parquet:"deletions,snappy"`
	Edits      int32  `parquet:"edits,snappy"`
	Commits    int32  `parquet:"commits,snappy"`
}

// RepoDayStatRow maps a daily_repo_stats record, joined with repo
// metadata, to a Parquet row.
type RepoDayStatRow struct {
	RepoID     int64  `parquet:"repo_id,snappy"`
	RepoName   string `parquet:"repo_name,snappy"`
	Date       string `parquet:"date,snappy"`
	Insertions int32  `parquet:"insertions,snappy"`
	Deletions  int32  `parquet:"deletions,snappy"`
	Edits      int32  `parquet:"edits,snappy"`
	Commits    int32  `parquet:"commits,snappy"`
}

// RunRow maps a runs ledger record to a Parquet row.
type RunRow struct {
	RunID        int64     `parquet:"run_id,snappy"`
	StartedAt    time.Time `parquet:"started_at,snappy"`
	FinishedAt   time.Time `parquet:"finished_at,snappy"`
	Status       string    `parquet:"status,snappy"`
	DurationMs   int64     `parquet:"duration_ms,snappy"`
	ScannedRepos int32     `parquet:"scanned_repos,snappy"`
	ErrorMessage *string   `parquet:"error_message,optional,snappy"`
}

// FromDailyTotals converts store records to exportable rows.
func FromDailyTotals(totals []schema.DailyTotal) []DailyTotalRow {
	rows := make([]DailyTotalRow, len(totals))
	for i, t := range totals {
		rows[i] = DailyTotalRow{
			Date:       t.Date,
			Insertions: int32(t.Insertions),
			Deletions:  int32(t.Deletions),
			Edits:      int32(t.Edits),
			Commits:    int32(t.Commits),
		}
	}
	return rows
}

// FromRepoDayStats converts joined per-repo daily records to
// exportable rows.
func FromRepoDayStats(records []schema.RepoDayRecord) []RepoDayStatRow {
	rows := make([]RepoDayStatRow, len(records))
	for i, rec := range records {
		rows[i] = RepoDayStatRow{
			RepoID:     rec.RepoID,
			RepoName:   rec.RepoName,
			Date:       rec.Date,
			Insertions: int32(rec.Insertions),
			Deletions:  int32(rec.Deletions),
			Edits:      int32(rec.Edits),
			Commits:    int32(rec.Commits),
		}
	}
	return rows
}

// FromRuns converts run ledger records to exportable rows.
func FromRuns(runs []schema.Run) []RunRow {
	rows := make([]RunRow, len(runs))
	for i, r := range runs {
		row := RunRow{
			RunID:        r.ID,
			StartedAt:    r.StartedAt,
			FinishedAt:   r.FinishedAt,
			Status:       string(r.Status),
			DurationMs:   r.DurationMs,
			ScannedRepos: int32(r.ScannedRepos),
		}
		if r.ErrorMessage != "" {
			msg := r.ErrorMessage
			row.ErrorMessage = &msg
		}
		rows[i] = row
	}
	return rows
}

// WriteDailyTotalsParquet writes daily totals to a Parquet file.
func WriteDailyTotalsParquet(data []DailyTotalRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRepoDayStatsParquet writes per-repo daily stats to a Parquet file.
func WriteRepoDayStatsParquet(data []RepoDayStatRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunsParquet writes the run ledger to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with the schema inferred from
// the row struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}
