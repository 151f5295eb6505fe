// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"gittrack/schema"
)

// GitClient defines the operations needed to read repository activity.
// This allows the tracker logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command in repoPath and returns its stdout.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// DayActivityLog returns the raw non-merge commit log with per-file
	// numstat records for everything committed since the given boundary.
	DayActivityLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error)
}

// Store defines the durable aggregate store: repositories, per-repo daily
// stats, daily totals, the run ledger and free-form settings.
// Upserts replace all numeric fields keyed by the record's natural key and
// are atomic per call.
type Store interface {
	// --- Repositories ---

	// UpsertRepo inserts a repository or refreshes its name, re-activating
	// it if it was previously disabled.
	UpsertRepo(path, name string) error

	// ActiveRepos returns all repositories not flagged as disabled.
	ActiveRepos() ([]schema.Repo, error)

	// AllRepos returns every tracked repository.
	AllRepos() ([]schema.Repo, error)

	// SetRepoActive toggles the active flag of one repository.
	SetRepoActive(id int64, active bool) error

	// --- Daily stats ---

	// UpsertRepoDayStat writes one per-repo, per-day record, replacing the
	// numeric fields if a record with the same (repo, date) key exists.
	UpsertRepoDayStat(stat schema.RepoDayStat) error

	// UpsertDailyTotal writes one per-day total, replacing numeric fields
	// if the date already has a row.
	UpsertDailyTotal(total schema.DailyTotal) error

	// InsertDailyTotalIfAbsent writes one per-day total only when the date
	// has no row yet. Used by the gap filler; never overwrites real data.
	InsertDailyTotalIfAbsent(total schema.DailyTotal) error

	// AllRepoDayStats returns every per-repo daily record joined with
	// its repository name, ordered by date then repository id.
	AllRepoDayStats() ([]schema.RepoDayRecord, error)

	// TotalDates returns all recorded dates in ascending order.
	TotalDates() ([]string, error)

	// Totals returns the most recent daily totals up to limit rows,
	// in ascending date order. A non-positive limit returns all rows.
	Totals(limit int) ([]schema.DailyTotal, error)

	// TotalForDate returns the total row for one date, or nil if absent.
	TotalForDate(date string) (*schema.DailyTotal, error)

	// CountDays returns the number of distinct recorded days.
	CountDays() (int, error)

	// RepoStatsForRange returns per-repo contributions for the inclusive
	// date range, summed per repository.
	RepoStatsForRange(from, to string) ([]schema.RepoContribution, error)

	// --- Run ledger ---

	// AppendRun appends one run row. Runs are never updated after insert.
	AppendRun(run schema.Run) (int64, error)

	// LastRun returns the most recent run by finish time, or nil.
	LastRun() (*schema.Run, error)

	// LastSuccessRun returns the most recent success run by finish time,
	// or nil when no run ever succeeded.
	LastSuccessRun() (*schema.Run, error)

	// RecentRuns returns the most recent runs, newest first. A
	// non-positive limit returns all rows.
	RecentRuns(limit int) ([]schema.Run, error)

	// --- Settings ---

	// GetSetting returns the value for key, or empty string if unset.
	GetSetting(key string) (string, error)

	// SetSetting inserts or replaces one settings key.
	SetSetting(key, value string) error

	// Ping verifies the underlying connection is alive.
	Ping() error

	// Close releases the underlying connection.
	Close() error
}

// Locker is the advisory mutual-exclusion resource guarding a run.
type Locker interface {
	// Acquire takes the lock, reclaiming a stale marker if needed.
	// Returns ErrLockHeld when a fresh marker already exists.
	Acquire() error

	// Release removes the marker. Safe to call when no marker exists.
	Release() error
}

// Clock supplies the current local time. Injectable so tests can pin the
// calendar day instead of depending on real time.
type Clock func() time.Time
