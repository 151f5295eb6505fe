// Package schema has the shared data types for gittrack.
package schema

import "time"

// Repo is a tracked repository. Repositories are created by discovery,
// soft-disabled via the Active flag, and never deleted.
type Repo struct {
	ID     int64
	Path   string // absolute path on disk, unique
	Name   string // display name, usually the folder basename
	Active bool
}

// DayStat holds the additive change counters for one calendar day.
// Edits is always Insertions + Deletions.
type DayStat struct {
	Insertions int
	Deletions  int
	Edits      int
	Commits    int
}

// NewDayStat builds a DayStat with the Edits field derived.
func NewDayStat(insertions, deletions, commits int) DayStat {
	return DayStat{
		Insertions: insertions,
		Deletions:  deletions,
		Edits:      insertions + deletions,
		Commits:    commits,
	}
}

// Add accumulates another DayStat into this one.
func (s *DayStat) Add(other DayStat) {
	s.Insertions += other.Insertions
	s.Deletions += other.Deletions
	s.Edits += other.Edits
	s.Commits += other.Commits
}

// IsZero reports whether every counter is zero.
func (s DayStat) IsZero() bool {
	return s.Insertions == 0 && s.Deletions == 0 && s.Edits == 0 && s.Commits == 0
}

// RepoDayStat is the per-repo, per-day record. Natural key (RepoID, Date).
type RepoDayStat struct {
	RepoID int64
	Date   string // DateFormat
	DayStat
}

// RepoDayRecord is a per-repo, per-day record joined with the repo's
// display name. Used by exports.
type RepoDayRecord struct {
	RepoID   int64
	RepoName string
	Date     string // DateFormat
	DayStat
}

// DailyTotal is the per-day record summed across all repos scanned in a
// run. Natural key Date.
type DailyTotal struct {
	Date string // DateFormat
	DayStat
}

// Run is one complete coordinator invocation. Append-only.
type Run struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   time.Time
	Status       RunStatus
	DurationMs   int64
	ScannedRepos int
	ErrorMessage string // empty on success
}

// Summary is the top-line dashboard view: the most recent run plus the
// number of distinct days with recorded totals.
type Summary struct {
	LastRun   *Run // nil when no run has ever completed
	TotalDays int
}

// EditPoint is one point of the daily-edits series, with moving averages
// over the edits counter.
type EditPoint struct {
	Date string
	DayStat
	MA7  float64
	MA30 float64
}

// CommitPoint is one point of the commits-per-day series.
type CommitPoint struct {
	Date    string
	Commits int
}

// NetLinePoint is one point of the cumulative net-lines series: a running
// sum of insertions minus deletions, clamped at zero.
type NetLinePoint struct {
	Date string
	Net  int64
}

// RepoContribution is a repo's slice of activity for a date or date range.
type RepoContribution struct {
	RepoID int64
	Name   string
	DayStat
}

// Streaks holds consecutive-day activity counters over days with edits>0.
type Streaks struct {
	Current int
	Longest int
}

// RunDurationStats summarizes recent run durations.
type RunDurationStats struct {
	MeanMs   float64
	MedianMs float64
}
