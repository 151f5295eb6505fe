// Package dashboard derives read-only views over the aggregate store:
// summaries, series with moving averages, streaks and run statistics.
package dashboard

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"gittrack/internal/contract"
	"gittrack/schema"
)

// Service answers dashboard queries. All methods are read-only.
type Service struct {
	Store contract.Store
	Clock contract.Clock
}

// New builds a dashboard service over the given store.
func New(store contract.Store, clock contract.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{Store: store, Clock: clock}
}

// Summary returns the most recent run and the recorded day count.
func (s *Service) Summary() (*schema.Summary, error) {
	last, err := s.Store.LastRun()
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	days, err := s.Store.CountDays()
	if err != nil {
		return nil, fmt.Errorf("count days: %w", err)
	}
	return &schema.Summary{LastRun: last, TotalDays: days}, nil
}

// DailyEdits returns the most recent daily totals with 7 and 30 day
// moving averages over the edits counter. Averages are computed over
// the rows actually present in the window, so early points average
// over fewer days.
func (s *Service) DailyEdits(days int) ([]schema.EditPoint, error) {
	totals, err := s.Store.Totals(days)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}

	edits := make([]float64, len(totals))
	for i, t := range totals {
		edits[i] = float64(t.Edits)
	}

	points := make([]schema.EditPoint, len(totals))
	for i, t := range totals {
		points[i] = schema.EditPoint{
			Date:    t.Date,
			DayStat: t.DayStat,
			MA7:     trailingMean(edits, i, 7),
			MA30:    trailingMean(edits, i, 30),
		}
	}
	return points, nil
}

// CommitSeries returns commits per day for the most recent days.
func (s *Service) CommitSeries(days int) ([]schema.CommitPoint, error) {
	totals, err := s.Store.Totals(days)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}
	points := make([]schema.CommitPoint, len(totals))
	for i, t := range totals {
		points[i] = schema.CommitPoint{Date: t.Date, Commits: t.Commits}
	}
	return points, nil
}

// CumulativeNetLines returns a running sum of insertions minus
// deletions over the whole recorded history, clamped at zero.
func (s *Service) CumulativeNetLines() ([]schema.NetLinePoint, error) {
	totals, err := s.Store.Totals(0)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}
	points := make([]schema.NetLinePoint, len(totals))
	var running int64
	for i, t := range totals {
		running += int64(t.Insertions) - int64(t.Deletions)
		if running < 0 {
			running = 0
		}
		points[i] = schema.NetLinePoint{Date: t.Date, Net: running}
	}
	return points, nil
}

// RepoBreakdown returns per-repo contributions over the last N days,
// busiest repo first.
func (s *Service) RepoBreakdown(days int) ([]schema.RepoContribution, error) {
	now := s.Clock()
	to := contract.DayKey(now)
	from := contract.DayKey(now.AddDate(0, 0, -(days - 1)))
	contribs, err := s.Store.RepoStatsForRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("repo breakdown: %w", err)
	}
	return contribs, nil
}

// RunHistory returns the most recent runs, newest first.
func (s *Service) RunHistory(limit int) ([]schema.Run, error) {
	return s.Store.RecentRuns(limit)
}

// RunDurations summarizes durations over the most recent runs.
func (s *Service) RunDurations(limit int) (*schema.RunDurationStats, error) {
	runs, err := s.Store.RecentRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	if len(runs) == 0 {
		return &schema.RunDurationStats{}, nil
	}

	durations := make([]float64, len(runs))
	for i, r := range runs {
		durations[i] = float64(r.DurationMs)
	}
	mean, err := stats.Mean(durations)
	if err != nil {
		return nil, fmt.Errorf("mean duration: %w", err)
	}
	median, err := stats.Median(durations)
	if err != nil {
		return nil, fmt.Errorf("median duration: %w", err)
	}
	return &schema.RunDurationStats{MeanMs: mean, MedianMs: median}, nil
}

// Streaks counts consecutive calendar days with edits. A calendar gap
// between recorded rows breaks a streak even though the gap filler
// normally plugs such holes with zero rows. The current streak only
// counts if it reaches today or yesterday.
func (s *Service) Streaks() (*schema.Streaks, error) {
	totals, err := s.Store.Totals(0)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}

	out := &schema.Streaks{}
	var runLen int
	var prev, runEnd time.Time
	for _, t := range totals {
		day, err := contract.ParseDayKey(t.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", t.Date, err)
		}
		if t.Edits <= 0 {
			runLen = 0
			prev = day
			continue
		}
		if runLen > 0 && day.Equal(prev.AddDate(0, 0, 1)) {
			runLen++
		} else {
			runLen = 1
		}
		runEnd = day
		if runLen > out.Longest {
			out.Longest = runLen
		}
		prev = day
	}

	today := contract.StartOfDay(s.Clock())
	if runLen > 0 && !runEnd.Before(today.AddDate(0, 0, -1)) {
		out.Current = runLen
	}
	return out, nil
}

// trailingMean averages up to window values ending at index i.
func trailingMean(values []float64, i, window int) float64 {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	mean, err := stats.Mean(values[start : i+1])
	if err != nil {
		return 0
	}
	return mean
}
