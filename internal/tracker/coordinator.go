// Package tracker coordinates a full daily scan: lock, health check,
// gap fill, per-repo extraction, totals and the run ledger.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"gittrack/internal/contract"
	"gittrack/internal/gitstat"
	"gittrack/internal/lockfile"
	"gittrack/schema"
)

// ErrAnotherRunActive is returned when the lock is held by a live run.
var ErrAnotherRunActive = errors.New("another run is active")

// Coordinator owns one tracking run end to end.
type Coordinator struct {
	Lock           contract.Locker
	Health         func() error
	OpenStore      func() (contract.Store, error)
	Git            contract.GitClient
	Clock          contract.Clock
	Workers        int
	ExtractTimeout time.Duration
	StaleThreshold time.Duration
}

// Result summarizes a finished run for the caller.
type Result struct {
	Date         string
	ScannedRepos int
	Total        schema.DayStat
	Duration     time.Duration
}

// Run executes the scan pipeline for today. Every outcome after the
// health check is recorded in the run ledger, success or failure.
func (c *Coordinator) Run(ctx context.Context) (*Result, error) {
	startedAt := c.Clock()
	defer func() {
		_, _ = fmt.Fprintf(os.Stderr, "--- tracker run ended %s ---\n", c.Clock().Format(time.RFC3339))
	}()

	if err := c.Lock.Acquire(); err != nil {
		if errors.Is(err, lockfile.ErrLockHeld) {
			return nil, ErrAnotherRunActive
		}
		return nil, err
	}
	defer func() {
		if err := c.Lock.Release(); err != nil {
			contract.LogWarn("release lock", err)
		}
	}()

	if err := c.Health(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	store, err := c.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	result, runErr := c.scan(ctx, store, startedAt)
	finishedAt := c.Clock()

	run := schema.Run{
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		DurationMs: finishedAt.Sub(startedAt).Milliseconds(),
	}
	if runErr != nil {
		run.Status = schema.RunFailed
		run.ErrorMessage = runErr.Error()
	} else {
		run.Status = schema.RunSuccess
		run.ScannedRepos = result.ScannedRepos
	}
	if _, err := store.AppendRun(run); err != nil {
		if runErr != nil {
			// Keep the scan failure as the primary error.
			contract.LogWarn("record failed run", err)
		} else {
			runErr = fmt.Errorf("record run: %w", err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	result.Duration = finishedAt.Sub(startedAt)
	return result, nil
}

func (c *Coordinator) scan(ctx context.Context, store contract.Store, startedAt time.Time) (*Result, error) {
	today := contract.DayKey(startedAt)

	if err := FillMissingDays(store, startedAt); err != nil {
		contract.LogWarn("gap fill", err)
	}

	if stale, last := StaleSince(store, startedAt, c.StaleThreshold); stale {
		if last == nil {
			contract.LogWarn("no successful run on record yet", nil)
		} else {
			contract.LogWarn(fmt.Sprintf("last successful run was %s ago", startedAt.Sub(last.FinishedAt).Round(time.Minute)), nil)
		}
	}

	repos, err := store.ActiveRepos()
	if err != nil {
		return nil, fmt.Errorf("list repos: %w", err)
	}

	dayStart := contract.StartOfDay(startedAt)
	stats := make([]schema.DayStat, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i, repo := range repos {
		g.Go(func() error {
			stats[i] = gitstat.ExtractDayStats(gctx, c.Git, repo.Path, dayStart, c.ExtractTimeout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Extraction fans out, writes stay on this goroutine so the
	// sqlite backend never sees concurrent upserts.
	var total schema.DayStat
	for i, repo := range repos {
		total.Add(stats[i])
		rds := schema.RepoDayStat{RepoID: repo.ID, Date: today, DayStat: stats[i]}
		if err := store.UpsertRepoDayStat(rds); err != nil {
			return nil, fmt.Errorf("upsert stats for %s: %w", repo.Name, err)
		}
	}

	if err := store.UpsertDailyTotal(schema.DailyTotal{Date: today, DayStat: total}); err != nil {
		return nil, fmt.Errorf("upsert daily total: %w", err)
	}

	if err := store.SetSetting("last_scan_date", today); err != nil {
		return nil, fmt.Errorf("save last scan date: %w", err)
	}

	return &Result{Date: today, ScannedRepos: len(repos), Total: total}, nil
}
