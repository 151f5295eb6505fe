package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gittrack/internal/contract"
	"gittrack/internal/tracker"
)

// checkCmd verifies the tracking pipeline is healthy: the database is
// reachable, a recent run succeeded and today has a recorded total.
// Intended for cron monitoring; exits non-zero on any failure.
var checkCmd = &cobra.Command{
	Use:     "check",
	Short:   "Verify the tracker ran recently and recorded today's data.",
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := healthCheck(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		cmd.Println("Database reachable.")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		now := timeNow()
		if stale, last := tracker.StaleSince(s, now, cfg.StaleThreshold); stale {
			if last == nil {
				return fmt.Errorf("no successful run on record")
			}
			return fmt.Errorf("last successful run finished %s ago (threshold %s)",
				now.Sub(last.FinishedAt).Round(time.Minute), cfg.StaleThreshold)
		}
		cmd.Println("Recent run found.")

		today := contract.DayKey(now)
		total, err := s.TotalForDate(today)
		if err != nil {
			return err
		}
		if total == nil {
			return fmt.Errorf("no total recorded for %s yet", today)
		}
		cmd.Printf("Today recorded: +%d -%d lines, %d commits.\n",
			total.Insertions, total.Deletions, total.Commits)
		return nil
	},
}
