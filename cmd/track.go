package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gittrack/internal/contract"
	"gittrack/internal/gitstat"
	"gittrack/internal/lockfile"
	"gittrack/internal/tracker"
	"gittrack/schema"
)

// trackCmd runs one full daily scan.
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Scan all active repositories and record today's change volume.",
	Long: `Run the daily tracking pipeline:

1. Take the run lock (a stale lock from a crashed run is reclaimed)
2. Verify the database is present and writable
3. Fill zero rows for any missed calendar days
4. Extract today's insertions, deletions and commits per repository
5. Record the daily total and append a run to the ledger

A repository that cannot be read counts as zero activity; the run still
succeeds. If another run is already active the command exits without
touching the database.`,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		coord := newCoordinator()
		result, err := coord.Run(rootCtx)
		if errors.Is(err, tracker.ErrAnotherRunActive) {
			return fmt.Errorf("another gittrack run is active; try again later")
		}
		if err != nil {
			return err
		}

		cmd.Printf("Scanned %d repositories for %s\n", result.ScannedRepos, result.Date)
		cmd.Printf("  +%d -%d lines, %d commits (%d edits) in %s\n",
			result.Total.Insertions, result.Total.Deletions,
			result.Total.Commits, result.Total.Edits, result.Duration.Round(timePrecision))
		return nil
	},
}

// newCoordinator wires a run coordinator from the validated config.
func newCoordinator() *tracker.Coordinator {
	return &tracker.Coordinator{
		Lock:   lockfile.New(cfg.LockFilePath(), cfg.LockMaxAge, nil),
		Health: healthCheck,
		OpenStore: func() (contract.Store, error) {
			return openStore()
		},
		Git:            gitstat.NewLocalGitClient(),
		Clock:          timeNow,
		Workers:        cfg.Workers,
		ExtractTimeout: cfg.ExtractTimeout,
		StaleThreshold: cfg.StaleThreshold,
	}
}

// healthCheck verifies the store is reachable before a run starts. For
// sqlite this requires the file to already exist so a run never
// silently creates an empty database.
func healthCheck() error {
	if cfg.StoreBackend == schema.SQLiteBackend {
		return lockfile.DBExistsAndWritable(cfg.DBFilePath())
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return s.Ping()
}
