package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gittrack/internal/scan"
)

// timePrecision is the display rounding for durations.
const timePrecision = 10 * time.Millisecond

// timeNow is the clock used by commands. A variable for tests.
var timeNow = time.Now

// discoverCmd walks a directory tree and registers every git repository
// found. This also creates the database on first use.
var discoverCmd = &cobra.Command{
	Use:   "discover <root-dir>",
	Short: "Find git repositories under a directory and register them.",
	Long: `Walk the given directory and register every folder containing a .git
directory. Hidden folders and dependency folders like node_modules are
skipped, and discovery does not descend into a found repository.

Already-registered repositories are refreshed in place; a previously
disabled repository that is rediscovered becomes active again.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := scan.FindRepos(args[0])
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			cmd.Println("No git repositories found.")
			return nil
		}

		s, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = s.Close() }()

		n, err := scan.SaveRepos(s, paths)
		if err != nil {
			return err
		}
		cmd.Printf("Registered %d repositories.\n", n)
		return nil
	},
}
