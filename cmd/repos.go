package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gittrack/internal/outwriter"
)

// reposCmd groups repository management subcommands.
var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List and manage tracked repositories.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// reposListCmd lists every tracked repository.
var reposListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all tracked repositories.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		repos, err := s.AllRepos()
		if err != nil {
			return err
		}
		return outwriter.WriteRepos(os.Stdout, repos, cfg)
	},
}

// setRepoActive flips the active flag for one repo by id.
func setRepoActive(idArg string, active bool) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid repository id %q", idArg)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return s.SetRepoActive(id, active)
}

// reposEnableCmd re-enables a disabled repository.
var reposEnableCmd = &cobra.Command{
	Use:     "enable <id>",
	Short:   "Include a repository in future scans.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setRepoActive(args[0], true); err != nil {
			return err
		}
		cmd.Printf("Repository %s enabled.\n", args[0])
		return nil
	},
}

// reposDisableCmd excludes a repository from scans without deleting
// its history.
var reposDisableCmd = &cobra.Command{
	Use:     "disable <id>",
	Short:   "Exclude a repository from future scans.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setRepoActive(args[0], false); err != nil {
			return err
		}
		cmd.Printf("Repository %s disabled.\n", args[0])
		return nil
	},
}
