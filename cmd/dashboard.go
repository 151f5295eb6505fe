package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"gittrack/internal/outwriter"
)

// dashboardCmd groups the read-only dashboard views.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "View recorded activity: summaries, series and streaks.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var dashboardSummaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Show the last run and overall tracking status.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		summary, err := svc.Summary()
		if err != nil {
			return err
		}
		return outwriter.WriteSummary(os.Stdout, summary)
	},
}

var dashboardEditsCmd = &cobra.Command{
	Use:     "edits",
	Short:   "Show daily edits with 7 and 30 day moving averages.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		points, err := svc.DailyEdits(cfg.Days)
		if err != nil {
			return err
		}
		return outwriter.WriteDailyEdits(os.Stdout, points)
	},
}

var dashboardCommitsCmd = &cobra.Command{
	Use:     "commits",
	Short:   "Show commits per day.",
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		points, err := svc.CommitSeries(cfg.Days)
		if err != nil {
			return err
		}
		for _, p := range points {
			cmd.Printf("%s  %d\n", p.Date, p.Commits)
		}
		return nil
	},
}

var dashboardNetCmd = &cobra.Command{
	Use:     "net",
	Short:   "Show the cumulative net lines series.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		points, err := svc.CumulativeNetLines()
		if err != nil {
			return err
		}
		return outwriter.WriteNetLines(os.Stdout, points)
	},
}

var dashboardBreakdownCmd = &cobra.Command{
	Use:     "breakdown",
	Short:   "Show per-repository contributions over the lookback window.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		contribs, err := svc.RepoBreakdown(cfg.Days)
		if err != nil {
			return err
		}
		return outwriter.WriteBreakdown(os.Stdout, contribs)
	},
}

var dashboardRunsCmd = &cobra.Command{
	Use:     "runs",
	Short:   "Show the recent run ledger.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		runs, err := svc.RunHistory(20)
		if err != nil {
			return err
		}
		return outwriter.WriteRuns(os.Stdout, runs, cfg)
	},
}

var dashboardStreaksCmd = &cobra.Command{
	Use:     "streaks",
	Short:   "Show activity streaks and run duration statistics.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		streaks, err := svc.Streaks()
		if err != nil {
			return err
		}
		durations, err := svc.RunDurations(20)
		if err != nil {
			return err
		}
		return outwriter.WriteStreaks(os.Stdout, streaks, durations)
	},
}
