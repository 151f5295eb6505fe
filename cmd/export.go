package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gittrack/internal/parquet"
)

// exportCmd writes the recorded data to Parquet files for analysis in
// external tools.
var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export daily totals, per-repo stats and the run ledger to Parquet files.",
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputDir := viper.GetString("output-dir")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		totals, err := s.Totals(0)
		if err != nil {
			return err
		}
		totalsPath := filepath.Join(outputDir, "daily_totals.parquet")
		if err := parquet.WriteDailyTotalsParquet(parquet.FromDailyTotals(totals), totalsPath); err != nil {
			return err
		}
		cmd.Printf("Wrote %d rows to %s\n", len(totals), totalsPath)

		records, err := s.AllRepoDayStats()
		if err != nil {
			return err
		}
		statsPath := filepath.Join(outputDir, "daily_repo_stats.parquet")
		if err := parquet.WriteRepoDayStatsParquet(parquet.FromRepoDayStats(records), statsPath); err != nil {
			return err
		}
		cmd.Printf("Wrote %d rows to %s\n", len(records), statsPath)

		runs, err := s.RecentRuns(0)
		if err != nil {
			return err
		}
		runsPath := filepath.Join(outputDir, "runs.parquet")
		if err := parquet.WriteRunsParquet(parquet.FromRuns(runs), runsPath); err != nil {
			return err
		}
		cmd.Printf("Wrote %d rows to %s\n", len(runs), runsPath)
		return nil
	},
}
