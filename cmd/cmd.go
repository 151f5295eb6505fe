// Package cmd defines the command-line interface for gittrack.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gittrack/internal/contract"
	"gittrack/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the repos subcommands to the parent repos command
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposEnableCmd)
	reposCmd.AddCommand(reposDisableCmd)

	// Add the dashboard subcommands to the parent dashboard command
	dashboardCmd.AddCommand(dashboardSummaryCmd)
	dashboardCmd.AddCommand(dashboardEditsCmd)
	dashboardCmd.AddCommand(dashboardCommitsCmd)
	dashboardCmd.AddCommand(dashboardNetCmd)
	dashboardCmd.AddCommand(dashboardBreakdownCmd)
	dashboardCmd.AddCommand(dashboardRunsCmd)
	dashboardCmd.AddCommand(dashboardStreaksCmd)

	// Add the db subcommands to the parent db command
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for the database and lock files (default ~/.gittrack)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent extraction workers")
	rootCmd.PersistentFlags().String("extract-timeout", contract.DefaultExtractTimeout.String(), "Per-repository git timeout (e.g., 30s, 2m)")
	rootCmd.PersistentFlags().IntP("days", "d", contract.DefaultDashboardDays, "Dashboard lookback window in days")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("output-dir", ".", "Directory to write parquet files to")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of dbMigrateCmd to Viper
	dbMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(dbMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding db migrate flags", err)
	}
}
