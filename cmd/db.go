package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gittrack/internal/store"
)

// dbCmd groups database maintenance subcommands.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect and maintain the aggregate database.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// dbStatusCmd reports connectivity and row counts per table.
var dbStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show database connectivity and row counts.",
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		status, err := s.GetStatus()
		if err != nil {
			return err
		}

		cmd.Printf("Backend:   %s\n", status.Backend)
		cmd.Printf("Connected: %t\n", status.Connected)
		for _, table := range store.TableNames() {
			cmd.Printf("  %-18s %d rows\n", table, status.RowCounts[table])
		}
		return nil
	},
}

// dbMigrateCmd runs versioned schema migrations. Unlike the other db
// commands this does not open the store first, so migrations can run
// against a fresh database.
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations up or down.",
	Long: `Apply versioned schema migrations. By default migrates to the latest
version; use --target-version to migrate to a specific version, or 0 to
roll everything back.`,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		targetVersion := viper.GetInt("target-version")
		if err := store.Migrate(cfg.StoreBackend, storeConnect(), targetVersion); err != nil {
			return err
		}
		cmd.Println("Migrations applied.")
		return nil
	},
}
