package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gittrack/internal/contract"
	"gittrack/internal/dashboard"
	"gittrack/internal/store"
	"gittrack/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "gittrack",
	Short:              "Track daily code change volume across your git repositories.",
	Long:               `Gittrack scans your repositories once a day and records how many lines you inserted, deleted and committed.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gittrack")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("GITTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("data-dir", "")
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("extract-timeout", contract.DefaultExtractTimeout.String())
	viper.SetDefault("days", contract.DefaultDashboardDays)
	viper.SetDefault("color", "yes")
	viper.SetDefault("width", 0)
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	color.NoColor = !cfg.Color
	return nil
}

// storeConnect resolves the connection string for the configured backend.
// For sqlite that is a file path inside the data directory.
func storeConnect() string {
	if cfg.StoreBackend == schema.SQLiteBackend {
		return cfg.DBFilePath()
	}
	return cfg.StoreConnect
}

// openStore opens the configured aggregate store.
func openStore() (*store.StoreImpl, error) {
	return store.New(cfg.StoreBackend, storeConnect())
}

// openDashboard opens the store and wraps it in a dashboard service.
// The caller closes the returned store.
func openDashboard() (*dashboard.Service, *store.StoreImpl, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return dashboard.New(s, nil), s, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
