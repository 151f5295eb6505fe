package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gittrack/schema"
)

// Default values for configuration.
const (
	DefaultExtractTimeout = 30 * time.Second
	DefaultLockMaxAge     = 2 * time.Hour
	DefaultStaleThreshold = 36 * time.Hour
	DefaultDashboardDays  = 120
	MaxDashboardDays      = 1000
)

// DefaultWorkers is the default number of concurrent extraction workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// StoreFileName is the SQLite database file name inside the data directory.
const StoreFileName = "gittrack.db"

// LockFileName is the advisory lock marker file name inside the data directory.
const LockFileName = "gittrack.lock"

// Config holds the validated runtime configuration.
type Config struct {
	DataDir        string                 // Directory holding the SQLite file and lock marker
	StoreBackend   schema.DatabaseBackend // sqlite, mysql or postgresql
	StoreConnect   string                 // Connection string for mysql/postgresql; file override for sqlite
	Workers        int                    // Concurrent extraction workers
	ExtractTimeout time.Duration          // Per-repository git invocation bound
	LockMaxAge     time.Duration          // Lock marker staleness threshold
	StaleThreshold time.Duration          // Recent-success staleness threshold
	Days           int                    // Dashboard lookback window in days
	Color          bool
	Width          int // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw values resolved by Viper from defaults,
// config file, environment and flags. ProcessAndValidate turns it into the
// final Config.
type ConfigRawInput struct {
	DataDir        string `mapstructure:"data-dir"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreConnect   string `mapstructure:"store-db-connect"`
	Workers        int    `mapstructure:"workers"`
	ExtractTimeout string `mapstructure:"extract-timeout"`
	Days           int    `mapstructure:"days"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`
}

// DBFilePath returns the SQLite file backing the store. For sqlite the
// connection string, when set, overrides the data-dir location.
func (c *Config) DBFilePath() string {
	if c.StoreBackend == schema.SQLiteBackend && c.StoreConnect != "" {
		return c.StoreConnect
	}
	return filepath.Join(c.DataDir, StoreFileName)
}

// LockFilePath returns the lock marker path beside the store file.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.DataDir, LockFileName)
}

// DefaultDataDir returns the per-user data directory for gittrack.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gittrack"
	}
	return filepath.Join(homeDir, ".gittrack")
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Data directory ---
	dataDir := input.DataDir
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("invalid data directory %q: %w", dataDir, err)
	}
	cfg.DataDir = absDir

	// --- 2. Store backend ---
	backend := schema.DatabaseBackend(input.StoreBackend)
	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		cfg.StoreBackend = backend
	default:
		return fmt.Errorf("invalid store backend %q. Must be sqlite, mysql or postgresql", input.StoreBackend)
	}
	if backend != schema.SQLiteBackend && input.StoreConnect == "" {
		return fmt.Errorf("%s backend requires store-db-connect to be set", backend)
	}
	cfg.StoreConnect = input.StoreConnect

	// --- 3. Workers ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 4. Extraction timeout ---
	timeout, err := time.ParseDuration(input.ExtractTimeout)
	if err != nil {
		return fmt.Errorf("invalid extract-timeout %q: %w", input.ExtractTimeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("extract-timeout must be positive (received %s)", timeout)
	}
	cfg.ExtractTimeout = timeout

	// --- 5. Dashboard window ---
	if input.Days <= 0 || input.Days > MaxDashboardDays {
		return fmt.Errorf("days must be greater than 0 and cannot exceed %d (received %d)", MaxDashboardDays, input.Days)
	}
	cfg.Days = input.Days

	// --- 6. Color and width ---
	colorOn, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.Color = colorOn
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// Fixed thresholds, not exposed as flags.
	cfg.LockMaxAge = DefaultLockMaxAge
	cfg.StaleThreshold = DefaultStaleThreshold

	return nil
}
