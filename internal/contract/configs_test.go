package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrack/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataDir:        "/tmp/gittrack-test",
		StoreBackend:   "sqlite",
		Workers:        4,
		ExtractTimeout: "30s",
		Days:           120,
		Color:          "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid defaults", mutate: func(*ConfigRawInput) {}},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }, expectError: true},
		{name: "mysql without connect string", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mysql" }, expectError: true},
		{name: "mysql with connect string", mutate: func(in *ConfigRawInput) {
			in.StoreBackend = "mysql"
			in.StoreConnect = "user:pass@tcp(localhost:3306)/gittrack"
		}},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "bad timeout", mutate: func(in *ConfigRawInput) { in.ExtractTimeout = "soon" }, expectError: true},
		{name: "negative timeout", mutate: func(in *ConfigRawInput) { in.ExtractTimeout = "-5s" }, expectError: true},
		{name: "days too large", mutate: func(in *ConfigRawInput) { in.Days = MaxDashboardDays + 1 }, expectError: true},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateThresholds(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	// The staleness backstops are fixed, not configurable.
	assert.Equal(t, 2*time.Hour, cfg.LockMaxAge)
	assert.Equal(t, 36*time.Hour, cfg.StaleThreshold)
	assert.Equal(t, 30*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
}

func TestConfigPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data", StoreBackend: schema.SQLiteBackend}
	assert.Equal(t, "/data/gittrack.db", cfg.DBFilePath())
	assert.Equal(t, "/data/gittrack.lock", cfg.LockFilePath())

	cfg.StoreConnect = "/elsewhere/override.db"
	assert.Equal(t, "/elsewhere/override.db", cfg.DBFilePath())
}

func TestDayKeyRoundTrip(t *testing.T) {
	ts := time.Date(2025, time.October, 22, 15, 30, 0, 0, time.Local)
	key := DayKey(ts)
	assert.Equal(t, "2025-10-22", key)

	parsed, err := ParseDayKey(key)
	require.NoError(t, err)
	assert.Equal(t, StartOfDay(ts), parsed)
}
