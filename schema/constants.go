package schema

// DateFormat is the calendar-day key representation used across the store.
// Day keys are always computed in local time.
const DateFormat = "2006-01-02"

// DatabaseBackend represents the type of database backend for the store.
type DatabaseBackend string

// Supported database backends.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// RunStatus is the terminal status of a tracker run.
type RunStatus string

// Run statuses. Runs are append-only, so a row never moves between these.
const (
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
)
